// Copyright 2017 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2017 Charles University, Faculty of Arts,
//                Institute of the Czech National Corpus
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPackagedTables(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)
	require.NotNil(t, tables)

	assert.Contains(t, tables.Sounds, "p")
	assert.Contains(t, tables.Sounds["p"], "stop")

	assert.Equal(t, "manner", tables.FeatureCategory["stop"])
	assert.Equal(t, "place", tables.FeatureCategory["bilabial"])

	cls, ok := tables.Classes["V"]
	require.True(t, ok)
	assert.Equal(t, "vowel", cls.Features)

	require.NotEmpty(t, tables.SoundChanges)
}

func TestNormalizeGrapheme(t *testing.T) {
	assert.Equal(t, "ɡ", NormalizeGrapheme("g"))
	assert.Equal(t, "ʼ", NormalizeGrapheme("'"))
	assert.Equal(t, "a", NormalizeGrapheme("a"))
}
