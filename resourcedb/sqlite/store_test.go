// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Charles University, Faculty of Arts,
//                Department of Linguistics
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

package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resourcedb.sqlite")
	store, err := New(path, "")
	require.NoError(t, err)
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSoundFeaturesRoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.GetSoundFeatures("ipa", "p")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.PutSoundFeatures("ipa", "p", []string{"bilabial", "stop", "voiceless"}))

	got, ok, err := store.GetSoundFeatures("ipa", "p")
	require.NoError(t, err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"bilabial", "stop", "voiceless"}, got)
}

func TestSoundDistanceIsOrderIndependent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PutSoundDistance("ipa", "p", "b", 0.25))

	d, ok, err := store.GetSoundDistance("ipa", "b", "p")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.25, d)
}

func TestSoundDistanceMiss(t *testing.T) {
	store := newTestStore(t)
	_, ok, err := store.GetSoundDistance("ipa", "x", "y")
	require.NoError(t, err)
	assert.False(t, ok)
}
