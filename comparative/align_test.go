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

package comparative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignIdenticalSequences(t *testing.T) {
	al := Align([]string{"a", "k", "w", "a"}, []string{"a", "k", "w", "a"}, nil)
	assert.Equal(t, []string{"a", "k", "w", "a"}, al.A)
	assert.Equal(t, []string{"a", "k", "w", "a"}, al.B)
	assert.Equal(t, 4.0, al.Score)
}

func TestAlignInsertsGapForDeletion(t *testing.T) {
	al := Align([]string{"p", "r", "e", "s", "t", "o"}, []string{"p", "r", "e", "t", "o"}, nil)
	require.Len(t, al.A, len(al.B))
	assert.Contains(t, al.B, Gap)
	assert.NotContains(t, al.A, Gap)
}

func TestAlignEqualRowLengths(t *testing.T) {
	tests := []struct {
		a []string
		b []string
	}{
		{[]string{"a"}, []string{"a", "b", "c"}},
		{[]string{"x", "y", "z"}, []string{"y"}},
		{[]string{"p", "a", "t"}, []string{"b", "a", "d", "a"}},
	}
	for _, tc := range tests {
		al := Align(tc.a, tc.b, nil)
		assert.Len(t, al.A, len(al.B), "%v vs %v", tc.a, tc.b)
	}
}

func TestDistanceIsMetricLike(t *testing.T) {
	a := []string{"a", "k", "w", "a"}
	b := []string{"a", "g", "w", "a"}
	assert.Equal(t, 0.0, Distance(a, a, nil))
	assert.Equal(t, Distance(a, b, nil), Distance(b, a, nil))
	d := Distance(a, b, nil)
	assert.GreaterOrEqual(t, d, 0.0)
	assert.LessOrEqual(t, d, 1.0)
}

func TestDistanceEmptySequences(t *testing.T) {
	assert.Equal(t, 0.0, Distance(nil, nil, nil))
	assert.Equal(t, 1.0, Distance([]string{"a"}, nil, nil))
	assert.Equal(t, 1.0, Distance(nil, []string{"a"}, nil))
}

func TestMultiAlignRowsHaveEqualLength(t *testing.T) {
	forms := map[string][]string{
		"Latin":      {"a", "k", "w", "a"},
		"Spanish":    {"a", "g", "w", "a"},
		"Portuguese": {"a", "g", "w", "a"},
		"French":     {"o"},
	}
	aligned := MultiAlign(forms, nil)
	require.Len(t, aligned, 4)
	var width int
	for _, row := range aligned {
		if width == 0 {
			width = len(row)
		}
		assert.Len(t, row, width)
	}
}

func TestMultiAlignSingleLanguagePassthrough(t *testing.T) {
	aligned := MultiAlign(map[string][]string{"Latin": {"a", "k"}}, nil)
	assert.Equal(t, map[string][]string{"Latin": {"a", "k"}}, aligned)
}
