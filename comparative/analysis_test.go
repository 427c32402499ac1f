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

// romanceCognates is a small Latin/Spanish/Italian test corpus with a
// regular k > g lenition in Spanish.
func romanceCognates() []CognateSet {
	return []CognateSet{
		{
			"Latin":   {"a", "k", "w", "a"},
			"Spanish": {"a", "g", "w", "a"},
			"Italian": {"a", "k", "w", "a"},
		},
		{
			"Latin":   {"a", "m", "i", "k", "u"},
			"Spanish": {"a", "m", "i", "g", "o"},
			"Italian": {"a", "m", "i", "k", "o"},
		},
		{
			"Latin":   {"f", "o", "k", "u"},
			"Spanish": {"f", "w", "e", "g", "o"},
			"Italian": {"f", "w", "o", "k", "o"},
		},
	}
}

func TestAnalysisLanguages(t *testing.T) {
	a := &Analysis{Cognates: romanceCognates()}
	assert.Equal(t, []string{"Italian", "Latin", "Spanish"}, a.Languages())
}

func TestFindCorrespondencesNeedsTwoLanguages(t *testing.T) {
	a := &Analysis{Cognates: []CognateSet{{"Latin": {"a", "k"}}}}
	assert.Empty(t, a.FindCorrespondences())
}

func TestFindCorrespondencesCoversAlignedPositions(t *testing.T) {
	a := &Analysis{Cognates: romanceCognates()}
	corrs := a.FindCorrespondences()
	require.NotEmpty(t, corrs)
	for _, c := range corrs {
		assert.GreaterOrEqual(t, len(c.Sounds), 2)
	}
}

func TestCorrespondencePatternsFindsLenition(t *testing.T) {
	a := &Analysis{Cognates: romanceCognates()}
	patterns := a.CorrespondencePatterns(2)
	require.NotEmpty(t, patterns)

	var found *CorrespondencePattern
	for _, p := range patterns {
		// language order is Italian, Latin, Spanish
		if p.Sounds[0] == "k" && p.Sounds[1] == "k" && p.Sounds[2] == "g" {
			found = p
		}
	}
	require.NotNil(t, found, "expected the k — k — g correspondence")
	assert.GreaterOrEqual(t, found.Frequency, 2)
	assert.Equal(t, "k — k — g", found.String())
}

func TestCorrespondencePatternsMinFrequencyFilters(t *testing.T) {
	a := &Analysis{Cognates: romanceCognates()}
	all := a.CorrespondencePatterns(1)
	frequent := a.CorrespondencePatterns(3)
	assert.Greater(t, len(all), len(frequent))
	for _, p := range frequent {
		assert.GreaterOrEqual(t, p.Frequency, 3)
	}
}

func TestDistanceMatrixSymmetricZeroDiagonal(t *testing.T) {
	a := &Analysis{Cognates: romanceCognates()}
	langs, matrix := a.DistanceMatrix()
	require.Len(t, matrix, len(langs))
	for i := range matrix {
		assert.Equal(t, 0.0, matrix[i][i])
		for j := range matrix[i] {
			assert.Equal(t, matrix[i][j], matrix[j][i])
			assert.GreaterOrEqual(t, matrix[i][j], 0.0)
			assert.LessOrEqual(t, matrix[i][j], 1.0)
		}
	}
}

func TestDistanceMatrixReflectsSimilarity(t *testing.T) {
	a := &Analysis{Cognates: romanceCognates()}
	langs, matrix := a.DistanceMatrix()
	idx := make(map[string]int, len(langs))
	for i, lang := range langs {
		idx[lang] = i
	}
	// Italian sticks closer to Latin than Spanish does in this corpus
	assert.Less(t, matrix[idx["Italian"]][idx["Latin"]], matrix[idx["Spanish"]][idx["Latin"]])
}
