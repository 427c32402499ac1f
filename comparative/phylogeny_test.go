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

func TestUPGMAJoinsClosestPairFirst(t *testing.T) {
	langs := []string{"A", "B", "C"}
	matrix := [][]float64{
		{0.0, 0.1, 0.8},
		{0.1, 0.0, 0.7},
		{0.8, 0.7, 0.0},
	}
	edges := UPGMA(langs, matrix)
	require.Len(t, edges, 2)
	assert.Equal(t, "A", edges[0].A)
	assert.Equal(t, "B", edges[0].B)
	assert.Equal(t, 0.1, edges[0].Distance)
	assert.Equal(t, "(A,B)", edges[1].A)
	assert.Equal(t, "C", edges[1].B)
	assert.InDelta(t, 0.75, edges[1].Distance, 1e-9)
}

func TestUPGMADoesNotMutateInput(t *testing.T) {
	matrix := [][]float64{
		{0.0, 0.1},
		{0.1, 0.0},
	}
	UPGMA([]string{"A", "B"}, matrix)
	assert.Equal(t, 0.1, matrix[0][1])
}

func TestNeighborJoiningEdgeCount(t *testing.T) {
	langs := []string{"A", "B", "C", "D"}
	matrix := [][]float64{
		{0.0, 0.2, 0.7, 0.8},
		{0.2, 0.0, 0.6, 0.7},
		{0.7, 0.6, 0.0, 0.3},
		{0.8, 0.7, 0.3, 0.0},
	}
	edges := NeighborJoining(langs, matrix)
	// n taxa join into n-2 internal nodes plus the final edge
	require.Len(t, edges, 3)
	assert.Equal(t, "A", edges[0].A)
	assert.Equal(t, "B", edges[0].B)
}

func TestBuildPhylogenyMethods(t *testing.T) {
	a := &Analysis{Cognates: romanceCognates()}

	njEdges, err := a.BuildPhylogeny(MethodNJ)
	require.NoError(t, err)
	assert.NotEmpty(t, njEdges)

	upgmaEdges, err := a.BuildPhylogeny(MethodUPGMA)
	require.NoError(t, err)
	assert.NotEmpty(t, upgmaEdges)

	_, err = a.BuildPhylogeny("maximum-likelihood")
	assert.Error(t, err)
}

func TestBuildPhylogenyGroupsConservativeLanguages(t *testing.T) {
	a := &Analysis{Cognates: romanceCognates()}
	edges, err := a.BuildPhylogeny(MethodUPGMA)
	require.NoError(t, err)
	require.NotEmpty(t, edges)
	// Italian and Latin share the most identical forms, so they join first
	assert.Equal(t, "Italian", edges[0].A)
	assert.Equal(t, "Latin", edges[0].B)
}

func TestNewick(t *testing.T) {
	edges := []Edge{
		{A: "A", B: "B", Distance: 0.1},
		{A: "(A,B)", B: "C", Distance: 0.75},
	}
	assert.Equal(t, "((A,B),C);", Newick(edges))
	assert.Equal(t, ";", Newick(nil))
}
