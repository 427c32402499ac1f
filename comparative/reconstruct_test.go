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

func TestReconstructProtoMajority(t *testing.T) {
	forms := CognateSet{
		"Latin":   {"a", "k", "w", "a"},
		"Spanish": {"a", "g", "w", "a"},
		"Italian": {"a", "k", "w", "a"},
	}
	proto, err := ReconstructProto(forms, MethodMajority, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "k", "w", "a"}, proto)
}

func TestReconstructProtoEmptyInput(t *testing.T) {
	proto, err := ReconstructProto(CognateSet{}, MethodMajority, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, proto)
}

func TestReconstructProtoUnknownMethod(t *testing.T) {
	_, err := ReconstructProto(CognateSet{"Latin": {"a"}}, "bayesian", nil, nil)
	assert.Error(t, err)
}

func TestReconstructProtoConservativeWeighting(t *testing.T) {
	forms := CognateSet{
		"Deep1":    {"p"},
		"Deep2":    {"p"},
		"Shallow1": {"b"},
		"Shallow2": {"b"},
	}
	// Deep1/Deep2 sit three levels down, Shallow1/Shallow2 directly under
	// the root: the deep branches carry more weight.
	phylogeny := []Edge{
		{A: "root", B: "inner", Distance: 0.1},
		{A: "root", B: "Shallow1", Distance: 0.2},
		{A: "root", B: "Shallow2", Distance: 0.2},
		{A: "inner", B: "mid", Distance: 0.1},
		{A: "mid", B: "Deep1", Distance: 0.1},
		{A: "mid", B: "Deep2", Distance: 0.1},
	}
	proto, err := ReconstructProto(forms, MethodConservative, phylogeny, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, proto)
}

func TestReconstructProtoParsimonyFitch(t *testing.T) {
	forms := CognateSet{
		"A": {"t"},
		"B": {"t"},
		"C": {"d"},
	}
	// ((A,B),C): t-t intersect at the inner node, so the root keeps t
	phylogeny := []Edge{
		{A: "root", B: "inner", Distance: 0.1},
		{A: "root", B: "C", Distance: 0.5},
		{A: "inner", B: "A", Distance: 0.1},
		{A: "inner", B: "B", Distance: 0.1},
	}
	proto, err := ReconstructProto(forms, MethodParsimony, phylogeny, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, proto)
}

func TestReconstructProtoParsimonyFallsBackWithoutTree(t *testing.T) {
	forms := CognateSet{
		"A": {"t", "a"},
		"B": {"t", "a"},
		"C": {"d", "a"},
	}
	proto, err := ReconstructProto(forms, MethodParsimony, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "a"}, proto)
}

func TestReconstructProtoSankoffUnitCosts(t *testing.T) {
	forms := CognateSet{
		"A": {"k"},
		"B": {"k"},
		"C": {"g"},
		"D": {"g"},
	}
	phylogeny := []Edge{
		{A: "root", B: "left", Distance: 0.1},
		{A: "root", B: "right", Distance: 0.1},
		{A: "left", B: "A", Distance: 0.1},
		{A: "left", B: "B", Distance: 0.1},
		{A: "right", B: "C", Distance: 0.1},
		{A: "right", B: "D", Distance: 0.1},
	}
	proto, err := ReconstructProto(forms, MethodSankoff, phylogeny, nil)
	require.NoError(t, err)
	require.Len(t, proto, 1)
	// both states tie under unit costs; the result must still be one of
	// the attested sounds, deterministically chosen
	assert.Contains(t, []string{"k", "g"}, proto[0])
	again, err := ReconstructProto(forms, MethodSankoff, phylogeny, nil)
	require.NoError(t, err)
	assert.Equal(t, proto, again)
}

func TestReconstructProtoFromDaughtersOfSoundChange(t *testing.T) {
	// daughters of *p after a p > b change in one branch
	forms := CognateSet{
		"North": {"b", "a", "t", "a"},
		"South": {"p", "a", "t", "a"},
		"East":  {"p", "a", "t", "a"},
	}
	proto, err := ReconstructProto(forms, MethodMajority, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "a", "t", "a"}, proto)
}
