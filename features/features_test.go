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

package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFeaturesCategoryAware(t *testing.T) {
	sys, err := GetSystem(SystemIPA)
	require.NoError(t, err)

	base := NewFeatureSet("consonant", "bilabial", "stop", "voiceless")
	result := sys.AddFeatures(base, []string{"voiced"})

	assert.True(t, result.Contains("voiced"))
	assert.False(t, result.Contains("voiceless"))
	assert.True(t, result.Contains("stop"))
}

func TestPartialMatch(t *testing.T) {
	sys, err := GetSystem(SystemIPA)
	require.NoError(t, err)

	target := NewFeatureSet("consonant", "bilabial", "stop", "voiced")
	assert.True(t, sys.PartialMatch([]string{"voiced"}, nil, target))
	assert.False(t, sys.PartialMatch([]string{"voiceless"}, nil, target))
	assert.True(t, sys.PartialMatch(nil, []string{"voiceless"}, target))
	assert.False(t, sys.PartialMatch(nil, []string{"voiced"}, target))
}

func TestFeatureDistanceIdentity(t *testing.T) {
	assert.Equal(t, 0, FeatureDistance("voiced", "voiced"))
	assert.Equal(t, unknownFeatureDistance, FeatureDistance("voiced", "no-such-feature"))
}

func TestFeatureDistanceSiblings(t *testing.T) {
	// voiced/voiceless share a leaf -> LCA is the leaf itself, distance 2.
	assert.Equal(t, 2, FeatureDistance("voiced", "voiceless"))
}

func TestSoundDistanceIdenticalIsZero(t *testing.T) {
	sys, err := GetSystem(SystemIPA)
	require.NoError(t, err)
	p, ok := sys.GraphemeToFeatures("p")
	require.True(t, ok)
	assert.Equal(t, 0.0, sys.SoundDistance(p, p))
}

func TestSoundDistanceMetricProperties(t *testing.T) {
	sys, err := GetSystem(SystemIPA)
	require.NoError(t, err)
	p, ok := sys.GraphemeToFeatures("p")
	require.True(t, ok)
	b, ok := sys.GraphemeToFeatures("b")
	require.True(t, ok)
	k, ok := sys.GraphemeToFeatures("k")
	require.True(t, ok)

	for _, pair := range [][2]FeatureSet{{p, b}, {p, k}, {b, k}} {
		d := sys.SoundDistance(pair[0], pair[1])
		assert.Greater(t, d, 0.0)
		assert.LessOrEqual(t, d, 1.0)
		assert.Equal(t, d, sys.SoundDistance(pair[1], pair[0]))
	}
}

func TestGraphemeToFeaturesUnknownGraphemeIsEmptyNotError(t *testing.T) {
	sys, err := GetSystem(SystemIPA)
	require.NoError(t, err)
	fs, ok := sys.GraphemeToFeatures("Ж")
	assert.False(t, ok)
	assert.Empty(t, fs)
}

func TestClassFeatures(t *testing.T) {
	sys, err := GetSystem(SystemIPA)
	require.NoError(t, err)
	fs, ok := sys.ClassFeatures("N")
	require.True(t, ok)
	assert.True(t, fs.Contains("nasal"))
	assert.True(t, fs.Contains("consonant"))
}

func TestTresoldiKeepsSecondaryArticulation(t *testing.T) {
	ipa, err := GetSystem(SystemIPA)
	require.NoError(t, err)
	tresoldi, err := GetSystem(SystemTresoldi)
	require.NoError(t, err)

	ipaFeatures, _ := ipa.GraphemeToFeatures("p")
	tresoldiFeatures, _ := tresoldi.GraphemeToFeatures("p")
	assert.Equal(t, len(ipaFeatures), len(tresoldiFeatures),
		"plain /p/ carries no secondary articulation so both systems should agree here")
}

func TestUnknownSystemLookup(t *testing.T) {
	_, err := GetSystem("esperanto")
	require.Error(t, err)
	assert.IsType(t, &ErrUnknownSystem{}, err)
}

func TestSetDefaultRejectsUnknownName(t *testing.T) {
	err := SetDefault("no-such-system")
	require.Error(t, err)
	assert.NoError(t, SetDefault(SystemIPA))
}

func TestScalarDistanceMirrorsCategorical(t *testing.T) {
	distinctive, err := GetSystem(SystemDistinctive)
	require.NoError(t, err)
	ipa, err := GetSystem(SystemIPA)
	require.NoError(t, err)

	p, _ := ipa.GraphemeToFeatures("p")
	b, _ := ipa.GraphemeToFeatures("b")
	dist := distinctive.SoundDistance(p, b)
	assert.Greater(t, dist, 0.0)
	assert.LessOrEqual(t, dist, 1.0)
}

func TestFeatureSetKeyIsOrderIndependent(t *testing.T) {
	a := NewFeatureSet("voiced", "stop", "bilabial")
	b := NewFeatureSet("bilabial", "voiced", "stop")
	assert.Equal(t, a.Key(), b.Key())
}

func TestParseFeatureModifiers(t *testing.T) {
	additions, removals, err := ParseFeatureModifiers("+voiced,-long")
	require.NoError(t, err)
	assert.Equal(t, []string{"voiced"}, additions)
	assert.Equal(t, []string{"long"}, removals)
}
