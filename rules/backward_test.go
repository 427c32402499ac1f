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

package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/parser"
	"github.com/czcorpus/soundshift/token"
)

// elementCovers reports whether a reconstructed candidate element stands
// for target: equal graphemes, a "p|b" pipe placeholder listing the
// target's grapheme, or a sound-class placeholder whose features are a
// subset of the target sound's features.
func elementCovers(cand, target token.SequenceElement, sys features.System) bool {
	if cand.IsBoundary || target.IsBoundary {
		return cand.IsBoundary == target.IsBoundary
	}
	if cand.Sound.Grapheme == target.Sound.Grapheme {
		return true
	}
	if !cand.Sound.Partial {
		return false
	}
	if strings.Contains(cand.Sound.Grapheme, "|") {
		for _, alt := range strings.Split(cand.Sound.Grapheme, "|") {
			if alt == target.Sound.Grapheme {
				return true
			}
		}
		return false
	}
	return len(cand.Sound.Features) > 0 &&
		sys.PartialMatch(cand.Sound.Features.Sorted(), nil, target.Sound.Features)
}

func sequenceCovers(cand, target []token.SequenceElement, sys features.System) bool {
	if len(cand) != len(target) {
		return false
	}
	for i := range cand {
		if !elementCovers(cand[i], target[i], sys) {
			return false
		}
	}
	return true
}

// backwardContains checks that `want` - or a more general candidate
// covering it under partial-match semantics - appears among the
// backward candidates of daughter.
func backwardContains(t *testing.T, rule, daughter, want string) bool {
	t.Helper()
	sys := features.Default()
	r, err := parser.ParseRule(rule)
	require.NoError(t, err, rule)
	seq := parser.ParseSequence(daughter)
	wantSeq := parser.ParseSequence(want)
	candidates, err := Backward(seq, r)
	require.NoError(t, err, rule)
	for _, c := range candidates {
		if sequenceCovers(c, wantSeq, sys) {
			return true
		}
	}
	return false
}

// TestBackwardContainsIdentity: the original
// daughter always appears among its own backward candidates.
func TestBackwardContainsIdentity(t *testing.T) {
	for _, sc := range seedScenarios {
		r, err := parser.ParseRule(sc.rule)
		require.NoError(t, err)
		seq := parser.ParseSequence(sc.input)
		candidates, err := Backward(seq, r)
		require.NoError(t, err)
		found := false
		for _, c := range candidates {
			if parser.FormatSequence(c) == sc.input {
				found = true
				break
			}
		}
		assert.True(t, found, "rule %q: daughter %q missing from its own backward set", sc.rule, sc.input)
	}
}

// TestBackwardSeedScenarios walks the canonical rule table, checking
// that backward(forward(ante)) contains the original ante form or a
// more general reconstruction covering it.
func TestBackwardSeedScenarios(t *testing.T) {
	for _, sc := range seedScenarios {
		assert.True(t, backwardContains(t, sc.rule, sc.expected, sc.input),
			"rule %q: backward(%q) should contain %q", sc.rule, sc.expected, sc.input)
	}
}

func TestBackwardSimpleRuleYieldsBothAlternatives(t *testing.T) {
	assert.True(t, backwardContains(t, "p > b", "# a b a #", "# a p a #"))
	assert.True(t, backwardContains(t, "p > b", "# a b a #", "# a b a #"))
}

func TestBackwardOverlappingContextRecoversAllApplications(t *testing.T) {
	// both intervocalic stops must be recoverable even though the two
	// application windows share the middle vowel
	assert.True(t, backwardContains(t, "t > d / V _ V", "# a d a d a #", "# a t a t a #"))
}

func TestBackwardDeterministicOrdering(t *testing.T) {
	r, err := parser.ParseRule("p > b / V _ V")
	require.NoError(t, err)
	seq := parser.ParseSequence("# a b a #")
	first, err := Backward(seq, r)
	require.NoError(t, err)
	second, err := Backward(seq, r)
	require.NoError(t, err)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, parser.FormatSequence(first[i]), parser.FormatSequence(second[i]))
	}
	// must be sorted lexicographically by stringified form
	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, parser.FormatSequence(first[i-1]), parser.FormatSequence(first[i]))
	}
}

func TestBackwardSetCorrespondenceReconstructsPairedChoice(t *testing.T) {
	assert.True(t, backwardContains(t, "{p|b} > {f|v}", "# a f a v a #", "# a p a b a #"))
}
