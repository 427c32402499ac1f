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

import "strings"

// System is the capability set every feature system must provide
// provide. Systems are looked up through the registry and are
// immutable once registered.
type System interface {
	// Name identifies the system, e.g. "ipa", "tresoldi",
	// "distinctive".
	Name() string

	// GraphemeToFeatures resolves a grapheme to its feature set. ok is
	// false for a grapheme that is not in the inventory after
	// equivalence normalisation; the engines treat an unknown grapheme
	// as a Sound with an empty feature set rather than an error.
	GraphemeToFeatures(grapheme string) (fs FeatureSet, ok bool)

	// FeaturesToGrapheme performs the reverse lookup, returning the
	// first grapheme whose feature set equals fs.
	FeaturesToGrapheme(fs FeatureSet) (grapheme string, ok bool)

	// ClassFeatures returns the feature set defining a sound class such
	// as "V", "C", "N"; callers mark the resulting Sound partial=true.
	ClassFeatures(name string) (fs FeatureSet, ok bool)

	// AddFeatures implements category-aware replacement: for each
	// feature in additions, any base feature sharing its category is
	// removed before the addition is inserted.
	AddFeatures(base FeatureSet, additions []string) FeatureSet

	// PartialMatch implements pattern ⊑ target: positive is required to
	// be a subset of target, negative must not intersect it.
	PartialMatch(positive, negative []string, target FeatureSet) bool

	// FeatureDistance is the geometry tree edge distance between two
	// single feature values.
	FeatureDistance(a, b string) float64

	// SoundDistance is the geometry-weighted normalised distance between
	// two feature sets.
	SoundDistance(a, b FeatureSet) float64

	// CategoryOf returns the category a feature value belongs to (e.g.
	// "bilabial" -> "place"), or "" if unknown.
	CategoryOf(value string) string
}

// addFeaturesByCategory is the shared category-aware replacement
// algorithm: every system's AddFeatures delegates here with its own
// category map.
func addFeaturesByCategory(base FeatureSet, additions []string, categoryOf func(string) string) FeatureSet {
	out := base.Clone()
	for _, add := range additions {
		cat := categoryOf(add)
		if cat != "" {
			for existing := range out {
				if categoryOf(existing) == cat {
					delete(out, existing)
				}
			}
		}
		out[add] = true
	}
	return out
}

// partialMatch is the shared subset-with-negation test: the positive
// features must all be present in target, the negative ones absent.
func partialMatch(positive, negative []string, target FeatureSet) bool {
	for _, p := range positive {
		if !target[p] {
			return false
		}
	}
	for _, n := range negative {
		if target[n] {
			return false
		}
	}
	return true
}

// resolveAlias canonicalises a feature word that has a known synonym,
// e.g. "plosive" -> "stop". Used by the categorical systems at input
// boundaries.
func resolveAlias(value string) string {
	if canon, ok := featureAliases[value]; ok {
		return canon
	}
	return value
}

var featureAliases = map[string]string{
	"plosive": "stop",
}

// splitDescription splits a sounds.tsv NAME cell ("consonant bilabial
// stop voiceless") into its whitespace-separated feature words.
func splitDescription(name string) []string {
	fields := strings.Fields(name)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, resolveAlias(f))
	}
	return out
}
