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

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/token"
)

// applyModifiers applies a modifier string to a feature set: tokenise
// modStr on commas, add the `+feat`/bare features via the feature
// system's category-aware AddFeatures, then remove the `-feat` ones.
func applyModifiers(base features.FeatureSet, modStr string, system features.System) features.FeatureSet {
	additions, removals, _ := features.ParseFeatureModifiers(modStr)
	result := system.AddFeatures(base, additions)
	if len(removals) > 0 {
		remove := features.NewFeatureSet(removals...)
		result = result.Subtract(remove)
	}
	return result
}

// invertModifiers swaps every `+` with `-` and every bare feature with
// `-feature`, for use by the backward engine when un-applying a
// modifier.
func invertModifiers(modStr string) string {
	parts := strings.Split(modStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		switch p[0] {
		case '+':
			out = append(out, "-"+p[1:])
		case '-':
			out = append(out, p[1:])
		default:
			out = append(out, "-"+p)
		}
	}
	return strings.Join(out, ",")
}

// applyModifierToElement applies modStr to the Sound carried by elem,
// synthesising a new Sound via reverse feature lookup (falling back to
// the original grapheme when no grapheme projects onto the resulting
// feature set).
func applyModifierToElement(elem token.SequenceElement, modStr string, system features.System) (token.SequenceElement, error) {
	if elem.IsBoundary {
		return elem, nil
	}
	newFeatures := applyModifiers(elem.Sound.Features, modStr, system)
	grapheme, ok := system.FeaturesToGrapheme(newFeatures)
	if !ok {
		grapheme = elem.Sound.Grapheme
	}
	return token.Elem(token.Sound{Grapheme: grapheme, Features: newFeatures, Partial: false}), nil
}
