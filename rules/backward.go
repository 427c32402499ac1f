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
	"sort"
	"strings"

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/token"
)

// slot is one unit of the left-to-right scan over the daughter sequence:
// either a single unmatched element (the identity-only case) or a window
// where rule.Post matched, carrying both the identity alternative and
// the reconstructed-ante alternative.
type slot struct {
	alternatives [][]token.SequenceElement
}

// Backward enumerates the ancestor sequences consistent with seq under
// rule, using the process default feature system.
func Backward(seq []token.SequenceElement, rule token.Rule) ([][]token.SequenceElement, error) {
	return BackwardWithSystem(seq, rule, features.Default())
}

// BackwardWithSystem is Backward parameterised on an explicit feature
// system.
func BackwardWithSystem(seq []token.SequenceElement, rule token.Rule, system features.System) ([][]token.SequenceElement, error) {
	slots := make([]slot, 0, len(seq))
	i := 0
	for i < len(seq) {
		L, ante, ok := matchPostWindow(rule, seq, i, system)
		if !ok || L == 0 {
			slots = append(slots, slot{alternatives: [][]token.SequenceElement{{seq[i]}}})
			i++
			continue
		}
		identity := append([]token.SequenceElement(nil), seq[i:i+L]...)
		slots = append(slots, slot{alternatives: dedupWindows([][]token.SequenceElement{ante, identity})})
		i += L
	}
	return cartesianJoin(slots), nil
}

// dedupWindows drops a reconstructed-ante alternative that happens to be
// identical to the identity alternative, so a no-op rule does not double
// the candidate count.
func dedupWindows(alts [][]token.SequenceElement) [][]token.SequenceElement {
	if len(alts) < 2 {
		return alts
	}
	if stringifySeq(alts[0]) == stringifySeq(alts[1]) {
		return alts[:1]
	}
	return alts
}

// matchPostWindow matches rule.Post against seq[offset:] using the same
// match protocol as the forward engine's ante matching, then
// reconstructs the corresponding ante window. ok is
// false when post does not match at offset at all.
//
// A trailing run of context backrefs in post is matched as lookahead
// only: the returned window length excludes it and the reconstruction
// stops before the corresponding ante positions, so adjacent rule
// applications sharing a context element are both recovered.
func matchPostWindow(rule token.Rule, seq []token.SequenceElement, offset int, system features.System) (int, []token.SequenceElement, bool) {
	bindings := make(map[int]token.SequenceElement)
	setChoice := make(map[int]int) // post position -> chosen Set alternative index, read back at the same ante position
	pos := offset
	for j, t := range rule.Post {
		consumed, ok := matchPostToken(t, seq, pos, bindings, setChoice, j, system)
		if !ok {
			return 0, nil, false
		}
		pos += consumed
	}
	L := pos - offset

	ante := rule.Ante
	// trailing context backrefs each consume exactly one element
	if trailing := trailingContextLen(rule); trailing > 0 && L-trailing > 0 {
		L -= trailing
		ante = rule.Ante[:len(rule.Ante)-trailing]
	}

	window, err := reconstructAnte(ante, bindings, setChoice, system)
	if err != nil {
		return 0, nil, false
	}
	return L, window, true
}

// matchPostToken matches a single post-side token against seq starting
// at pos, recording any BackRef/Set bindings discovered so the ante
// reconstruction can use them. Returns the number of daughter elements
// consumed.
func matchPostToken(
	t token.Token,
	seq []token.SequenceElement,
	pos int,
	bindings map[int]token.SequenceElement,
	setChoice map[int]int,
	postIdx int,
	system features.System,
) (int, bool) {
	switch v := t.(type) {
	case token.Empty:
		// deletion: the rule emitted nothing here, so nothing is
		// consumed from the daughter.
		return 0, true

	case token.Boundary:
		if pos >= len(seq) || !seq[pos].IsBoundary {
			return 0, false
		}
		return 1, true

	case token.Segment:
		if pos >= len(seq) || seq[pos].IsBoundary {
			return 0, false
		}
		if v.Sound.Partial {
			// forward never emits a partial segment on the post side
			// a well-formed rule cannot reach
			// this branch, but degrade to a feature subset test rather
			// than fail outright.
			if !system.PartialMatch(v.Sound.Features.Sorted(), nil, seq[pos].Sound.Features) {
				return 0, false
			}
			return 1, true
		}
		if seq[pos].Sound.Grapheme != v.Sound.Grapheme {
			return 0, false
		}
		return 1, true

	case token.BackRef:
		if pos >= len(seq) || seq[pos].IsBoundary && !boundaryBackrefOK(v) {
			return 0, false
		}
		elem := seq[pos]
		ante := elem
		if v.HasMod && !elem.IsBoundary {
			inverted, err := applyModifierToElement(elem, invertModifiers(v.Modifier), system)
			if err != nil {
				return 0, false
			}
			ante = inverted
		}
		if prior, ok := bindings[v.Index]; ok && !prior.Equal(ante) {
			// Inconsistent with an earlier occurrence of the same
			// backref: still accept the later (more specific) binding
			// rather than fail the whole reconstruction, mirroring the
			// engine's tolerance of unknown/ambiguous input.
			_ = prior
		}
		bindings[v.Index] = ante
		return 1, true

	case token.Set:
		if pos >= len(seq) || seq[pos].IsBoundary {
			return 0, false
		}
		for idx, alt := range v.Choices {
			seg, ok := alt.(token.Segment)
			if !ok || seg.Sound.Partial {
				continue
			}
			if seg.Sound.Grapheme == seq[pos].Sound.Grapheme {
				setChoice[postIdx] = idx
				return 1, true
			}
		}
		return 0, false

	default:
		// Choice/Negation/Quantified/Focus/SyllableCond are illegal on
		// the post side; a well-formed rule never
		// puts them there.
		return 0, false
	}
}

// boundaryBackrefOK reports whether a BackRef is allowed to match a
// Boundary element: true whenever no feature modifier is attached,
// since boundaries carry no features to modify.
func boundaryBackrefOK(b token.BackRef) bool {
	return !b.HasMod
}

// reconstructAnte walks rule.Ante and produces the reconstructed
// ancestor window, preferring a binding captured while
// matching post (context positions, and focus positions referenced via
// a BackRef) over the ante token's own literal form.
func reconstructAnte(
	ante []token.Token,
	bindings map[int]token.SequenceElement,
	setChoice map[int]int,
	system features.System,
) ([]token.SequenceElement, error) {
	var out []token.SequenceElement
	for k, t := range ante {
		if bound, ok := bindings[k]; ok {
			out = append(out, bound)
			continue
		}
		elems, err := reconstructAnteToken(t, k, setChoice, system)
		if err != nil {
			return nil, err
		}
		out = append(out, elems...)
	}
	return out, nil
}

func reconstructAnteToken(t token.Token, anteIdx int, setChoice map[int]int, system features.System) ([]token.SequenceElement, error) {
	switch v := t.(type) {
	case token.Segment:
		// Partial (class) sounds are reconstructed as the class
		// placeholder itself, preserving its grapheme.
		return []token.SequenceElement{token.Elem(v.Sound)}, nil

	case token.Boundary:
		return []token.SequenceElement{token.BoundaryElem()}, nil

	case token.Empty:
		// This ante position produced no daughter element (an
		// insertion by the rule): nothing to reconstruct.
		return nil, nil

	case token.BackRef:
		// An ante-side BackRef with no binding recorded while matching
		// post falls back to its own stringified form.
		return []token.SequenceElement{placeholderElem(v.String())}, nil

	case token.Set:
		if idx, ok := setChoice[anteIdx]; ok && idx < len(v.Choices) {
			return reconstructAnteToken(v.Choices[idx], anteIdx, setChoice, system)
		}
		return []token.SequenceElement{placeholderElem(v.String())}, nil

	case token.Choice:
		return []token.SequenceElement{placeholderElem(v.String())}, nil

	default:
		// Negation, Quantified, SyllableCond: the original quantity or
		// prosodic condition cannot be recovered from the daughter, so
		// do not guess - emit the token stringified as a placeholder.
		return []token.SequenceElement{placeholderElem(v.String())}, nil
	}
}

// placeholderElem synthesises an ambiguous/under-specified reconstructed
// position as a partial Sound whose grapheme is the stringified token
// text (e.g. "p|b", "C+").
func placeholderElem(text string) token.SequenceElement {
	return token.Elem(token.Sound{Grapheme: text, Features: features.FeatureSet{}, Partial: true})
}

// cartesianJoin expands the per-slot alternative lists into every full
// candidate ancestor sequence, deduplicated and sorted lexicographically
// by stringified form for reproducible output ordering.
func cartesianJoin(slots []slot) [][]token.SequenceElement {
	if len(slots) == 0 {
		return nil
	}
	combos := [][]token.SequenceElement{nil}
	for _, s := range slots {
		next := make([][]token.SequenceElement, 0, len(combos)*len(s.alternatives))
		for _, prefix := range combos {
			for _, alt := range s.alternatives {
				seq := make([]token.SequenceElement, 0, len(prefix)+len(alt))
				seq = append(seq, prefix...)
				seq = append(seq, alt...)
				next = append(next, seq)
			}
		}
		combos = next
	}

	seen := make(map[string]bool, len(combos))
	out := make([][]token.SequenceElement, 0, len(combos))
	for _, c := range combos {
		key := stringifySeq(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return stringifySeq(out[i]) < stringifySeq(out[j])
	})
	return out
}

func stringifySeq(seq []token.SequenceElement) string {
	parts := make([]string, len(seq))
	for i, e := range seq {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}
