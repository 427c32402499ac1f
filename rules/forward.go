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
	"fmt"

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/token"
)

// EmitError is returned when a rule's post side contains a token variant
// illegal at emission time.
type EmitError struct {
	Rule   string
	Detail string
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("cannot emit post-side token in rule %q: %s", e.Rule, e.Detail)
}

// Forward applies rule to seq using the process default feature system:
// a single left-to-right, non-overlapping, greedy matcher.
func Forward(seq []token.SequenceElement, rule token.Rule) ([]token.SequenceElement, error) {
	return ForwardWithSystem(seq, rule, features.Default())
}

// ForwardWithSystem is Forward parameterised on an explicit feature
// system.
func ForwardWithSystem(seq []token.SequenceElement, rule token.Rule, system features.System) ([]token.SequenceElement, error) {
	trailing := trailingContextLen(rule)
	var out []token.SequenceElement
	i := 0
	for i < len(seq) {
		m, ok := matchSequence(rule.Ante, seq, i, system)
		if !ok {
			out = append(out, seq[i])
			i++
			continue
		}

		// A trailing run of context backrefs is lookahead: it is left
		// unconsumed (and unemitted) so the next window can reuse the
		// shared context elements, e.g. the middle vowel in
		// "t > d / V _ V" applied to "a t a t a".
		post := rule.Post
		advance := m.consumed
		if trailing > 0 {
			ctxElems := 0
			for j := len(rule.Ante) - trailing; j < len(rule.Ante); j++ {
				ctxElems += m.captures[j].consumed
			}
			if m.consumed-ctxElems > 0 {
				post = rule.Post[:len(rule.Post)-trailing]
				advance = m.consumed - ctxElems
			}
		}

		emitted, err := emitPost(rule, post, m.captures, system)
		if err != nil {
			return nil, err
		}
		out = append(out, emitted...)
		if advance == 0 {
			// zero-width ante (e.g. an all-optional pattern): advance by
			// one to guarantee termination, matching the "failed match
			// advances by 1" rule's spirit.
			i++
			continue
		}
		i += advance
	}
	return out, nil
}

// trailingContextLen reports how many tokens at the end of rule.Post
// form a run of unmodified backrefs referencing the final ante
// positions in order - the shape context canonicalisation produces for
// a right-hand context. Returns 0 when post ends in anything else.
func trailingContextLen(rule token.Rule) int {
	n := 0
	for j := len(rule.Post) - 1; j >= 0; j-- {
		br, ok := rule.Post[j].(token.BackRef)
		if !ok || br.HasMod || br.Index != len(rule.Ante)-1-n {
			break
		}
		n++
	}
	return n
}

// emitPost resolves post tokens against captures bound by the matched
// ante window. post is rule.Post or a prefix of it (when a trailing
// context run is left for the next window).
func emitPost(rule token.Rule, post []token.Token, captures []capture, system features.System) ([]token.SequenceElement, error) {
	var out []token.SequenceElement
	for _, t := range post {
		switch v := t.(type) {
		case token.Segment:
			if v.Sound.Partial {
				return nil, &EmitError{Rule: rule.Source, Detail: "post side contains a partial (class) segment " + v.Sound.Grapheme}
			}
			out = append(out, token.Elem(v.Sound))

		case token.Empty:
			// deletion: emit nothing

		case token.Boundary:
			out = append(out, token.BoundaryElem())

		case token.BackRef:
			if v.Index >= len(captures) {
				return nil, &EmitError{Rule: rule.Source, Detail: "backref index out of range"}
			}
			elem := captures[v.Index].element
			if v.HasMod {
				modified, err := applyModifierToElement(elem, v.Modifier, system)
				if err != nil {
					return nil, err
				}
				elem = modified
			}
			out = append(out, elem)

		case token.Set:
			resolved, err := resolveCorrespondentSet(rule, v, captures, system)
			if err != nil {
				return nil, err
			}
			out = append(out, resolved...)

		default:
			return nil, &EmitError{Rule: rule.Source, Detail: fmt.Sprintf("illegal post-side token %T", t)}
		}
	}
	return out, nil
}

// resolveCorrespondentSet pairs postSet with the first ante-side Set that
// has the same number of alternatives and whose capture recorded an
// alternative, and emits the postSet alternative at the index that
// matched in ante.
func resolveCorrespondentSet(rule token.Rule, postSet token.Set, captures []capture, system features.System) ([]token.SequenceElement, error) {
	for j, anteTok := range rule.Ante {
		anteSet, ok := anteTok.(token.Set)
		if !ok || j >= len(captures) {
			continue
		}
		cap := captures[j]
		if !cap.hasAlt {
			continue
		}
		if len(anteSet.Choices) != len(postSet.Choices) {
			continue
		}
		if cap.altIndex >= len(postSet.Choices) {
			return nil, &EmitError{Rule: rule.Source, Detail: "set correspondence index out of range"}
		}
		chosen := postSet.Choices[cap.altIndex]
		elems, err := emitPost(rule, []token.Token{chosen}, captures, system)
		if err != nil {
			return nil, err
		}
		return elems, nil
	}
	return nil, &EmitError{Rule: rule.Source, Detail: "no correspondent ante Set found for post Set"}
}
