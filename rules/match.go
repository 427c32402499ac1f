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

// Package rules implements the forward rule engine, the backward
// (ancestor-enumerating) engine and the feature-modifier helper.
package rules

import (
	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/token"
)

// matchResult is the outcome of matching a full ante sequence starting
// at a window offset: how many sequence elements were consumed and the
// per-ante-position capture.
type matchResult struct {
	consumed int
	captures []capture
}

// matchSequence runs the match protocol for pattern against
// seq[offset:], returning ok=false if pattern does not match at offset.
func matchSequence(pattern []token.Token, seq []token.SequenceElement, offset int, system features.System) (matchResult, bool) {
	return matchSequenceWithKnown(pattern, seq, offset, system, nil)
}

// matchSequenceWithKnown is matchSequence extended with a set of
// already-bound captures visible to BackRef tokens inside pattern. Its
// only caller is matchSequence, which passes nil, so a BackRef inside
// pattern does not match; the backward engine matches post with
// matchPostToken instead.
func matchSequenceWithKnown(pattern []token.Token, seq []token.SequenceElement, offset int, system features.System, known priorCaptures) (matchResult, bool) {
	stack := newCaptureStack()
	pos := offset
	for i, t := range pattern {
		consumed, cap, ok := matchOne(t, seq, pos, system, known)
		if !ok {
			unwind(stack, i)
			return matchResult{}, false
		}
		cap.consumed = consumed
		stack.begin(i, cap)
		pos += consumed
	}
	return matchResult{consumed: pos - offset, captures: stack.collected(len(pattern))}, true
}

func unwind(stack *captureStack, pushed int) {
	for i := pushed - 1; i >= 0; i-- {
		stack.end(i)
	}
}

// priorCaptures supplies already-bound captures that matchOne compares a
// BackRef token against.
type priorCaptures []capture

// matchOne matches a single token against seq starting at pos, returning
// the number of elements consumed and the capture recorded for that
// position. known, when non-nil, supplies the captures a BackRef token
// is compared against; with known nil a BackRef does not match.
func matchOne(t token.Token, seq []token.SequenceElement, pos int, system features.System, known priorCaptures) (int, capture, bool) {
	switch v := t.(type) {
	case token.Boundary:
		if pos >= len(seq) || !seq[pos].IsBoundary {
			return 0, capture{}, false
		}
		return 1, capture{element: seq[pos]}, true

	case token.Segment:
		if pos >= len(seq) || seq[pos].IsBoundary {
			return 0, capture{}, false
		}
		elem := seq[pos]
		if v.Sound.Partial {
			if !system.PartialMatch(v.Sound.Features.Sorted(), nil, elem.Sound.Features) {
				return 0, capture{}, false
			}
		} else if v.Sound.Grapheme != elem.Sound.Grapheme {
			return 0, capture{}, false
		}
		return 1, capture{element: elem}, true

	case token.Choice:
		for idx, alt := range v.Choices {
			if consumed, cap, ok := matchOne(alt, seq, pos, system, known); ok {
				cap.altIndex, cap.hasAlt = idx, true
				return consumed, cap, true
			}
		}
		return 0, capture{}, false

	case token.Set:
		for idx, alt := range v.Choices {
			if consumed, cap, ok := matchOne(alt, seq, pos, system, known); ok {
				cap.altIndex, cap.hasAlt = idx, true
				return consumed, cap, true
			}
		}
		return 0, capture{}, false

	case token.Negation:
		if pos >= len(seq) {
			return 0, capture{}, false
		}
		if consumed, _, ok := matchOne(v.Inner, seq, pos, system, known); ok {
			_ = consumed
			return 0, capture{}, false
		}
		return 1, capture{element: seq[pos]}, true

	case token.Quantified:
		switch v.Kind {
		case token.QuantOptional:
			if consumed, cap, ok := matchOne(v.Inner, seq, pos, system, known); ok {
				return consumed, cap, true
			}
			return 0, capture{element: token.SequenceElement{}}, true
		default: // QuantPlus: greedy one-or-more
			total := 0
			var last capture
			for {
				consumed, cap, ok := matchOne(v.Inner, seq, pos+total, system, known)
				if !ok {
					break
				}
				total += consumed
				last = cap
				if consumed == 0 {
					break // avoid infinite loop on zero-width inner matches
				}
			}
			if total == 0 {
				return 0, capture{}, false
			}
			return total, last, true
		}

	case token.BackRef:
		if known == nil || v.Index >= len(known) {
			return 0, capture{}, false
		}
		want := known[v.Index].element
		if v.HasMod {
			modified, err := applyModifierToElement(want, v.Modifier, system)
			if err == nil {
				want = modified
			}
		}
		if pos >= len(seq) || !seq[pos].Equal(want) {
			return 0, capture{}, false
		}
		return 1, capture{element: seq[pos]}, true

	default:
		return 0, capture{}, false
	}
}
