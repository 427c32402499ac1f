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

// Package token defines the rule-AST token sum type:
// Segment, Boundary, Focus, Empty, BackRef, Choice, Set, Negation,
// Quantified and SyllableCond, plus Sound, SequenceElement and Rule.
// Equality is structural over every field.
package token

import (
	"fmt"
	"strings"

	"github.com/czcorpus/soundshift/features"
)

// Token is the rule-AST sum type. Every variant implements String, which
// round-trips parseable rule text, and Equal, which is a structural
// comparison.
type Token interface {
	token()
	String() string
	Equal(other Token) bool
}

// Sound pairs a grapheme with the feature set the active feature system
// derives from it, and a partial flag marking sound-class placeholders
// ("any vowel") rather than fully specified segments. Immutable once
// constructed.
type Sound struct {
	Grapheme string
	Features features.FeatureSet
	Partial  bool
}

// NewSound resolves grapheme through system, producing a fully specified
// (partial=false) Sound. An unknown grapheme yields an empty feature set,
// never an error.
func NewSound(grapheme string, system features.System) Sound {
	fs, _ := system.GraphemeToFeatures(grapheme)
	if fs == nil {
		fs = features.FeatureSet{}
	}
	return Sound{Grapheme: grapheme, Features: fs, Partial: false}
}

// NewClassSound resolves a sound-class name ("V", "C", "N", ...) through
// system into a partial Sound.
func NewClassSound(class string, system features.System) (Sound, bool) {
	fs, ok := system.ClassFeatures(class)
	if !ok {
		return Sound{}, false
	}
	return Sound{Grapheme: class, Features: fs, Partial: true}, true
}

func (s Sound) String() string {
	return s.Grapheme
}

func (s Sound) Equal(other Sound) bool {
	return s.Grapheme == other.Grapheme && s.Partial == other.Partial && s.Features.Equal(other.Features)
}

// SequenceElement is the per-position content of a parsed phoneme
// sequence: either a Sound or a Boundary.
type SequenceElement struct {
	Sound      Sound
	IsBoundary bool
}

func Elem(s Sound) SequenceElement        { return SequenceElement{Sound: s} }
func BoundaryElem() SequenceElement       { return SequenceElement{IsBoundary: true} }
func (e SequenceElement) String() string {
	if e.IsBoundary {
		return "#"
	}
	return e.Sound.String()
}

func (e SequenceElement) Equal(other SequenceElement) bool {
	if e.IsBoundary != other.IsBoundary {
		return false
	}
	if e.IsBoundary {
		return true
	}
	return e.Sound.Equal(other.Sound)
}

// --- Token variants ---

// Segment is a literal or partial phoneme pattern.
type Segment struct{ Sound Sound }

func (Segment) token() {}
func (s Segment) String() string { return s.Sound.String() }
func (s Segment) Equal(other Token) bool {
	o, ok := other.(Segment)
	return ok && s.Sound.Equal(o.Sound)
}

// Boundary is the `#` word-edge token.
type Boundary struct{}

func (Boundary) token() {}
func (Boundary) String() string { return "#" }
func (b Boundary) Equal(other Token) bool {
	_, ok := other.(Boundary)
	return ok
}

// Focus is the `_` token, valid only in unparsed context sequences.
type Focus struct{}

func (Focus) token() {}
func (Focus) String() string { return "_" }
func (f Focus) Equal(other Token) bool {
	_, ok := other.(Focus)
	return ok
}

// Empty is the `:null:` deletion/insertion marker.
type Empty struct{}

func (Empty) token() {}
func (Empty) String() string { return ":null:" }
func (e Empty) Equal(other Token) bool {
	_, ok := other.(Empty)
	return ok
}

// BackRef is `@k`, 0-based internally, with an optional `[±feat,...]`
// modifier string.
type BackRef struct {
	Index    int
	Modifier string // "" if absent
	HasMod   bool
}

func (BackRef) token() {}
func (b BackRef) String() string {
	if b.HasMod {
		return fmt.Sprintf("@%d[%s]", b.Index+1, b.Modifier)
	}
	return fmt.Sprintf("@%d", b.Index+1)
}
func (b BackRef) Equal(other Token) bool {
	o, ok := other.(BackRef)
	return ok && b.Index == o.Index && b.HasMod == o.HasMod && b.Modifier == o.Modifier
}

// Choice is `a|b|c`: matches any alternative, each position independent.
type Choice struct{ Choices []Token }

func (Choice) token() {}
func (c Choice) String() string {
	parts := make([]string, len(c.Choices))
	for i, t := range c.Choices {
		parts[i] = t.String()
	}
	return strings.Join(parts, "|")
}
func (c Choice) Equal(other Token) bool {
	o, ok := other.(Choice)
	if !ok || len(c.Choices) != len(o.Choices) {
		return false
	}
	for i := range c.Choices {
		if !c.Choices[i].Equal(o.Choices[i]) {
			return false
		}
	}
	return true
}

// Set is `{a|b|c}`: a parallel set, position-locked to a correspondent
// Set elsewhere in the rule.
type Set struct{ Choices []Token }

func (Set) token() {}
func (s Set) String() string {
	parts := make([]string, len(s.Choices))
	for i, t := range s.Choices {
		parts[i] = t.String()
	}
	return "{" + strings.Join(parts, "|") + "}"
}
func (s Set) Equal(other Token) bool {
	o, ok := other.(Set)
	if !ok || len(s.Choices) != len(o.Choices) {
		return false
	}
	for i := range s.Choices {
		if !s.Choices[i].Equal(o.Choices[i]) {
			return false
		}
	}
	return true
}

// Negation is `!X`: matches any sound not matching X.
type Negation struct{ Inner Token }

func (Negation) token() {}
func (n Negation) String() string { return "!" + n.Inner.String() }
func (n Negation) Equal(other Token) bool {
	o, ok := other.(Negation)
	return ok && n.Inner.Equal(o.Inner)
}

// QuantifierKind distinguishes one-or-more from optional.
type QuantifierKind int

const (
	QuantPlus QuantifierKind = iota
	QuantOptional
)

func (k QuantifierKind) String() string {
	if k == QuantPlus {
		return "+"
	}
	return "?"
}

// Quantified is `X+` (one-or-more, greedy) or `X?` (optional).
type Quantified struct {
	Inner Token
	Kind  QuantifierKind
}

func (Quantified) token() {}
func (q Quantified) String() string { return q.Inner.String() + q.Kind.String() }
func (q Quantified) Equal(other Token) bool {
	o, ok := other.(Quantified)
	return ok && q.Kind == o.Kind && q.Inner.Equal(o.Inner)
}

// SyllablePosition names a prosodic position for SyllableCond.
type SyllablePosition int

const (
	PosOnset SyllablePosition = iota
	PosNucleus
	PosCoda
)

func (p SyllablePosition) String() string {
	switch p {
	case PosOnset:
		return "onset"
	case PosNucleus:
		return "nucleus"
	default:
		return "coda"
	}
}

// SyllableCond is a prosodic match condition; syllabification itself
// lives outside this library but the AST represents the token.
type SyllableCond struct{ Position SyllablePosition }

func (SyllableCond) token() {}
func (s SyllableCond) String() string { return "%" + s.Position.String() }
func (s SyllableCond) Equal(other Token) bool {
	o, ok := other.(SyllableCond)
	return ok && s.Position == o.Position
}

// Rule is a parsed, canonicalised sound-change rule: ante and post have
// equal semantic arity once context rewriting (if any) has run, plus the
// original source string for diagnostics and round-tripping.
type Rule struct {
	Ante   []Token
	Post   []Token
	Source string
}

func (r Rule) String() string {
	return r.Source
}
