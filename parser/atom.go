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

package parser

import (
	"strconv"
	"strings"

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/token"
)

// parseAtom parses a single whitespace-delimited atom of rule source
// (atom := boundary | focus | empty | backref | set |
// choice | negation | quantified | segment) into a token.Token.
func parseAtom(src, raw string, system features.System) (token.Token, error) {
	s := raw

	// set: {a|b|c}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		inner := s[1 : len(s)-1]
		parts := strings.Split(inner, "|")
		if len(parts) < 2 {
			return nil, newParseError(src, "set %q needs at least two alternatives", raw)
		}
		choices := make([]token.Token, 0, len(parts))
		for _, p := range parts {
			t, err := parseAtom(src, p, system)
			if err != nil {
				return nil, err
			}
			choices = append(choices, t)
		}
		return token.Set{Choices: choices}, nil
	}

	// choice: a|b|c (no braces)
	if strings.Contains(s, "|") {
		parts := strings.Split(s, "|")
		choices := make([]token.Token, 0, len(parts))
		for _, p := range parts {
			t, err := parseAtom(src, p, system)
			if err != nil {
				return nil, err
			}
			choices = append(choices, t)
		}
		return token.Choice{Choices: choices}, nil
	}

	// quantified: X+ or X?
	if strings.HasSuffix(s, "+") || strings.HasSuffix(s, "?") {
		kind := token.QuantPlus
		if strings.HasSuffix(s, "?") {
			kind = token.QuantOptional
		}
		inner, err := parseAtom(src, s[:len(s)-1], system)
		if err != nil {
			return nil, err
		}
		return token.Quantified{Inner: inner, Kind: kind}, nil
	}

	// negation: !X
	if strings.HasPrefix(s, "!") {
		inner, err := parseAtom(src, s[1:], system)
		if err != nil {
			return nil, err
		}
		return token.Negation{Inner: inner}, nil
	}

	// backref: @N or @N[modifier]
	if strings.HasPrefix(s, "@") {
		return parseBackRef(src, s)
	}

	switch s {
	case "#":
		return token.Boundary{}, nil
	case "_":
		return token.Focus{}, nil
	case ":null:":
		return token.Empty{}, nil
	}

	return parseSegment(s, system), nil
}

func parseBackRef(src, s string) (token.Token, error) {
	body := s[1:]
	modStart := strings.IndexByte(body, '[')
	var numPart, modPart string
	hasMod := false
	if modStart >= 0 {
		if !strings.HasSuffix(body, "]") {
			return nil, newParseError(src, "unterminated backref modifier in %q", s)
		}
		numPart = body[:modStart]
		modPart = body[modStart+1 : len(body)-1]
		hasMod = true
	} else {
		numPart = body
	}
	n, err := strconv.Atoi(numPart)
	if err != nil || n < 1 {
		return nil, newParseError(src, "bad backref index in %q", s)
	}
	return token.BackRef{Index: n - 1, Modifier: modPart, HasMod: hasMod}, nil
}

// parseSegment resolves a bare grapheme or sound-class name into a
// token.Segment. Uppercase identifiers are first tried against the
// active feature system's class table; everything else, and any
// uppercase identifier not found as a class, is a literal grapheme.
func parseSegment(s string, system features.System) token.Token {
	if isUppercaseIdent(s) {
		if sound, ok := token.NewClassSound(s, system); ok {
			return token.Segment{Sound: sound}
		}
	}
	return token.Segment{Sound: token.NewSound(s, system)}
}

func isUppercaseIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
