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
	"strings"

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/token"
)

// ParseRule parses src using the process default feature system.
func ParseRule(src string) (token.Rule, error) {
	return ParseRuleWithSystem(src, features.Default())
}

// ParseRuleWithSystem lexes and parses a rule string into a canonicalised
// token.Rule. Context-bearing rules (a `/` clause) are
// rewritten into focus form.
func ParseRuleWithSystem(src string, system features.System) (token.Rule, error) {
	original := src
	normalized := normalizeInput(src)
	if normalized == "" {
		return token.Rule{}, newParseError(original, "empty rule")
	}
	fields := strings.Fields(normalized)

	arrowIdx := -1
	for i, f := range fields {
		if isArrowToken(f) {
			arrowIdx = i
			break
		}
	}
	if arrowIdx < 0 {
		return token.Rule{}, newParseError(original, "missing arrow")
	}
	anteFields := fields[:arrowIdx]
	rest := fields[arrowIdx+1:]

	slashIdx := -1
	for i, f := range rest {
		if f == "/" {
			slashIdx = i
			break
		}
	}

	var postFields, contextFields []string
	if slashIdx >= 0 {
		postFields = rest[:slashIdx]
		contextFields = rest[slashIdx+1:]
	} else {
		postFields = rest
	}

	if len(anteFields) == 0 || len(postFields) == 0 {
		return token.Rule{}, newParseError(original, "empty sequence on ante or post side")
	}

	ante, err := parseSequenceFields(original, anteFields, system)
	if err != nil {
		return token.Rule{}, err
	}
	post, err := parseSequenceFields(original, postFields, system)
	if err != nil {
		return token.Rule{}, err
	}

	if contextFields != nil {
		left, right, err := splitContext(original, contextFields, system)
		if err != nil {
			return token.Rule{}, err
		}
		ante, post = rewriteContext(left, ante, right, post)
	}

	if err := checkSetArity(original, ante, post); err != nil {
		return token.Rule{}, err
	}

	return token.Rule{Ante: ante, Post: post, Source: original}, nil
}

func parseSequenceFields(src string, fields []string, system features.System) ([]token.Token, error) {
	out := make([]token.Token, 0, len(fields))
	for _, f := range fields {
		t, err := parseAtom(src, f, system)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// splitContext locates the single Focus ('_') atom in a context sequence
// and splits it into the left and right flanking token sequences.
func splitContext(src string, fields []string, system features.System) (left, right []token.Token, err error) {
	focusIdx := -1
	for i, f := range fields {
		if f == "_" {
			if focusIdx >= 0 {
				return nil, nil, newParseError(src, "context has more than one focus '_'")
			}
			focusIdx = i
		}
	}
	if focusIdx < 0 {
		return nil, nil, newParseError(src, "context lacks focus '_'")
	}
	left, err = parseSequenceFields(src, fields[:focusIdx], system)
	if err != nil {
		return nil, nil, err
	}
	right, err = parseSequenceFields(src, fields[focusIdx+1:], system)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// checkSetArity enforces that every token.Set in ante has an equal
// cardinality counterpart at the corresponding post position, the
// cardinality counterpart at the corresponding post position.
func checkSetArity(src string, ante, post []token.Token) error {
	for i, t := range ante {
		anteSet, ok := t.(token.Set)
		if !ok {
			continue
		}
		if i >= len(post) {
			continue
		}
		postSet, ok := post[i].(token.Set)
		if !ok {
			continue
		}
		if len(anteSet.Choices) != len(postSet.Choices) {
			return newParseError(src, "set correspondence arity mismatch at position %d: %d vs %d",
				i, len(anteSet.Choices), len(postSet.Choices))
		}
	}
	return nil
}
