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

import "github.com/czcorpus/soundshift/token"

// rewriteContext canonicalises a context-bearing rule: a rule
// with a `/left _ right` context is rewritten so the context is carried
// verbatim via backreferences in post, leaving only the focus material
// actually rewritten.
func rewriteContext(left, ante, right, post []token.Token) (newAnte, newPost []token.Token) {
	shiftedAnte := shiftBackRefs(ante, len(left))
	shiftedPost := shiftBackRefs(post, len(left))
	shiftedRight := shiftBackRefs(right, len(left)+len(ante))

	newAnte = make([]token.Token, 0, len(left)+len(shiftedAnte)+len(shiftedRight))
	newAnte = append(newAnte, left...)
	newAnte = append(newAnte, shiftedAnte...)
	newAnte = append(newAnte, shiftedRight...)

	newPost = make([]token.Token, 0, len(left)+len(shiftedPost)+len(right))
	for i := 0; i < len(left); i++ {
		newPost = append(newPost, token.BackRef{Index: i})
	}
	newPost = append(newPost, shiftedPost...)
	base := len(left) + len(ante)
	for i := 0; i < len(right); i++ {
		newPost = append(newPost, token.BackRef{Index: base + i})
	}
	return newAnte, newPost
}

// shiftBackRefs returns a copy of tokens with every BackRef.Index (at any
// nesting depth) increased by delta; with delta 0 it returns tokens
// itself.
func shiftBackRefs(tokens []token.Token, delta int) []token.Token {
	if delta == 0 {
		return tokens
	}
	out := make([]token.Token, len(tokens))
	for i, t := range tokens {
		out[i] = shiftBackRefsIn(t, delta)
	}
	return out
}

func shiftBackRefsIn(t token.Token, delta int) token.Token {
	switch v := t.(type) {
	case token.BackRef:
		v.Index += delta
		return v
	case token.Negation:
		return token.Negation{Inner: shiftBackRefsIn(v.Inner, delta)}
	case token.Quantified:
		return token.Quantified{Inner: shiftBackRefsIn(v.Inner, delta), Kind: v.Kind}
	case token.Choice:
		return token.Choice{Choices: shiftBackRefs(v.Choices, delta)}
	case token.Set:
		return token.Set{Choices: shiftBackRefs(v.Choices, delta)}
	default:
		return t
	}
}
