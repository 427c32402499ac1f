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

// Package parser lexes and parses rule strings into canonicalised
// token.Rule values, and parses plain phoneme sequences
// into token.SequenceElement vectors.
package parser

import "fmt"

// ParseError carries the offending source snippet and the reason parsing
// failed.
type ParseError struct {
	Source string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q: %s", e.Source, e.Reason)
}

func newParseError(source, reason string, args ...any) *ParseError {
	return &ParseError{Source: source, Reason: fmt.Sprintf(reason, args...)}
}
