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

	"golang.org/x/text/unicode/norm"

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/resources"
	"github.com/czcorpus/soundshift/token"
)

// ParseSequence parses a space-separated phoneme sequence, with optional
// leading/trailing '#', using the process default feature system.
func ParseSequence(src string) []token.SequenceElement {
	return ParseSequenceWithSystem(src, features.Default())
}

// ParseSequenceWithSystem parses src:
// NFD-normalised, space-separated graphemes; every "#" yields a
// Boundary, everything else a Sound via system.
func ParseSequenceWithSystem(src string, system features.System) []token.SequenceElement {
	normalized := norm.NFD.String(src)
	fields := strings.Fields(normalized)
	out := make([]token.SequenceElement, 0, len(fields))
	for _, f := range fields {
		if f == "#" {
			out = append(out, token.BoundaryElem())
			continue
		}
		g := resources.NormalizeGrapheme(f)
		out = append(out, token.Elem(token.NewSound(g, system)))
	}
	return out
}

// FormatSequence renders a sequence back to the space-separated text
// format, the inverse of ParseSequence.
func FormatSequence(seq []token.SequenceElement) string {
	parts := make([]string, len(seq))
	for i, e := range seq {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}
