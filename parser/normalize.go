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
)

// normalizeInput NFD-normalises s, collapses runs of whitespace to a
// single space, and rewrites the ASCII "->" arrow spelling to the
// canonical "→".
func normalizeInput(s string) string {
	s = norm.NFD.String(s)
	s = strings.ReplaceAll(s, "->", "→")
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func isArrowToken(tok string) bool {
	return tok == ">" || tok == "→"
}
