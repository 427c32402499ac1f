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

	"github.com/czcorpus/soundshift/token"
)

// capture is what an ante position bound during matching: the matched
// element and, for Choice/Set tokens, which alternative index fired (so
// a correspondent post-side Set can emit the parallel choice).
type capture struct {
	element  token.SequenceElement
	consumed int
	altIndex int
	hasAlt   bool
}

// captureFrame is one entry of the capture stack, labelled by the ante
// position it belongs to so push/pop order can be validated, the same
// labelled begin/end discipline used for nested markup scopes in
// corpus processing (end panics when the top frame carries a different
// label).
type captureFrame struct {
	prev  *captureFrame
	label int
	value capture
}

// captureStack accumulates per-ante-position captures while the match
// protocol walks a rule's ante against a window of the sequence. Matching
// is left-to-right and does not backtrack across positions: each
// position's capture is pushed once that position has matched and stays
// on the stack until collected reads it; when a later position fails,
// unwind pops the frames pushed so far in reverse order. The stack
// discipline exists to catch internal mismatches (popping the wrong
// label is a bug in the matcher, not caller input).
type captureStack struct {
	top  *captureFrame
	size int
}

func newCaptureStack() *captureStack {
	return &captureStack{}
}

func (s *captureStack) begin(label int, value capture) {
	s.top = &captureFrame{prev: s.top, label: label, value: value}
	s.size++
}

func (s *captureStack) end(label int) capture {
	if s.top == nil || s.top.label != label {
		panic(fmt.Sprintf("capture stack error: expected label %d, got frame %+v", label, s.top))
	}
	v := s.top.value
	s.top = s.top.prev
	s.size--
	return v
}

func (s *captureStack) Size() int {
	return s.size
}

// collected flattens the stack, bottom to top, into an ordered slice
// indexed by label. Used once matching of an ante sequence completes
// with every frame still on the stack: begin is called once per ante
// position and end only by unwind after a failed match, so by the time
// collected runs the stack holds exactly one capture per position.
func (s *captureStack) collected(n int) []capture {
	out := make([]capture, n)
	cur := s.top
	for cur != nil {
		if cur.label >= 0 && cur.label < n {
			out[cur.label] = cur.value
		}
		cur = cur.prev
	}
	return out
}
