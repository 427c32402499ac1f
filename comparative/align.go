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

// Package comparative implements the comparative-method utilities of
// historical linguistics - global sequence alignment, proto-form
// reconstruction and phylogenetic tree construction - as consumers of
// the core feature model. All functions operate on grapheme slices as
// produced by parser.ParseSequence with boundaries stripped.
package comparative

import (
	"math"

	"github.com/czcorpus/soundshift/features"
)

// Gap marks an alignment gap (an insertion or deletion between the two
// sequences).
const Gap = "-"

// Alignment is the result of a global pairwise alignment: both
// sequences padded to equal length with Gap entries, plus the raw
// alignment score.
type Alignment struct {
	A     []string
	B     []string
	Score float64
}

// default affine gap penalties, tuned for short phoneme sequences where
// a single long gap is more plausible than scattered single gaps
const (
	gapOpen   = -2.0
	gapExtend = -0.5
)

// matchScore rates a single grapheme pair. Identical graphemes score 1.
// With a feature system available, the geometry-weighted sound distance
// is mapped from [0, 1] onto the score range [1, -1]; a vowel aligned
// against a consonant is penalised below any same-category mismatch.
// Without a system (or for unknown graphemes), any mismatch scores -1.
func matchScore(a, b string, system features.System) float64 {
	if a == b {
		return 1.0
	}
	if system == nil {
		return -1.0
	}
	fsA, okA := system.GraphemeToFeatures(a)
	fsB, okB := system.GraphemeToFeatures(b)
	if !okA || !okB {
		return -1.0
	}
	if fsA.Contains("vowel") != fsB.Contains("vowel") {
		return -2.0
	}
	return 1.0 - 2.0*system.SoundDistance(fsA, fsB)
}

// Align computes a global alignment of two grapheme sequences using
// Needleman-Wunsch with affine gap penalties (three-matrix formulation:
// match/mismatch, gap-in-b, gap-in-a). system may be nil, in which case
// a plain +1/-1 substitution score is used.
func Align(seqA, seqB []string, system features.System) Alignment {
	m, n := len(seqA), len(seqB)
	negInf := math.Inf(-1)

	dpM := newMatrix(m+1, n+1, negInf)
	dpX := newMatrix(m+1, n+1, negInf) // gap in seqB (deletion from seqA)
	dpY := newMatrix(m+1, n+1, negInf) // gap in seqA (insertion from seqB)

	dpM[0][0] = 0
	for i := 1; i <= m; i++ {
		dpX[i][0] = gapOpen + gapExtend*float64(i-1)
	}
	for j := 1; j <= n; j++ {
		dpY[0][j] = gapOpen + gapExtend*float64(j-1)
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			sc := matchScore(seqA[i-1], seqB[j-1], system)
			dpM[i][j] = max3(dpM[i-1][j-1], dpX[i-1][j-1], dpY[i-1][j-1]) + sc
			dpX[i][j] = math.Max(dpM[i-1][j]+gapOpen, dpX[i-1][j]+gapExtend)
			dpY[i][j] = math.Max(dpM[i][j-1]+gapOpen, dpY[i][j-1]+gapExtend)
		}
	}

	score := max3(dpM[m][n], dpX[m][n], dpY[m][n])

	var alignedA, alignedB []string
	i, j := m, n
	state := "M"
	if dpX[m][n] > dpM[m][n] || dpY[m][n] > dpM[m][n] {
		if dpX[m][n] >= dpY[m][n] {
			state = "X"
		} else {
			state = "Y"
		}
	}

	const eps = 1e-9
	for i > 0 || j > 0 {
		switch {
		case state == "M" && i > 0 && j > 0:
			alignedA = append(alignedA, seqA[i-1])
			alignedB = append(alignedB, seqB[j-1])
			prev := dpM[i][j] - matchScore(seqA[i-1], seqB[j-1], system)
			i--
			j--
			switch {
			case math.Abs(prev-dpM[i][j]) < eps:
				state = "M"
			case math.Abs(prev-dpX[i][j]) < eps:
				state = "X"
			default:
				state = "Y"
			}
		case state == "X" && i > 0:
			alignedA = append(alignedA, seqA[i-1])
			alignedB = append(alignedB, Gap)
			here := dpX[i][j]
			i--
			if math.Abs(here-(dpX[i][j]+gapExtend)) < eps {
				state = "X"
			} else {
				state = "M"
			}
		case j > 0:
			alignedA = append(alignedA, Gap)
			alignedB = append(alignedB, seqB[j-1])
			here := dpY[i][j]
			j--
			if math.Abs(here-(dpY[i][j]+gapExtend)) < eps {
				state = "Y"
			} else {
				state = "M"
			}
		default:
			// state points into an empty row/column; fall back to the
			// remaining prefix as one run of gaps
			for i > 0 {
				alignedA = append(alignedA, seqA[i-1])
				alignedB = append(alignedB, Gap)
				i--
			}
			for j > 0 {
				alignedA = append(alignedA, Gap)
				alignedB = append(alignedB, seqB[j-1])
				j--
			}
		}
	}

	reverse(alignedA)
	reverse(alignedB)
	return Alignment{A: alignedA, B: alignedB, Score: score}
}

// Distance maps an alignment score onto a [0, 1] distance: 0 for two
// identical sequences, 1 for the worst possible alignment. Two empty
// sequences are at distance 0, an empty vs. a non-empty one at 1.
func Distance(seqA, seqB []string, system features.System) float64 {
	if len(seqA) == 0 && len(seqB) == 0 {
		return 0
	}
	if len(seqA) == 0 || len(seqB) == 0 {
		return 1
	}
	al := Align(seqA, seqB, system)
	maxLen := float64(len(seqA))
	if len(seqB) > len(seqA) {
		maxLen = float64(len(seqB))
	}
	d := 1.0 - (al.Score+maxLen)/(2*maxLen)
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}

// MultiAlign progressively aligns the forms of a cognate set: the first
// two languages (in sorted order) are aligned pairwise, then each
// further language is aligned against the running consensus and the
// existing rows are re-padded to the new reference. Gaps are Gap
// entries; every returned row has equal length.
func MultiAlign(forms map[string][]string, system features.System) map[string][]string {
	langs := sortedKeys(forms)
	if len(langs) == 0 {
		return map[string][]string{}
	}
	if len(langs) == 1 {
		only := append([]string(nil), forms[langs[0]]...)
		return map[string][]string{langs[0]: only}
	}

	first := Align(forms[langs[0]], forms[langs[1]], system)
	result := map[string][]string{
		langs[0]: first.A,
		langs[1]: first.B,
	}
	ref := first.A

	for k := 2; k < len(langs); k++ {
		consensus := consensusRow(result, len(ref))
		next := Align(consensus, forms[langs[k]], system)

		// re-pad the existing rows so they follow the new reference
		newResult := make(map[string][]string, len(result)+1)
		refIdx := 0
		for pos := range next.A {
			if next.A[pos] != Gap {
				for lang, row := range result {
					val := Gap
					if refIdx < len(row) {
						val = row[refIdx]
					}
					newResult[lang] = append(newResult[lang], val)
				}
				refIdx++
				continue
			}
			for lang := range result {
				newResult[lang] = append(newResult[lang], Gap)
			}
		}
		newResult[langs[k]] = next.B
		result = newResult
		ref = next.A
	}
	return result
}

// consensusRow picks the most frequent non-gap grapheme at each aligned
// position, skipping positions where every row has a gap.
func consensusRow(aligned map[string][]string, length int) []string {
	var out []string
	for pos := 0; pos < length; pos++ {
		counts := make(map[string]int)
		for _, row := range aligned {
			if pos < len(row) && row[pos] != Gap {
				counts[row[pos]]++
			}
		}
		if best, ok := mostFrequent(counts); ok {
			out = append(out, best)
		}
	}
	return out
}

func newMatrix(rows, cols int, fill float64) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = fill
		}
	}
	return m
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
