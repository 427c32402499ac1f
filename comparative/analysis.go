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

package comparative

import (
	"hash/fnv"
	"sort"
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"

	"github.com/czcorpus/soundshift/features"
)

// CognateSet maps a language name to one word form (a grapheme
// sequence) sharing a common ancestor with the other forms in the set.
type CognateSet map[string][]string

// Correspondence is one aligned position across the languages of a
// cognate set: which sound each language shows there. Languages whose
// form has a gap at the position are absent from Sounds.
type Correspondence struct {
	Position int
	Sounds   map[string]string
}

// Languages returns the languages attested in this correspondence in
// sorted order.
func (c Correspondence) Languages() []string {
	return sortedKeys(c.Sounds)
}

// CorrespondencePattern is a deduplicated correspondence shape - the
// tuple of sounds shown by a fixed language list - with the number of
// aligned positions it occurred at. It implements
// collections.Comparable so patterns can be collected through a BinTree
// with unique values.
type CorrespondencePattern struct {
	Languages []string
	Sounds    []string
	Frequency int
	hash      uint64
}

func (p *CorrespondencePattern) key() string {
	return strings.Join(p.Sounds, "—")
}

func (p *CorrespondencePattern) Hash() uint64 {
	if p.hash == 0 {
		h := fnv.New64a()
		h.Write([]byte(p.key()))
		p.hash = h.Sum64()
	}
	return p.hash
}

func (p *CorrespondencePattern) Compare(other collections.Comparable) int {
	o, ok := other.(*CorrespondencePattern)
	if !ok {
		return -1
	}
	return int(p.Hash() - o.Hash())
}

// String renders the pattern in the conventional notation, e.g.
// "p — b — f".
func (p *CorrespondencePattern) String() string {
	return strings.Join(p.Sounds, " — ")
}

// Analysis runs the comparative method over a collection of cognate
// sets: correspondence extraction, pairwise language distance and
// phylogeny construction. System may be nil for purely symbol-level
// analysis; with a feature system set, alignment and distance are
// weighted by the geometry-based sound distance.
type Analysis struct {
	Cognates []CognateSet
	System   features.System
}

// NewAnalysis builds an Analysis over the given cognate sets using the
// process default feature system.
func NewAnalysis(cognates ...CognateSet) *Analysis {
	return &Analysis{Cognates: cognates, System: features.Default()}
}

// AddCognateSet appends one more cognate set to the analysis.
func (a *Analysis) AddCognateSet(forms CognateSet) {
	a.Cognates = append(a.Cognates, forms)
}

// Languages returns every language attested in at least one cognate
// set, sorted.
func (a *Analysis) Languages() []string {
	all := make(map[string]bool)
	for _, cset := range a.Cognates {
		for lang := range cset {
			all[lang] = true
		}
	}
	out := make([]string, 0, len(all))
	for lang := range all {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// FindCorrespondences aligns every cognate set and emits one
// Correspondence per aligned position attested in at least two
// languages.
func (a *Analysis) FindCorrespondences() []Correspondence {
	var out []Correspondence
	for _, cset := range a.Cognates {
		if len(cset) < 2 {
			continue
		}
		aligned := MultiAlign(cset, a.System)
		alignLen := 0
		for _, row := range aligned {
			if len(row) > alignLen {
				alignLen = len(row)
			}
		}
		for pos := 0; pos < alignLen; pos++ {
			sounds := make(map[string]string)
			for lang, row := range aligned {
				if pos < len(row) && row[pos] != Gap {
					sounds[lang] = row[pos]
				}
			}
			if len(sounds) >= 2 {
				out = append(out, Correspondence{Position: pos, Sounds: sounds})
			}
		}
	}
	return out
}

// CorrespondencePatterns dedupes the correspondences of
// FindCorrespondences into systematic patterns over the full language
// list (a gap rendered as Gap), keeping those attested at least
// minFrequency times. Patterns are collected through a
// collections.BinTree with unique values and returned in its hash
// order, which is stable for a fixed input.
func (a *Analysis) CorrespondencePatterns(minFrequency int) []*CorrespondencePattern {
	langs := a.Languages()
	freq := make(map[string]int)
	byKey := make(map[string]*CorrespondencePattern)

	for _, corr := range a.FindCorrespondences() {
		sounds := make([]string, len(langs))
		for i, lang := range langs {
			if s, ok := corr.Sounds[lang]; ok {
				sounds[i] = s
			} else {
				sounds[i] = Gap
			}
		}
		p := &CorrespondencePattern{Languages: langs, Sounds: sounds}
		freq[p.key()]++
		if _, seen := byKey[p.key()]; !seen {
			byKey[p.key()] = p
		}
	}

	patterns := new(collections.BinTree[*CorrespondencePattern])
	patterns.UniqValues = true
	for key, p := range byKey {
		if freq[key] >= minFrequency {
			p.Frequency = freq[key]
			patterns.Add(p)
		}
	}
	return patterns.ToSlice()
}

// DistanceMatrix computes the mean pairwise alignment distance between
// every pair of languages across all cognate sets. Returns the sorted
// language list and a symmetric matrix indexed by it.
func (a *Analysis) DistanceMatrix() ([]string, [][]float64) {
	langs := a.Languages()
	n := len(langs)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	if len(a.Cognates) == 0 {
		return langs, matrix
	}

	for _, cset := range a.Cognates {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				formA, okA := cset[langs[i]]
				formB, okB := cset[langs[j]]
				if !okA || !okB {
					continue
				}
				d := Distance(formA, formB, a.System)
				matrix[i][j] += d
				matrix[j][i] += d
			}
		}
	}

	nSets := float64(len(a.Cognates))
	for i := range matrix {
		for j := range matrix[i] {
			matrix[i][j] /= nSets
		}
	}
	return langs, matrix
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func mostFrequent(counts map[string]int) (string, bool) {
	best := ""
	bestCount := 0
	for _, s := range sortedKeys(counts) {
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best, bestCount > 0
}
