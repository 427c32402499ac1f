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
	"fmt"
	"math"

	"github.com/czcorpus/soundshift/features"
)

// Reconstruction method names accepted by ReconstructProto.
const (
	MethodMajority     = "majority"
	MethodConservative = "conservative"
	MethodParsimony    = "parsimony"
	MethodSankoff      = "sankoff"
)

// ReconstructProto reconstructs a proto-form from one cognate set.
// Forms are first multi-aligned, then a proto sound is selected at each
// aligned position:
//
//   - MethodMajority: the most frequent sound.
//   - MethodConservative: sounds weighted by branch independence in the
//     phylogeny, feature markedness as the tiebreaker.
//   - MethodParsimony: Fitch parsimony over the phylogeny.
//   - MethodSankoff: weighted parsimony with a sound-distance cost
//     matrix.
//
// phylogeny may be nil, in which case the tree-based methods fall back
// to majority. system may be nil for purely symbol-level work.
func ReconstructProto(forms CognateSet, method string, phylogeny []Edge, system features.System) ([]string, error) {
	if len(forms) == 0 {
		return nil, nil
	}
	switch method {
	case MethodMajority, "":
		return majorityReconstruction(forms, system), nil
	case MethodConservative:
		return conservativeReconstruction(forms, phylogeny, system), nil
	case MethodParsimony:
		return parsimonyReconstruction(forms, phylogeny, system), nil
	case MethodSankoff:
		return sankoffReconstruction(forms, phylogeny, system), nil
	}
	return nil, fmt.Errorf("unknown reconstruction method %q", method)
}

func alignedLength(aligned map[string][]string) int {
	n := 0
	for _, row := range aligned {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func majorityReconstruction(forms CognateSet, system features.System) []string {
	aligned := MultiAlign(forms, system)
	var out []string
	for pos := 0; pos < alignedLength(aligned); pos++ {
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

// branchWeights assigns each language a weight growing with its depth
// in the phylogeny: agreement between deeper (more independently
// evolved) branches is stronger evidence for the proto value.
func branchWeights(phylogeny []Edge, languages map[string]bool) map[string]float64 {
	weights := make(map[string]float64, len(languages))
	if len(phylogeny) == 0 {
		for lang := range languages {
			weights[lang] = 1.0
		}
		return weights
	}

	children := make(map[string][]string)
	allChildren := make(map[string]bool)
	for _, e := range phylogeny {
		children[e.A] = append(children[e.A], e.B)
		allChildren[e.B] = true
	}
	root := phylogeny[0].A
	for parent := range children {
		if !allChildren[parent] {
			root = parent
			break
		}
	}

	type queued struct {
		node  string
		depth int
	}
	queue := []queued{{root, 0}}
	visited := make(map[string]bool)
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		if visited[q.node] {
			continue
		}
		visited[q.node] = true
		if languages[q.node] {
			weights[q.node] = 1.0 + float64(q.depth)*0.5
		}
		for _, child := range children[q.node] {
			queue = append(queue, queued{child, q.depth + 1})
		}
	}
	for lang := range languages {
		if _, ok := weights[lang]; !ok {
			weights[lang] = 1.0
		}
	}
	return weights
}

func conservativeReconstruction(forms CognateSet, phylogeny []Edge, system features.System) []string {
	aligned := MultiAlign(forms, system)
	langSet := make(map[string]bool, len(forms))
	for lang := range forms {
		langSet[lang] = true
	}
	weights := branchWeights(phylogeny, langSet)

	var out []string
	for pos := 0; pos < alignedLength(aligned); pos++ {
		weighted := make(map[string]float64)
		for lang, row := range aligned {
			if pos < len(row) && row[pos] != Gap {
				weighted[row[pos]] += weights[lang]
			}
		}
		if len(weighted) == 0 {
			continue
		}

		maxWeight := 0.0
		for _, w := range weighted {
			if w > maxWeight {
				maxWeight = w
			}
		}
		var candidates []string
		for _, s := range sortedKeys(weighted) {
			if weighted[s] == maxWeight {
				candidates = append(candidates, s)
			}
		}

		if len(candidates) == 1 || system == nil {
			out = append(out, candidates[0])
			continue
		}
		// tiebreak: prefer the less marked sound (fewer features)
		best := candidates[0]
		bestCount := markedness(best, system)
		for _, cand := range candidates[1:] {
			if c := markedness(cand, system); c < bestCount {
				best = cand
				bestCount = c
			}
		}
		out = append(out, best)
	}
	return out
}

func markedness(grapheme string, system features.System) int {
	fs, ok := system.GraphemeToFeatures(grapheme)
	if !ok {
		return 999
	}
	return len(fs)
}

// phyloTree converts clustering edges into a parent -> children
// adjacency list. An empty edge list yields a star tree over the tips.
func phyloTree(edges []Edge, tips map[string]bool) map[string][]string {
	children := make(map[string][]string)
	for _, e := range edges {
		children[e.A] = append(children[e.A], e.B)
	}
	if len(children) == 0 {
		star := make([]string, 0, len(tips))
		for _, t := range sortedKeys(tips) {
			star = append(star, t)
		}
		return map[string][]string{"root": star}
	}
	return children
}

func treeRoot(tree map[string][]string) (string, bool) {
	isChild := make(map[string]bool)
	for _, kids := range tree {
		for _, c := range kids {
			isChild[c] = true
		}
	}
	for _, node := range sortedKeys(tree) {
		if !isChild[node] {
			return node, true
		}
	}
	return "", false
}

func parsimonyReconstruction(forms CognateSet, phylogeny []Edge, system features.System) []string {
	if len(phylogeny) == 0 {
		return majorityReconstruction(forms, system)
	}
	tips := make(map[string]bool, len(forms))
	for lang := range forms {
		tips[lang] = true
	}
	tree := phyloTree(phylogeny, tips)
	aligned := MultiAlign(forms, system)

	var out []string
	for pos := 0; pos < alignedLength(aligned); pos++ {
		tipValues := tipValuesAt(aligned, pos)
		if len(tipValues) == 0 {
			continue
		}
		out = append(out, fitchOnePosition(tipValues, tree))
	}
	return out
}

func tipValuesAt(aligned map[string][]string, pos int) map[string]string {
	out := make(map[string]string)
	for lang, row := range aligned {
		if pos < len(row) && row[pos] != Gap {
			out[lang] = row[pos]
		}
	}
	return out
}

// fitchOnePosition runs the Fitch bottom-up pass for one aligned
// position: child state sets are intersected where possible, united on
// conflict, and the root set is resolved by overall tip frequency.
func fitchOnePosition(tipValues map[string]string, tree map[string][]string) string {
	root, ok := treeRoot(tree)
	if !ok {
		return majorityOf(tipValues)
	}

	var bottomUp func(node string) map[string]bool
	bottomUp = func(node string) map[string]bool {
		if v, isTip := tipValues[node]; isTip {
			return map[string]bool{v: true}
		}
		kids, isInternal := tree[node]
		if !isInternal {
			return map[string]bool{}
		}
		var result map[string]bool
		for _, child := range kids {
			cs := bottomUp(child)
			if len(cs) == 0 {
				continue
			}
			if result == nil {
				result = cs
				continue
			}
			inter := make(map[string]bool)
			for s := range result {
				if cs[s] {
					inter[s] = true
				}
			}
			if len(inter) > 0 {
				result = inter
			} else {
				for s := range cs {
					result[s] = true
				}
			}
		}
		if result == nil {
			return map[string]bool{}
		}
		return result
	}

	rootSet := bottomUp(root)
	if len(rootSet) == 0 {
		return majorityOf(tipValues)
	}

	counts := make(map[string]int)
	for _, v := range tipValues {
		counts[v]++
	}
	best := ""
	bestCount := -1
	for _, s := range sortedKeys(rootSet) {
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}

func majorityOf(tipValues map[string]string) string {
	counts := make(map[string]int)
	for _, v := range tipValues {
		counts[v]++
	}
	best, _ := mostFrequent(counts)
	return best
}

func sankoffReconstruction(forms CognateSet, phylogeny []Edge, system features.System) []string {
	if len(phylogeny) == 0 {
		return majorityReconstruction(forms, system)
	}
	tips := make(map[string]bool, len(forms))
	for lang := range forms {
		tips[lang] = true
	}
	tree := phyloTree(phylogeny, tips)
	aligned := MultiAlign(forms, system)

	var out []string
	for pos := 0; pos < alignedLength(aligned); pos++ {
		tipValues := tipValuesAt(aligned, pos)
		if len(tipValues) == 0 {
			continue
		}
		out = append(out, sankoffOnePosition(tipValues, tree, system))
	}
	return out
}

// sankoffOnePosition runs weighted parsimony for one aligned position
// with substitution costs taken from the feature system's sound
// distance (unit cost when no system or no features are available).
func sankoffOnePosition(tipValues map[string]string, tree map[string][]string, system features.System) string {
	stateSet := make(map[string]bool)
	for _, v := range tipValues {
		stateSet[v] = true
	}
	if len(stateSet) <= 1 {
		for s := range stateSet {
			return s
		}
		return ""
	}
	states := sortedKeys(stateSet)

	cost := func(a, b string) float64 {
		if a == b {
			return 0
		}
		if system == nil {
			return 1
		}
		fsA, okA := system.GraphemeToFeatures(a)
		fsB, okB := system.GraphemeToFeatures(b)
		if !okA || !okB {
			return 1
		}
		return system.SoundDistance(fsA, fsB)
	}

	root, ok := treeRoot(tree)
	if !ok {
		return majorityOf(tipValues)
	}

	var bottomUp func(node string) map[string]float64
	bottomUp = func(node string) map[string]float64 {
		costs := make(map[string]float64, len(states))
		if v, isTip := tipValues[node]; isTip {
			for _, s := range states {
				if s == v {
					costs[s] = 0
				} else {
					costs[s] = math.Inf(1)
				}
			}
			return costs
		}
		kids, isInternal := tree[node]
		if !isInternal {
			return costs
		}
		for _, s := range states {
			costs[s] = 0
		}
		for _, child := range kids {
			childCosts := bottomUp(child)
			if len(childCosts) == 0 {
				continue
			}
			for _, parentState := range states {
				minChild := math.Inf(1)
				for _, childState := range states {
					if c := childCosts[childState] + cost(parentState, childState); c < minChild {
						minChild = c
					}
				}
				costs[parentState] += minChild
			}
		}
		return costs
	}

	rootCosts := bottomUp(root)
	best := states[0]
	bestCost := math.Inf(1)
	for _, s := range states {
		if c, ok := rootCosts[s]; ok && c < bestCost {
			best = s
			bestCost = c
		}
	}
	return best
}

