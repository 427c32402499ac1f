// Copyright 2017 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2017 Charles University, Faculty of Arts,
//                Institute of the Czech National Corpus
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

package features

import "sort"

// unknownFeatureDistance is the sentinel distance returned when one of the
// two compared feature values does not occur anywhere in the geometry tree.
const unknownFeatureDistance = 999

// featureLeaf is a binary phonological feature: a named opposition with a
// positive and (optionally empty, for privative features) negative pole.
type featureLeaf struct {
	name     string
	positive string
	negative string
}

// geometryNode is an internal grouping node of the feature geometry tree
// (Clements & Hume 1995 style): Laryngeal, Manner, Place and its
// Labial/Coronal/Dorsal/Pharyngeal/Glottal children, TongueRoot, Prosodic.
type geometryNode struct {
	name     string
	leaves   []featureLeaf
	children []*geometryNode
}

func (n *geometryNode) findParent(value string) *geometryNode {
	for _, l := range n.leaves {
		if l.positive == value || l.negative == value {
			return n
		}
	}
	for _, c := range n.children {
		for _, l := range c.leaves {
			if l.positive == value || l.negative == value {
				return c
			}
		}
		if found := c.findParent(value); found != nil {
			return found
		}
	}
	return nil
}

func (n *geometryNode) pathTo(value string) []string {
	for _, l := range n.leaves {
		if l.positive == value || l.negative == value {
			return []string{n.name, l.name, value}
		}
	}
	for _, c := range n.children {
		if sub := c.pathTo(value); sub != nil {
			return append([]string{n.name}, sub...)
		}
	}
	return nil
}

// depthOf returns the geometry node depth (root children = 1) of the named
// grouping node, or 0 if not found.
func (n *geometryNode) depthOf(name string, depth int) int {
	if n.name == name {
		return depth
	}
	for _, c := range n.children {
		if d := c.depthOf(name, depth+1); d != 0 {
			return d
		}
	}
	return 0
}

type leafAtDepth struct {
	leaf  featureLeaf
	depth int
}

func (n *geometryNode) iterLeaves(depth int) []leafAtDepth {
	var out []leafAtDepth
	for _, l := range n.leaves {
		out = append(out, leafAtDepth{l, depth})
	}
	for _, c := range n.children {
		out = append(out, c.iterLeaves(depth+1)...)
	}
	return out
}

// Geometry is the phonological feature geometry tree, shared by every
// feature system for feature-distance and sound-distance calculations.
var Geometry = &geometryNode{
	name: "Root",
	children: []*geometryNode{
		{
			name: "Laryngeal",
			leaves: []featureLeaf{
				{"voice", "voiced", "voiceless"},
				{"spread_glottis", "aspirated", ""},
				{"constricted_glottis", "glottalized", ""},
				{"breathy_voice", "breathy", ""},
				{"creaky_voice", "creaky", ""},
			},
		},
		{
			name: "Manner",
			leaves: []featureLeaf{
				{"sonorant", "sonorant", "obstruent"},
				{"continuant", "continuant", ""},
				{"nasal", "nasal", ""},
				{"lateral", "lateral", ""},
				{"strident", "sibilant", ""},
				{"delayed_release", "affricate", ""},
				{"tap_feature", "tap", ""},
				{"syllabic", "syllabic", "non-syllabic"},
			},
		},
		{
			name: "Place",
			children: []*geometryNode{
				{name: "Labial", leaves: []featureLeaf{{"round", "rounded", "unrounded"}}},
				{name: "Coronal", leaves: []featureLeaf{
					{"anterior", "anterior", ""},
					{"distributed", "distributed", ""},
				}},
				{name: "Dorsal", leaves: []featureLeaf{
					{"high", "close", "open"},
					{"low", "near-open", "near-close"},
					{"back", "back", "front"},
				}},
				{name: "Pharyngeal", leaves: []featureLeaf{
					{"pharyngeal_place", "pharyngeal", ""},
					{"epiglottal_place", "epiglottal", ""},
				}},
				{name: "Glottal", leaves: []featureLeaf{{"glottal_place", "glottal", ""}}},
			},
		},
		{
			name: "TongueRoot",
			leaves: []featureLeaf{
				{"atr", "advanced-tongue-root", "retracted-tongue-root"},
			},
		},
		{
			name: "Prosodic",
			leaves: []featureLeaf{
				{"long_feature", "long", ""},
				{"nasalized_feature", "nasalized", ""},
				{"labialized_feature", "labialized", ""},
				{"palatalized_feature", "palatalized", ""},
				{"pharyngealized_feature", "pharyngealized", ""},
				{"ejective_feature", "ejective", ""},
				{"stress_feature", "primary-stress", ""},
			},
		},
	},
}

// featureToGeometryNode maps IPA categorical feature values (as loaded from
// resources/data/features.tsv and the sounds table) onto the geometry node
// whose categorical group they belong to, for the node-group contribution
// of SoundDistance.
var featureToGeometryNode = map[string]string{
	"voiced": "Laryngeal", "voiceless": "Laryngeal", "aspirated": "Laryngeal",
	"glottalized": "Laryngeal", "breathy": "Laryngeal", "creaky": "Laryngeal",

	"stop": "Manner", "fricative": "Manner", "affricate": "Manner", "nasal": "Manner",
	"approximant": "Manner", "trill": "Manner", "tap": "Manner", "lateral": "Manner",
	"click": "Manner", "implosive": "Manner", "sibilant": "Manner",
	"syllabic": "Manner", "non-syllabic": "Manner", "rhotic": "Manner", "liquid": "Manner",
	"plosive": "Manner",

	"bilabial": "Labial", "labio-dental": "Labial", "labio-velar": "Labial",
	"labio-palatal": "Labial", "labial": "Labial", "rounded": "Labial", "unrounded": "Labial",

	"dental": "Coronal", "alveolar": "Coronal", "post-alveolar": "Coronal",
	"alveolo-palatal": "Coronal", "retroflex": "Coronal", "linguolabial": "Coronal",

	"palatal": "Dorsal", "palatal-velar": "Dorsal", "velar": "Dorsal", "uvular": "Dorsal",
	"close": "Dorsal", "near-close": "Dorsal", "close-mid": "Dorsal", "mid": "Dorsal",
	"open-mid": "Dorsal", "near-open": "Dorsal", "open": "Dorsal", "front": "Dorsal",
	"near-front": "Dorsal", "central": "Dorsal", "near-back": "Dorsal", "back": "Dorsal",

	"pharyngeal": "Pharyngeal", "epiglottal": "Pharyngeal",

	"glottal": "Glottal",

	"advanced-tongue-root": "TongueRoot", "retracted-tongue-root": "TongueRoot",

	"long": "Prosodic", "nasalized": "Prosodic", "labialized": "Prosodic",
	"palatalized": "Prosodic", "pharyngealized": "Prosodic", "ejective": "Prosodic",
	"primary-stress": "Prosodic",
}

// FeatureDistance returns the tree edge distance between two feature
// values: 0 if equal, the sum of edges up to their lowest common ancestor
// and back down otherwise, or the sentinel 999 if either value is absent
// from the geometry tree.
func FeatureDistance(a, b string) int {
	if a == b {
		return 0
	}
	pathA := Geometry.pathTo(a)
	pathB := Geometry.pathTo(b)
	if pathA == nil || pathB == nil {
		return unknownFeatureDistance
	}
	common := 0
	for common < len(pathA) && common < len(pathB) && pathA[common] == pathB[common] {
		common++
	}
	return (len(pathA) - common) + (len(pathB) - common)
}

// SoundDistance computes the geometry-weighted normalised distance between
// two feature value sets, combining binary leaf oppositions (weighted by
// 1/depth) with categorical node-group contributions.
func SoundDistance(a, b map[string]bool) float64 {
	if sameSet(a, b) {
		return 0.0
	}

	var totalWeight, totalDiff float64

	for _, ld := range Geometry.iterLeaves(1) {
		weight := 1.0 / float64(ld.depth)
		leaf := ld.leaf

		aPos := leaf.positive != "" && a[leaf.positive]
		aNeg := leaf.negative != "" && a[leaf.negative]
		bPos := leaf.positive != "" && b[leaf.positive]
		bNeg := leaf.negative != "" && b[leaf.negative]

		if !aPos && !aNeg && !bPos && !bNeg {
			continue
		}
		totalWeight += weight

		aVal := polarity(aPos, aNeg)
		bVal := polarity(bPos, bNeg)
		diff := aVal - bVal
		if diff < 0 {
			diff = -diff
		}
		totalDiff += weight * diff / 2.0
	}

	nodeA := make(map[string]map[string]bool)
	nodeB := make(map[string]map[string]bool)
	union := make(map[string]bool)
	for f := range a {
		union[f] = true
	}
	for f := range b {
		union[f] = true
	}
	for f := range union {
		node, ok := featureToGeometryNode[f]
		if !ok {
			continue
		}
		if nodeA[node] == nil {
			nodeA[node] = make(map[string]bool)
			nodeB[node] = make(map[string]bool)
		}
		if a[f] {
			nodeA[node][f] = true
		}
		if b[f] {
			nodeB[node][f] = true
		}
	}
	nodes := make([]string, 0, len(nodeA))
	for node := range nodeA {
		nodes = append(nodes, node)
	}
	// a fixed summation order keeps the result bit-identical across runs
	// and under argument swap
	sort.Strings(nodes)
	for _, node := range nodes {
		depth := Geometry.depthOf(node, 0)
		if depth == 0 {
			depth = 2
		}
		weight := 1.0 / float64(depth)
		totalWeight += weight

		setA, setB := nodeA[node], nodeB[node]
		switch {
		case sameSet(setA, setB):
			// identical, no contribution
		case len(setA) == 0 || len(setB) == 0:
			totalDiff += weight * 0.5
		default:
			totalDiff += weight * 1.0
		}
	}

	if totalWeight == 0 {
		return 0.0
	}
	return totalDiff / totalWeight
}

func polarity(pos, neg bool) float64 {
	switch {
	case pos:
		return 1.0
	case neg:
		return -1.0
	default:
		return 0.0
	}
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if v && !b[k] {
			return false
		}
	}
	return true
}
