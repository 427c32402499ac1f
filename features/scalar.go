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

package features

// scalarDimension is one of the 30 named scalar-distinctive dimensions
// (one per geometry leaf), each tagged with the geometry node it projects from for depth-weighted
// distance.
type scalarDimension struct {
	name             string
	positive         string
	negative         string
	geometryNodeName string
	depth            int
}

var scalarDimensions = buildScalarDimensions()

func buildScalarDimensions() []scalarDimension {
	var dims []scalarDimension
	var walk func(n *geometryNode, depth int)
	walk = func(n *geometryNode, depth int) {
		for _, l := range n.leaves {
			dims = append(dims, scalarDimension{
				name:             l.name,
				positive:         l.positive,
				negative:         l.negative,
				geometryNodeName: n.name,
				depth:            depth,
			})
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(Geometry, 1)
	return dims
}

// scalarSystem is the "scalar distinctive" feature system: each grapheme
// projects onto a vector of 30 dimensions in [-1, 1], missing = 0,
// derived from the categorical IPA feature set and the geometry tree.
type scalarSystem struct {
	name string
	base *categoricalSystem
}

func newScalarSystem(name string, base *categoricalSystem) *scalarSystem {
	return &scalarSystem{name: name, base: base}
}

// Vector projects a categorical feature set onto the scalar dimension
// space: +1 where the dimension's positive pole is present, -1 for the
// negative pole, 0 if neither is mentioned.
func Vector(fs FeatureSet) map[string]float64 {
	out := make(map[string]float64, len(scalarDimensions))
	for _, d := range scalarDimensions {
		switch {
		case d.positive != "" && fs[d.positive]:
			out[d.name] = 1.0
		case d.negative != "" && fs[d.negative]:
			out[d.name] = -1.0
		default:
			out[d.name] = 0.0
		}
	}
	return out
}

func (s *scalarSystem) Name() string { return s.name }

func (s *scalarSystem) CategoryOf(value string) string {
	return s.base.CategoryOf(value)
}

func (s *scalarSystem) GraphemeToFeatures(grapheme string) (FeatureSet, bool) {
	return s.base.GraphemeToFeatures(grapheme)
}

func (s *scalarSystem) FeaturesToGrapheme(fs FeatureSet) (string, bool) {
	return s.base.FeaturesToGrapheme(fs)
}

func (s *scalarSystem) ClassFeatures(name string) (FeatureSet, bool) {
	return s.base.ClassFeatures(name)
}

func (s *scalarSystem) AddFeatures(base FeatureSet, additions []string) FeatureSet {
	return s.base.AddFeatures(base, additions)
}

func (s *scalarSystem) PartialMatch(positive, negative []string, target FeatureSet) bool {
	return s.base.PartialMatch(positive, negative, target)
}

func (s *scalarSystem) FeatureDistance(a, b string) float64 {
	return s.base.FeatureDistance(a, b)
}

// SoundDistance computes geometry-depth-weighted L1 distance between the
// scalar projections of two categorical feature sets, normalised to
// [0, 1] by the summed weight of all dimensions.
func (s *scalarSystem) SoundDistance(a, b FeatureSet) float64 {
	va, vb := Vector(a), Vector(b)
	var totalWeight, totalDiff float64
	for _, d := range scalarDimensions {
		weight := 1.0 / float64(d.depth)
		totalWeight += weight
		diff := va[d.name] - vb[d.name]
		if diff < 0 {
			diff = -diff
		}
		totalDiff += weight * diff / 2.0
	}
	if totalWeight == 0 {
		return 0.0
	}
	return totalDiff / totalWeight
}
