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

import (
	"strings"
	"sync"

	"github.com/czcorpus/soundshift/resources"
)

// secondaryArticulationCategories lists the feature categories the plain
// categorical IPA system strips at input: the extended
// "Tresoldi" system keeps them.
var secondaryArticulationCategories = map[string]bool{
	"nasalization":      true,
	"labialization":     true,
	"palatalization":    true,
	"velarization":      true,
	"pharyngealization": true,
	"aspiration":        true,
	"glottalization":    true,
	"breathiness":       true,
	"creakiness":        true,
	"ejection":          true,
	"duration":          true,
}

// categoricalSystem implements both the default categorical IPA system
// and, with extended=true, the "Tresoldi" extended categorical system:
// the two share every operation and differ only in whether secondary
// articulation vocabulary survives grapheme_to_features.
type categoricalSystem struct {
	name     string
	extended bool

	once        sync.Once
	tables      *resources.Tables
	loadErr     error
	reverse     map[string]string // feature-set key -> first grapheme
	reverseOnce sync.Once
}

func newCategoricalSystem(name string, extended bool) *categoricalSystem {
	return &categoricalSystem{name: name, extended: extended}
}

func (s *categoricalSystem) ensure() *resources.Tables {
	s.once.Do(func() {
		s.tables, s.loadErr = resources.Load()
	})
	return s.tables
}

func (s *categoricalSystem) Name() string { return s.name }

func (s *categoricalSystem) CategoryOf(value string) string {
	t := s.ensure()
	if t == nil {
		return ""
	}
	return t.FeatureCategory[resolveAlias(value)]
}

func (s *categoricalSystem) GraphemeToFeatures(grapheme string) (FeatureSet, bool) {
	t := s.ensure()
	if t == nil {
		return nil, false
	}
	grapheme = resources.NormalizeGrapheme(grapheme)
	name, ok := t.Sounds[grapheme]
	if !ok {
		return FeatureSet{}, false
	}
	words := splitDescription(name)
	fs := make(FeatureSet, len(words))
	for _, w := range words {
		if !s.extended && secondaryArticulationCategories[t.FeatureCategory[w]] {
			continue
		}
		fs[w] = true
	}
	return fs, true
}

func (s *categoricalSystem) buildReverseIndex() {
	s.reverseOnce.Do(func() {
		t := s.ensure()
		s.reverse = make(map[string]string)
		if t == nil {
			return
		}
		for grapheme := range t.Sounds {
			fs, ok := s.GraphemeToFeatures(grapheme)
			if !ok {
				continue
			}
			key := fs.Key()
			if _, exists := s.reverse[key]; !exists {
				s.reverse[key] = grapheme
			}
		}
	})
}

func (s *categoricalSystem) FeaturesToGrapheme(fs FeatureSet) (string, bool) {
	s.buildReverseIndex()
	g, ok := s.reverse[fs.Key()]
	return g, ok
}

func (s *categoricalSystem) ClassFeatures(name string) (FeatureSet, bool) {
	t := s.ensure()
	if t == nil {
		return nil, false
	}
	entry, ok := t.Classes[name]
	if !ok {
		return nil, false
	}
	parts := strings.Split(entry.Features, ",")
	fs := make(FeatureSet, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			fs[resolveAlias(p)] = true
		}
	}
	return fs, true
}

func (s *categoricalSystem) AddFeatures(base FeatureSet, additions []string) FeatureSet {
	return addFeaturesByCategory(base, additions, s.CategoryOf)
}

func (s *categoricalSystem) PartialMatch(positive, negative []string, target FeatureSet) bool {
	return partialMatch(positive, negative, target)
}

func (s *categoricalSystem) FeatureDistance(a, b string) float64 {
	return float64(FeatureDistance(a, b))
}

func (s *categoricalSystem) SoundDistance(a, b FeatureSet) float64 {
	return SoundDistance(map[string]bool(a), map[string]bool(b))
}
