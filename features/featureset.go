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

// Package features implements the feature-system abstraction,
// the feature geometry tree, and the three concrete
// feature systems (categorical IPA, extended categorical, scalar
// distinctive), plus the process-wide feature-system registry.
package features

import (
	"sort"
	"strings"
)

// FeatureSet is an unordered set of feature-value identifiers, e.g.
// {"voiced", "bilabial", "stop"}. It is treated as immutable once
// constructed: Clone, Subtract and Union always return a new set.
type FeatureSet map[string]bool

// NewFeatureSet builds a FeatureSet from a list of feature values.
func NewFeatureSet(values ...string) FeatureSet {
	fs := make(FeatureSet, len(values))
	for _, v := range values {
		fs[v] = true
	}
	return fs
}

// Clone returns an independent copy.
func (fs FeatureSet) Clone() FeatureSet {
	out := make(FeatureSet, len(fs))
	for k := range fs {
		out[k] = true
	}
	return out
}

// Contains reports whether value is a member of the set.
func (fs FeatureSet) Contains(value string) bool {
	return fs[value]
}

// Sorted returns the set's members in lexicographic order, for stable
// string rendering and hashing.
func (fs FeatureSet) Sorted() []string {
	out := make([]string, 0, len(fs))
	for k := range fs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Key returns a stable, order-independent string identity for the set,
// used as a map key and for equality/hash purposes (sort then join).
func (fs FeatureSet) Key() string {
	var b strings.Builder
	for i, v := range fs.Sorted() {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(v)
	}
	return b.String()
}

// Equal reports whether two sets have identical membership.
func (fs FeatureSet) Equal(other FeatureSet) bool {
	if len(fs) != len(other) {
		return false
	}
	for k := range fs {
		if !other[k] {
			return false
		}
	}
	return true
}

// Subtract returns a new set with every member of remove excluded.
func (fs FeatureSet) Subtract(remove FeatureSet) FeatureSet {
	out := make(FeatureSet, len(fs))
	for k := range fs {
		if !remove[k] {
			out[k] = true
		}
	}
	return out
}

// Union returns the union of fs and other as a new set.
func (fs FeatureSet) Union(other FeatureSet) FeatureSet {
	out := fs.Clone()
	for k := range other {
		out[k] = true
	}
	return out
}

// ParseFeatureModifiers parses a "+feat,-feat,..." modifier string, as
// found on a BackRef token, into additions (unprefixed or
// "+"-prefixed values) and removals ("-"-prefixed values).
func ParseFeatureModifiers(s string) (additions, removals []string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil, nil
	}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		switch item[0] {
		case '-':
			removals = append(removals, item[1:])
		case '+':
			additions = append(additions, item[1:])
		default:
			additions = append(additions, item)
		}
	}
	return additions, removals, nil
}
