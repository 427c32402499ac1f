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

import "github.com/czcorpus/soundshift/resourcedb"

// cachingStore is a local alias of the full resourcedb.Store interface
// that backs a CachingSystem.
type cachingStore = resourcedb.Store

// CachingSystem wraps a System with a resourcedb.Store, memoizing
// grapheme->feature lookups and sound-distance computations - the
// distance is computed once per candidate pair in a comparative
// alignment or reconstruction run, so it dominates hot paths. The wrapped
// System remains the source of truth; the store is consulted first and
// populated on miss.
type CachingSystem struct {
	System
	store cachingStore
}

// NewCachingSystem wraps inner with store. A resourcedb.NullStore makes
// this a costless passthrough. cnf.Config.Apply installs a CachingSystem
// around the configured default system when a cache backend is set.
func NewCachingSystem(inner System, store resourcedb.Store) *CachingSystem {
	return &CachingSystem{System: inner, store: store}
}

func (c *CachingSystem) GraphemeToFeatures(grapheme string) (FeatureSet, bool) {
	if cached, ok, err := c.store.GetSoundFeatures(c.Name(), grapheme); err == nil && ok {
		return NewFeatureSet(cached...), true
	}
	fs, ok := c.System.GraphemeToFeatures(grapheme)
	if ok {
		_ = c.store.PutSoundFeatures(c.Name(), grapheme, fs.Sorted())
	}
	return fs, ok
}

func (c *CachingSystem) SoundDistance(a, b FeatureSet) float64 {
	keyA, keyB := a.Key(), b.Key()
	if d, ok, err := c.store.GetSoundDistance(c.Name(), keyA, keyB); err == nil && ok {
		return d
	}
	d := c.System.SoundDistance(a, b)
	_ = c.store.PutSoundDistance(c.Name(), keyA, keyB, d)
	return d
}
