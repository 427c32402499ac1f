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

// Package resourcedb is an optional layer above the resource tables: an
// optional, persisted cache for the grapheme->feature lookups the
// registered feature systems compute and for the geometry-weighted sound
// distances the feature geometry derives from them. Neither the resource tables
// of package resources nor the core engines require it - it exists so a
// long-running caller (a demo server, a batch reconstruction job) does
// not recompute the same sound distance on every call.
//
// The design is a small capability interface, one concrete
// implementation per backend, and a factory that picks a backend from
// configuration.
package resourcedb

import "fmt"

// Conf selects and configures a persisted cache backend. The zero value
// (Type == "") disables caching entirely.
type Conf struct {
	Type        string `json:"type"` // "sqlite", "mysql", or "" to disable
	Path        string `json:"path"` // sqlite file path
	Host        string `json:"host"`
	User        string `json:"user"`
	Password    string `json:"password"`
	DBName      string `json:"dbName"`
	TablePrefix string `json:"tablePrefix"`
}

// IsConfigured reports whether a backend was requested at all.
func (c *Conf) IsConfigured() bool {
	return c.Type != ""
}

// Store is the capability set a persisted resource/distance cache must
// provide. Keys are scoped by feature-system name, since the same
// grapheme or sound pair projects onto different feature sets and
// distances under different systems.
type Store interface {
	// Initialize creates the backing schema if it does not already
	// exist. Safe to call repeatedly.
	Initialize() error

	// GetSoundFeatures returns the cached, sorted feature list for
	// grapheme under system, or ok=false on a cache miss.
	GetSoundFeatures(system, grapheme string) (featureValues []string, ok bool, err error)

	// PutSoundFeatures stores the sorted feature list for grapheme
	// under system, overwriting any prior entry.
	PutSoundFeatures(system, grapheme string, featureValues []string) error

	// GetSoundDistance returns a memoized features.System.SoundDistance
	// result for the unordered pair (keyA, keyB) under system, or
	// ok=false on a cache miss.
	GetSoundDistance(system, keyA, keyB string) (distance float64, ok bool, err error)

	// PutSoundDistance memoizes a sound-distance result.
	PutSoundDistance(system, keyA, keyB string, distance float64) error

	// Close releases any held connection.
	Close() error
}

// NullStore is a Store that never caches anything: every Get misses,
// every Put is a no-op. Used when caching is not configured so callers
// can depend on a Store unconditionally.
type NullStore struct{}

func (NullStore) Initialize() error { return nil }

func (NullStore) GetSoundFeatures(system, grapheme string) ([]string, bool, error) {
	return nil, false, nil
}

func (NullStore) PutSoundFeatures(system, grapheme string, featureValues []string) error {
	return nil
}

func (NullStore) GetSoundDistance(system, keyA, keyB string) (float64, bool, error) {
	return 0, false, nil
}

func (NullStore) PutSoundDistance(system, keyA, keyB string, distance float64) error {
	return nil
}

func (NullStore) Close() error { return nil }

// OrderedPairKey normalises an unordered pair of cache keys (e.g. two
// sound identities) into a stable (a, b) ordering so (x, y) and (y, x)
// hit the same cache row, mirroring sound_distance's symmetry
// invariant.
func OrderedPairKey(a, b string) (string, string) {
	if a <= b {
		return a, b
	}
	return b, a
}

// ErrNotConfigured is returned by factory.New when asked to build a
// backend Conf.Type does not name.
type ErrNotConfigured struct {
	Type string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("resourcedb: unsupported or unconfigured backend %q", e.Type)
}
