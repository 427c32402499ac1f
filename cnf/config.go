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

// Package cnf loads the JSON-backed configuration for a soundshift
// deployment: stdlib encoding/json plus os.ReadFile, and a Validate
// method returning descriptive fmt.Errorf values rather than a
// validation framework.
package cnf

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/resourcedb"
	"github.com/czcorpus/soundshift/resourcedb/factory"
	"github.com/czcorpus/soundshift/resources"
)

// Config is the top-level configuration for anything embedding the
// library beyond a single parse_rule/forward/backward call: which
// feature system grounds pattern matching by default, where the TSV
// resource tables come from, and whether a persisted resourcedb.Store
// backs the grapheme/distance caches.
type Config struct {
	// DefaultFeatureSystem names the system installed as the process
	// default at startup: "ipa" (default), "tresoldi" or "distinctive".
	DefaultFeatureSystem string `json:"defaultFeatureSystem"`

	// ResourceDir overrides the packaged TSV defaults with a directory
	// of sounds.tsv/classes.tsv/features.tsv/equivalence.tsv/
	// sound_changes.tsv files, so linguists can extend the grapheme
	// inventory without a rebuild.
	ResourceDir string `json:"resourceDir,omitempty"`

	// Cache configures the optional persisted resourcedb.Store. The
	// zero value disables caching.
	Cache resourcedb.Conf `json:"cache"`

	// Verbosity 0 keeps the default zerolog level; higher values
	// enable debug logging in the ambient layers (resource loading,
	// cache warm-up).
	Verbosity int `json:"verbosity"`
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	switch c.DefaultFeatureSystem {
	case "", features.SystemIPA, features.SystemTresoldi, features.SystemDistinctive:
	default:
		return fmt.Errorf("unknown defaultFeatureSystem %q", c.DefaultFeatureSystem)
	}
	switch c.Cache.Type {
	case "", "sqlite", "mysql":
	default:
		return fmt.Errorf("unknown cache.type %q", c.Cache.Type)
	}
	if c.Cache.Type == "sqlite" && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required when cache.type is \"sqlite\"")
	}
	if c.Cache.Type == "mysql" && (c.Cache.Host == "" || c.Cache.DBName == "") {
		return fmt.Errorf("cache.host and cache.dbName are required when cache.type is \"mysql\"")
	}
	return nil
}

// ResolvedFeatureSystem returns DefaultFeatureSystem, or the package
// default ("ipa") when left unset.
func (c *Config) ResolvedFeatureSystem() string {
	if c.DefaultFeatureSystem == "" {
		return features.SystemIPA
	}
	return c.DefaultFeatureSystem
}

// LoadConf reads and parses the JSON configuration file at confPath:
// plain os.ReadFile followed by json.Unmarshal, no config framework.
func LoadConf(confPath string) (*Config, error) {
	rawData, err := os.ReadFile(confPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", confPath, err)
	}
	var conf Config
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", confPath, err)
	}
	return &conf, nil
}

// Apply installs the configured feature system as the process default
// and, if ResourceDir is set, points resource loading at it. When a
// cache backend is configured, the store is built through
// resourcedb/factory and the default system is re-registered wrapped in
// a features.CachingSystem, so every grapheme lookup and sound-distance
// computation downstream goes through the persisted cache. The store
// stays open for the remainder of the process. Must be called before
// any parsing/forward/backward calls that should observe the
// configuration - mirrors the registry's "initialisation-only"
// write-once contract.
func (c *Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ResourceDir != "" {
		resources.SetOverrideDir(c.ResourceDir)
	}
	name := c.ResolvedFeatureSystem()
	if c.Cache.IsConfigured() {
		store, err := factory.New(c.Cache)
		if err != nil {
			return fmt.Errorf("failed to set up resource cache: %w", err)
		}
		system, err := features.GetSystem(name)
		if err != nil {
			return err
		}
		features.Register(name, features.NewCachingSystem(system, store))
		log.Info().
			Str("backend", c.Cache.Type).
			Str("featureSystem", name).
			Msg("installed persisted resource cache")
	}
	return features.SetDefault(name)
}
