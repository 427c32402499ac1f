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

package cnf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/resourcedb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	var c Config
	assert.NoError(t, c.Validate())
	assert.Equal(t, "ipa", c.ResolvedFeatureSystem())
}

func TestValidateUnknownFeatureSystem(t *testing.T) {
	c := Config{DefaultFeatureSystem: "klingon"}
	assert.Error(t, c.Validate())
}

func TestValidateUnknownCacheType(t *testing.T) {
	c := Config{Cache: resourcedb.Conf{Type: "postgres"}}
	assert.Error(t, c.Validate())
}

func TestValidateSqliteRequiresPath(t *testing.T) {
	c := Config{Cache: resourcedb.Conf{Type: "sqlite"}}
	assert.Error(t, c.Validate())
	c.Cache.Path = "/tmp/soundshift-cache.db"
	assert.NoError(t, c.Validate())
}

func TestValidateMysqlRequiresHostAndDB(t *testing.T) {
	c := Config{Cache: resourcedb.Conf{Type: "mysql"}}
	assert.Error(t, c.Validate())
	c.Cache.Host = "localhost"
	c.Cache.DBName = "soundshift"
	assert.NoError(t, c.Validate())
}

func TestLoadConf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"defaultFeatureSystem": "tresoldi",
		"cache": {"type": "sqlite", "path": "cache.db"}
	}`), 0644))

	conf, err := LoadConf(path)
	require.NoError(t, err)
	assert.Equal(t, "tresoldi", conf.DefaultFeatureSystem)
	assert.Equal(t, "sqlite", conf.Cache.Type)
	assert.NoError(t, conf.Validate())
}

func TestLoadConfMissingFile(t *testing.T) {
	_, err := LoadConf(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestApplyWithoutCacheKeepsPlainSystem(t *testing.T) {
	t.Cleanup(features.ResetRegistryForTests)
	c := Config{DefaultFeatureSystem: features.SystemIPA}
	require.NoError(t, c.Apply())
	_, isCached := features.Default().(*features.CachingSystem)
	assert.False(t, isCached)
	assert.Equal(t, features.SystemIPA, features.Default().Name())
}

func TestApplyInstallsCachingDefault(t *testing.T) {
	t.Cleanup(features.ResetRegistryForTests)
	c := Config{
		DefaultFeatureSystem: features.SystemIPA,
		Cache: resourcedb.Conf{
			Type: "sqlite",
			Path: filepath.Join(t.TempDir(), "cache.db"),
		},
	}
	require.NoError(t, c.Apply())

	cached, isCached := features.Default().(*features.CachingSystem)
	require.True(t, isCached, "default system should be wrapped in the persisted cache")
	assert.Equal(t, features.SystemIPA, cached.Name())

	// the wrapped system still resolves graphemes; the second lookup is
	// served from the sqlite store
	fs, ok := cached.GraphemeToFeatures("p")
	require.True(t, ok)
	assert.True(t, fs.Contains("stop"))
	again, ok := cached.GraphemeToFeatures("p")
	require.True(t, ok)
	assert.True(t, fs.Equal(again))
}
