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

// Package resources loads the static grapheme/class/feature/equivalence
// tables packaged with the library. Tables are parsed once,
// from embedded TSV data unless an override directory is configured, and
// cached for the remainder of the process - lookup afterwards is O(1).
package resources

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed data/*.tsv
var packagedData embed.FS

// SoundEntry is a single row of sounds.tsv: a grapheme and its
// whitespace-separated feature-word description.
type SoundEntry struct {
	Grapheme string
	Name     string
}

// ClassEntry is a single row of classes.tsv.
type ClassEntry struct {
	Name        string
	Description string
	Features    string
	Graphemes   []string
}

// SoundChangeEntry is a single row of sound_changes.tsv: a rule with a
// weight and an example input/output pair.
type SoundChangeEntry struct {
	ID       string
	Rule     string
	Weight   float64
	TestAnte string
	TestPost string
}

// Tables is the set of loaded, cached resource tables. It is safe for
// concurrent read access once returned by Load: nothing mutates it
// afterwards.
type Tables struct {
	Sounds          map[string]string // grapheme -> NAME
	FeatureCategory map[string]string // feature VALUE -> FEATURE (category)
	Classes         map[string]ClassEntry
	SoundChanges    []SoundChangeEntry
	AltToCanon      map[string]string
	CanonToAlt      map[string]string
}

var (
	loadOnce   sync.Once
	loaded     *Tables
	loadErr    error
	loadMu     sync.Mutex
	overrideAt string
)

// SetOverrideDir points resource loading at a directory of TSV files
// instead of the packaged defaults. Must be called before the first call
// to Load; intended for tests and for deployments that ship an extended
// grapheme inventory.
func SetOverrideDir(dir string) {
	loadMu.Lock()
	defer loadMu.Unlock()
	overrideAt = dir
	loadOnce = sync.Once{}
	loaded = nil
	loadErr = nil
}

// Load returns the process-wide resource tables, parsing them on first
// call and caching the result thereafter.
func Load() (*Tables, error) {
	loadMu.Lock()
	dir := overrideAt
	loadMu.Unlock()

	loadOnce.Do(func() {
		loaded, loadErr = load(dir)
		if loadErr != nil {
			log.Error().Err(loadErr).Msg("failed to load resource tables")
		}
	})
	return loaded, loadErr
}

func load(overrideDir string) (*Tables, error) {
	sounds, err := loadTSV(overrideDir, "sounds.tsv")
	if err != nil {
		return nil, fmt.Errorf("failed to load sounds.tsv: %w", err)
	}
	features, err := loadTSV(overrideDir, "features.tsv")
	if err != nil {
		return nil, fmt.Errorf("failed to load features.tsv: %w", err)
	}
	classes, err := loadTSV(overrideDir, "classes.tsv")
	if err != nil {
		return nil, fmt.Errorf("failed to load classes.tsv: %w", err)
	}
	soundChanges, err := loadTSV(overrideDir, "sound_changes.tsv")
	if err != nil {
		return nil, fmt.Errorf("failed to load sound_changes.tsv: %w", err)
	}
	equivalence, err := loadTSV(overrideDir, "equivalence.tsv")
	if err != nil {
		return nil, fmt.Errorf("failed to load equivalence.tsv: %w", err)
	}

	t := &Tables{
		Sounds:          make(map[string]string, len(sounds)),
		FeatureCategory: make(map[string]string, len(features)),
		Classes:         make(map[string]ClassEntry, len(classes)),
		AltToCanon:      make(map[string]string, len(equivalence)),
		CanonToAlt:      make(map[string]string, len(equivalence)),
	}
	for _, row := range sounds {
		t.Sounds[row["GRAPHEME"]] = row["NAME"]
	}
	for _, row := range features {
		t.FeatureCategory[row["VALUE"]] = row["FEATURE"]
	}
	for _, row := range classes {
		var graphemes []string
		if g := row["GRAPHEMES"]; g != "" {
			graphemes = strings.Split(g, "|")
		}
		t.Classes[row["SOUND_CLASS"]] = ClassEntry{
			Name:        row["SOUND_CLASS"],
			Description: row["DESCRIPTION"],
			Features:    row["FEATURES"],
			Graphemes:   graphemes,
		}
	}
	for _, row := range soundChanges {
		weight := 1.0
		if w := row["WEIGHT"]; w != "" {
			if parsed, err := strconv.ParseFloat(w, 64); err == nil {
				weight = parsed
			}
		}
		t.SoundChanges = append(t.SoundChanges, SoundChangeEntry{
			ID:       row["ID"],
			Rule:     row["RULE"],
			Weight:   weight,
			TestAnte: row["TEST_ANTE"],
			TestPost: row["TEST_POST"],
		})
	}
	for _, row := range equivalence {
		alt, canon := row["ALT"], row["CANON"]
		t.AltToCanon[alt] = canon
		if _, exists := t.CanonToAlt[canon]; !exists {
			t.CanonToAlt[canon] = alt
		}
	}
	log.Info().
		Int("sounds", len(t.Sounds)).
		Int("classes", len(t.Classes)).
		Int("features", len(t.FeatureCategory)).
		Msg("loaded resource tables")
	return t, nil
}

// loadTSV reads a tab-delimited file with a mandatory header row, either
// from the packaged embed.FS or, if overrideDir is non-empty, from the
// filesystem.
func loadTSV(overrideDir, filename string) ([]map[string]string, error) {
	var r io.ReadCloser
	var err error
	if overrideDir != "" {
		r, err = os.Open(overrideDir + string(os.PathSeparator) + filename)
	} else {
		r, err = packagedData.Open("data/" + filename)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var header []string
	var rows []map[string]string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if header == nil {
			header = cols
			continue
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(cols) {
				row[h] = cols[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// NormalizeGrapheme resolves an alternate-codepoint spelling (e.g. ASCII
// "g") to its canonical form (e.g. "ɡ"), per the equivalence map. Unknown
// graphemes pass through unchanged.
func NormalizeGrapheme(g string) string {
	t, err := Load()
	if err != nil {
		return g
	}
	if canon, ok := t.AltToCanon[g]; ok {
		return canon
	}
	return g
}
