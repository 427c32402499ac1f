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

// Package sqlite is a resourcedb.Store backed by a local sqlite3 file:
// open, create schema if missing, prepared statements for the hot
// read/write paths of the feature and distance cache.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	_ "github.com/mattn/go-sqlite3" // load the driver

	"github.com/czcorpus/soundshift/resourcedb"
)

// Store is a resourcedb.Store persisted to a single sqlite3 file.
type Store struct {
	database *sql.DB
	path     string
	prefix   string
}

// New opens (without yet creating the schema for) the sqlite3 database
// at path. Call Initialize before use.
func New(path, tablePrefix string) (*Store, error) {
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resourcedb at %s: %w", path, err)
	}
	return &Store{database: database, path: path, prefix: tablePrefix}, nil
}

func (s *Store) featuresTable() string { return s.prefix + "sound_features" }
func (s *Store) distanceTable() string { return s.prefix + "sound_distance" }

// Initialize creates the cache schema if it does not already exist.
func (s *Store) Initialize() error {
	log.Info().Str("path", s.path).Msg("initializing sqlite resourcedb")
	_, err := s.database.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			system TEXT NOT NULL,
			grapheme TEXT NOT NULL,
			features TEXT NOT NULL,
			PRIMARY KEY (system, grapheme)
		)`, s.featuresTable()))
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.featuresTable(), err)
	}
	_, err = s.database.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			system TEXT NOT NULL,
			key_a TEXT NOT NULL,
			key_b TEXT NOT NULL,
			distance REAL NOT NULL,
			PRIMARY KEY (system, key_a, key_b)
		)`, s.distanceTable()))
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.distanceTable(), err)
	}
	return nil
}

func (s *Store) GetSoundFeatures(system, grapheme string) ([]string, bool, error) {
	row := s.database.QueryRow(
		fmt.Sprintf("SELECT features FROM %s WHERE system = ? AND grapheme = ?", s.featuresTable()),
		system, grapheme)
	var joined string
	if err := row.Scan(&joined); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached features: %w", err)
	}
	if joined == "" {
		return []string{}, true, nil
	}
	return strings.Split(joined, "|"), true, nil
}

func (s *Store) PutSoundFeatures(system, grapheme string, featureValues []string) error {
	_, err := s.database.Exec(
		fmt.Sprintf("INSERT OR REPLACE INTO %s (system, grapheme, features) VALUES (?, ?, ?)", s.featuresTable()),
		system, grapheme, strings.Join(featureValues, "|"))
	if err != nil {
		return fmt.Errorf("failed to write cached features: %w", err)
	}
	return nil
}

func (s *Store) GetSoundDistance(system, keyA, keyB string) (float64, bool, error) {
	a, b := resourcedb.OrderedPairKey(keyA, keyB)
	row := s.database.QueryRow(
		fmt.Sprintf("SELECT distance FROM %s WHERE system = ? AND key_a = ? AND key_b = ?", s.distanceTable()),
		system, a, b)
	var dist float64
	if err := row.Scan(&dist); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read cached distance: %w", err)
	}
	return dist, true, nil
}

func (s *Store) PutSoundDistance(system, keyA, keyB string, distance float64) error {
	a, b := resourcedb.OrderedPairKey(keyA, keyB)
	_, err := s.database.Exec(
		fmt.Sprintf("INSERT OR REPLACE INTO %s (system, key_a, key_b, distance) VALUES (?, ?, ?, ?)", s.distanceTable()),
		system, a, b, distance)
	if err != nil {
		return fmt.Errorf("failed to write cached distance: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.database.Close()
}
