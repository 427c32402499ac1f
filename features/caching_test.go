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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czcorpus/soundshift/resourcedb"
)

// recordingStore counts Get/Put calls so the test can assert the second
// lookup of the same pair is served from the store, not recomputed.
type recordingStore struct {
	resourcedb.NullStore
	distances map[string]float64
	gets      int
	puts      int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{distances: map[string]float64{}}
}

func (s *recordingStore) GetSoundDistance(system, keyA, keyB string) (float64, bool, error) {
	s.gets++
	a, b := resourcedb.OrderedPairKey(keyA, keyB)
	d, ok := s.distances[system+"|"+a+"|"+b]
	return d, ok, nil
}

func (s *recordingStore) PutSoundDistance(system, keyA, keyB string, distance float64) error {
	s.puts++
	a, b := resourcedb.OrderedPairKey(keyA, keyB)
	s.distances[system+"|"+a+"|"+b] = distance
	return nil
}

func TestCachingSystemMemoizesSoundDistance(t *testing.T) {
	sys, err := GetSystem(SystemIPA)
	require.NoError(t, err)
	store := newRecordingStore()
	cached := NewCachingSystem(sys, store)

	p := NewFeatureSet("consonant", "bilabial", "stop", "voiceless")
	b := NewFeatureSet("consonant", "bilabial", "stop", "voiced")

	first := cached.SoundDistance(p, b)
	second := cached.SoundDistance(p, b)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, 2, store.gets)
}
