// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache stores transform results that their loader declared cacheable.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// 📊 Stats counts cache lookups
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// 💾 Store maps a content key to a transformed result. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
	hits    int
	misses  int
}

// 🏭 New creates an empty store
func New() *Store {
	return &Store{entries: map[string]string{}}
}

// Key derives the lookup key for a resource, its input contents and the
// fingerprint of the options it is transformed with
func Key(resource string, contents []byte, fingerprint string) string {
	h := sha256.New()
	h.Write([]byte(resource))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(contents)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the stored result for key
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if ok {
		s.hits++
	} else {
		s.misses++
	}
	return v, ok
}

// Put stores a result
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// Stats returns a snapshot of the counters
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Hits: s.hits, Misses: s.misses, Entries: len(s.entries)}
}
