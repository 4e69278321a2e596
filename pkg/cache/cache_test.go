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

package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	base := Key("src/a.js", []byte("contents"), "fp")

	assert.Equal(t, base, Key("src/a.js", []byte("contents"), "fp"))
	assert.NotEqual(t, base, Key("src/b.js", []byte("contents"), "fp"))
	assert.NotEqual(t, base, Key("src/a.js", []byte("contents!"), "fp"))
	assert.NotEqual(t, base, Key("src/a.js", []byte("contents"), "fp2"))
	assert.NotEqual(t, Key("ab", nil, "c"), Key("a", nil, "bc"))
}

func TestStore(t *testing.T) {
	s := New()

	_, ok := s.Get("k")
	assert.False(t, ok)

	s.Put("k", "v")
	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, s.Stats())
}

func TestStore_Concurrent(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%8)
			if _, ok := s.Get(key); !ok {
				s.Put(key, key)
			}
		}(i)
	}
	wg.Wait()

	stats := s.Stats()
	assert.Equal(t, 8, stats.Entries)
	assert.Equal(t, 32, stats.Hits+stats.Misses)
}
