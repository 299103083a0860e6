// Copyright 2024 Google Inc.
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

// Package cache provides the key/value stores used to keep fetched API data
// and stylesheets between runs. Entries expire after a per-entry time to live.
package cache // import "github.com/better-font-awesome/bfa/cache"

import (
	"sync"
	"time"

	l "github.com/better-font-awesome/bfa/logging"
	"github.com/better-font-awesome/bfa/timing"
)

// Store is a key/value store with expiration. Implementations must be safe
// for concurrent use, but need not provide any consistency across keys.
type Store interface {
	// Get returns the value stored for key, and false if there is no
	// value or it has expired.
	Get(key string) ([]byte, bool)
	// Set stores value for key. A zero ttl means the value never expires.
	Set(key string, value []byte, ttl time.Duration) error
}

// expiry converts a ttl into an absolute expiration time. The zero time
// means no expiration.
func expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return timing.Now().Add(ttl)
}

func expired(expires time.Time) bool {
	return !expires.IsZero() && !timing.Now().Before(expires)
}

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process Store. The zero value is not usable, use NewMemory.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string]entry{}}
}

// Get implements Store.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if expired(e.expires) {
		l.Fine("%s expired at %v", key, e.expires)
		delete(m.entries, key)
		return nil, false
	}
	return append([]byte(nil), e.value...), true
}

// Set implements Store.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{
		value:   append([]byte(nil), value...),
		expires: expiry(ttl),
	}
	return nil
}
