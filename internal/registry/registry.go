// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package registry implements the process-wide,
// read-mostly cache that maps calendar and time zone
// identifiers to their engines.
//
// Entries are written at most once per key; if two
// goroutines race to load the same key, the first
// one stored wins and the other result is discarded.
package registry

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/dchest/siphash"
)

const shards = 16

// Cache is a sharded map from identifiers to values
// of type V. The zero Cache is not usable; use New.
type Cache[V any] struct {
	k0, k1 uint64
	shard  [shards]struct {
		lock sync.RWMutex
		m    map[string]V
	}
}

// New returns an empty Cache.
func New[V any]() *Cache[V] {
	c := &Cache[V]{}
	var seed [16]byte
	if _, err := rand.Read(seed[:]); err == nil {
		c.k0 = binary.LittleEndian.Uint64(seed[:])
		c.k1 = binary.LittleEndian.Uint64(seed[8:])
	}
	for i := range c.shard {
		c.shard[i].m = make(map[string]V)
	}
	return c
}

func (c *Cache[V]) index(key string) int {
	return int(siphash.Hash(c.k0, c.k1, []byte(key)) % shards)
}

// Get returns the value stored under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	s := &c.shard[c.index(key)]
	s.lock.RLock()
	v, ok := s.m[key]
	s.lock.RUnlock()
	return v, ok
}

// Put stores v under key unless a value is already
// present, and returns the value that is stored.
func (c *Cache[V]) Put(key string, v V) V {
	s := &c.shard[c.index(key)]
	s.lock.Lock()
	defer s.lock.Unlock()
	if old, ok := s.m[key]; ok {
		return old
	}
	s.m[key] = v
	return v
}

// Replace stores v under key, overwriting any
// previous value.
func (c *Cache[V]) Replace(key string, v V) {
	s := &c.shard[c.index(key)]
	s.lock.Lock()
	s.m[key] = v
	s.lock.Unlock()
}

// Load returns the value for key, calling load
// to produce it if it is not yet cached. load is
// called without any lock held. Errors are not cached.
func (c *Cache[V]) Load(key string, load func(key string) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load(key)
	if err != nil {
		return v, err
	}
	return c.Put(key, v), nil
}

// Keys returns every key in the cache, in no
// particular order.
func (c *Cache[V]) Keys() []string {
	var out []string
	for i := range c.shard {
		s := &c.shard[i]
		s.lock.RLock()
		for k := range s.m {
			out = append(out, k)
		}
		s.lock.RUnlock()
	}
	return out
}
