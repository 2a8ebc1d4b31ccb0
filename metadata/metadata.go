// Copyright 2024 The CascadeQL Authors.
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

// Package metadata provides a caching facade (Accessor) over a
// pluggable metadata Provider, keyed by the opaque operator.MdID. The
// core never parses or persists catalog entries; it only ever resolves
// one through this facade.
package metadata

import (
	"sync"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/cascadeql/optcore/operator"
)

// ErrNotFound is returned by a Provider (and surfaced unchanged by
// Accessor) when no catalog entry exists for the requested id.
var ErrNotFound = errors.NewKind("metadata: no entry found for id %v")

// Provider resolves a single catalog entry. Implementations are supplied
// by the host system; the core has no opinion on where entries come from
// (a file, a running database's system catalog, a test fixture, ...).
type Provider interface {
	RetrieveMetadata(id operator.MdID) (operator.Metadata, error)
}

// Cache is a simple in-memory Provider backed by a pre-populated map.
// It is primarily useful for tests and for small, mostly-static catalogs.
type Cache struct {
	mu      sync.RWMutex
	entries map[operator.MdID]operator.Metadata
}

// NewCache builds an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[operator.MdID]operator.Metadata)}
}

// Put registers a catalog entry under id, overwriting any existing one.
func (c *Cache) Put(id operator.MdID, md operator.Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = md
}

// RetrieveMetadata implements Provider.
func (c *Cache) RetrieveMetadata(id operator.MdID) (operator.Metadata, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	md, ok := c.entries[id]
	if !ok {
		return nil, ErrNotFound.New(id)
	}
	return md, nil
}

// Accessor is the caching facade operators and rules use to resolve
// metadata. It wraps a Provider with a read-through cache so that a slow
// or remote catalog backend is consulted at most once per id per
// Optimize call.
type Accessor struct {
	provider Provider

	mu    sync.Mutex
	cache map[operator.MdID]operator.Metadata
}

// NewAccessor builds an Accessor over the given Provider.
func NewAccessor(provider Provider) *Accessor {
	return &Accessor{
		provider: provider,
		cache:    make(map[operator.MdID]operator.Metadata),
	}
}

// Retrieve implements operator.MetadataAccessor. A miss on the provider
// is returned as-is (typically ErrNotFound) and is not itself cached, so
// that a catalog entry created after the optimization started can still
// be observed.
func (a *Accessor) Retrieve(id operator.MdID) (operator.Metadata, error) {
	a.mu.Lock()
	if md, ok := a.cache[id]; ok {
		a.mu.Unlock()
		return md, nil
	}
	a.mu.Unlock()

	md, err := a.provider.RetrieveMetadata(id)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.cache[id] = md
	a.mu.Unlock()
	return md, nil
}
