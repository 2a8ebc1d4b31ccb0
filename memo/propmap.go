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

package memo

import "github.com/cascadeql/optcore/operator"

// propEntry pairs the original key (kept for Equal-based collision
// resolution) with its value.
type propEntry[V any] struct {
	key   operator.Properties
	value V
}

// propMap is a map keyed by operator.Properties. operator.Properties is
// not a valid native Go map key (concrete implementations may embed
// slices), so propMap buckets by HashKey and resolves collisions with
// Equal, mirroring the Rust reference's reliance on a combined Hash+Eq
// key type.
type propMap[V any] struct {
	buckets map[uint64][]propEntry[V]
}

func newPropMap[V any]() propMap[V] {
	return propMap[V]{buckets: make(map[uint64][]propEntry[V])}
}

func (m propMap[V]) get(key operator.Properties) (V, bool) {
	var zero V
	for _, e := range m.buckets[key.HashKey()] {
		if e.key.Equal(key) {
			return e.value, true
		}
	}
	return zero, false
}

func (m *propMap[V]) set(key operator.Properties, value V) {
	hash := key.HashKey()
	bucket := m.buckets[hash]
	for i, e := range bucket {
		if e.key.Equal(key) {
			bucket[i].value = value
			return
		}
	}
	m.buckets[hash] = append(bucket, propEntry[V]{key: key, value: value})
}

func (m propMap[V]) len() int {
	n := 0
	for _, bucket := range m.buckets {
		n += len(bucket)
	}
	return n
}
