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

// Package props implements the physical-property algebra: a
// PhysicalProperties value is an ordered set of individual property facts
// (sort orderings, distribution hints, ...), each satisfying the
// Property contract. PhysicalProperties itself satisfies
// operator.Properties so that it can flow through the operator contracts
// unchanged.
package props

import (
	"github.com/mitchellh/hashstructure"

	"github.com/cascadeql/optcore/operator"
)

// GroupID identifies a memo equivalence class. It is declared here,
// rather than in package memo, so that Property.MakeEnforcer can name the
// group an enforcer will be attached to without props importing memo —
// memo already imports props for PhysicalProperties, and Go forbids
// import cycles.
type GroupID uint32

// Property is a single physical-property fact: a sort ordering, a
// distribution hint, etc. Concrete facts (e.g. relops.SortProperty) live
// with the operator catalog that understands them.
type Property interface {
	// Satisfy reports whether this delivered fact satisfies the
	// required fact.
	Satisfy(required Property) bool
	// Equal reports structural equality.
	Equal(other Property) bool
	// HashKey returns a stable hash used as part of the enclosing
	// PhysicalProperties' map key.
	HashKey() uint64
	// MakeEnforcer fabricates a physical operator that, applied to
	// childGroup, delivers this property fact regardless of what
	// childGroup's own best plan delivers. The canonical example is a
	// Sort enforcer for a SortProperty.
	MakeEnforcer(childGroup GroupID) operator.Physical
}

// PhysicalProperties is an ordered collection of Property facts. The
// empty PhysicalProperties value (no facts) is satisfied by any delivered
// PhysicalProperties and never triggers enforcement.
type PhysicalProperties struct {
	facts []Property
}

// Empty is the property set with no requirements.
var Empty = PhysicalProperties{}

// New builds a PhysicalProperties from one or more facts.
func New(facts ...Property) PhysicalProperties {
	return PhysicalProperties{facts: facts}
}

// IsEmpty reports whether this property set carries no facts.
func (p PhysicalProperties) IsEmpty() bool {
	return len(p.facts) == 0
}

// Facts returns the ordered list of property facts.
func (p PhysicalProperties) Facts() []Property {
	return p.facts
}

// Satisfy implements spec.md §3: empty required is satisfied by any.
// Otherwise every required fact must be satisfied by some delivered
// fact.
func (p PhysicalProperties) Satisfy(required operator.Properties) bool {
	req, ok := required.(PhysicalProperties)
	if !ok {
		// A foreign Properties implementation can never be satisfied by
		// ours; this only happens if two incompatible property systems
		// are mixed, which is a caller bug.
		return false
	}
	if req.IsEmpty() {
		return true
	}
	for _, want := range req.facts {
		satisfied := false
		for _, have := range p.facts {
			if have.Satisfy(want) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// Equal implements structural equality over the ordered fact list.
func (p PhysicalProperties) Equal(other operator.Properties) bool {
	o, ok := other.(PhysicalProperties)
	if !ok {
		return false
	}
	if len(p.facts) != len(o.facts) {
		return false
	}
	for i, f := range p.facts {
		if !f.Equal(o.facts[i]) {
			return false
		}
	}
	return true
}

// HashKey returns a stable hash of the ordered fact list, used as the key
// into a Group's best-plan and child-requirement maps.
func (p PhysicalProperties) HashKey() uint64 {
	keys := make([]uint64, len(p.facts))
	for i, f := range p.facts {
		keys[i] = f.HashKey()
	}
	h, err := hashstructure.Hash(keys, nil)
	if err != nil {
		// hashstructure only fails on unsupported types (channels,
		// funcs); a []uint64 can never hit that path.
		panic(err)
	}
	return h
}

// MakeEnforcer fabricates the enforcer for this property set's first
// fact only; any further facts get no enforcer.
func (p PhysicalProperties) MakeEnforcer(childGroup GroupID) operator.Physical {
	return p.facts[0].MakeEnforcer(childGroup)
}
