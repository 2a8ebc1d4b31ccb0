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

// Package operator declares the abstract capabilities that concrete
// logical and physical operators, scalar expressions, physical property
// facts, metadata, and statistics must implement. The core never knows
// about Scan, Filter, Project or Sort by name: it only ever calls through
// these interfaces. Concrete operators live in collaborator packages such
// as relops; concrete properties and metadata live in props and
// metadata respectively, both of which implement the interfaces declared
// here so that this package can stay a dependency-free leaf.
package operator

import "github.com/cascadeql/optcore/cost"

// ID identifies an operator's concrete kind (e.g. "scan", "filter").
// It is opaque to the core; pattern matching compares ids for equality.
type ID int16

// MdID is an opaque, comparable catalog key. Concrete catalogs may use an
// integer surrogate key, a UUID, or a qualified name as their MdID, as
// long as it is usable as a Go map key.
type MdID any

// Metadata is an opaque catalog entry (relation metadata, column
// metadata, index metadata, ...). The core never interprets it.
type Metadata any

// MetadataAccessor is the narrow interface logical operators use to
// resolve catalog entries while deriving statistics.
type MetadataAccessor interface {
	Retrieve(id MdID) (Metadata, error)
}

// Stats is an opaque, operator-defined statistics value (row count,
// histograms, ...). ShouldUpdate defines the partial order the core uses
// to decide whether a newly-derived estimate improves on a group's
// current one; it must return true only on strict improvement.
type Stats interface {
	ShouldUpdate(current Stats) bool
}

// Properties is an opaque set of physical property facts (sort orders,
// distributions, ...). The core treats it as a black box except for
// Satisfy, used to decide whether an enforcer is required.
type Properties interface {
	// Satisfy reports whether this (delivered) Properties value
	// satisfies the required one. Empty required is satisfied by
	// anything.
	Satisfy(required Properties) bool
	// Equal and HashKey let Properties serve as a map key despite not
	// being comparable with ==; see props.PhysicalProperties.
	Equal(other Properties) bool
	HashKey() uint64
}

// PropertiesPerChild is one candidate requirement vector: one Properties
// value per child of the operator being costed.
type PropertiesPerChild []Properties

// Logical is the contract every logical operator must satisfy.
type Logical interface {
	// Name returns a human-readable operator name, used in logging and
	// plan printing.
	Name() string
	// OperatorID returns the stable id used by Pattern matching.
	OperatorID() ID
	// DeriveStatistics computes this operator's output row-count/column
	// statistics given its already-derived child statistics.
	DeriveStatistics(md MetadataAccessor, childStats []Stats) (Stats, error)
}

// Physical is the contract every physical (executable) operator must
// satisfy.
type Physical interface {
	Name() string
	OperatorID() ID
	// DeriveOutputProperties computes what this operator actually
	// delivers given what each child delivers.
	DeriveOutputProperties(childProps []Properties) Properties
	// RequiredProperties returns every viable decomposition of the
	// properties this operator must demand of its children in order to
	// satisfy parentRequired. The outer slice enumerates alternative
	// decompositions (e.g. a merge join might require sortedness on the
	// left only, or on both sides); the inner slice has one entry per
	// child, in child order.
	RequiredProperties(parentRequired Properties) []PropertiesPerChild
	// ComputeCost returns this operator's own cost (excluding children),
	// given the statistics of the group it occupies. stats may be nil.
	ComputeCost(stats Stats) cost.Cost
	// Equal reports whether two physical operators are the same
	// operator with the same parameters. The optimizer core does not
	// call it.
	Equal(other Physical) bool
}

// Scalar is the contract every scalar expression (predicates,
// projections, etc.) must satisfy.
type Scalar interface {
	Equal(other Scalar) bool
	// SplitPredicates decomposes a conjunction into its top-level
	// conjuncts. Identity on anything that is not an AND.
	SplitPredicates() []Scalar
}

// Kind discriminates the two operator families inside a GroupPlan.
type Kind int

const (
	// KindLogical tags an Operator wrapping a Logical.
	KindLogical Kind = iota
	// KindPhysical tags an Operator wrapping a Physical.
	KindPhysical
)

// Operator is the tagged union described in spec.md's DESIGN NOTES:
// every GroupPlan holds exactly one of a Logical or a Physical operator.
// Accessing the wrong side panics, matching the Rust reference's
// unreachable!() on a mismatched variant access.
type Operator struct {
	kind     Kind
	logical  Logical
	physical Physical
}

// FromLogical wraps a Logical operator.
func FromLogical(op Logical) Operator {
	return Operator{kind: KindLogical, logical: op}
}

// FromPhysical wraps a Physical operator.
func FromPhysical(op Physical) Operator {
	return Operator{kind: KindPhysical, physical: op}
}

// IsLogical reports whether this Operator wraps a Logical.
func (o Operator) IsLogical() bool { return o.kind == KindLogical }

// IsPhysical reports whether this Operator wraps a Physical.
func (o Operator) IsPhysical() bool { return o.kind == KindPhysical }

// AsLogical returns the wrapped Logical operator. It panics if the
// Operator wraps a Physical instead — this is a programming-invariant
// failure, not a recoverable error (spec.md §7).
func (o Operator) AsLogical() Logical {
	if o.kind != KindLogical {
		panic("operator: AsLogical called on a physical operator")
	}
	return o.logical
}

// AsPhysical returns the wrapped Physical operator. It panics if the
// Operator wraps a Logical instead.
func (o Operator) AsPhysical() Physical {
	if o.kind != KindPhysical {
		panic("operator: AsPhysical called on a logical operator")
	}
	return o.physical
}

// OperatorID delegates to whichever side is wrapped.
func (o Operator) OperatorID() ID {
	if o.kind == KindLogical {
		return o.logical.OperatorID()
	}
	return o.physical.OperatorID()
}

// Name delegates to whichever side is wrapped.
func (o Operator) Name() string {
	if o.kind == KindLogical {
		return o.logical.Name()
	}
	return o.physical.Name()
}
