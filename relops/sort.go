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

package relops

import (
	"github.com/cascadeql/optcore/cost"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/props"
)

// Ordering is one column in a sort key.
type Ordering struct {
	Key        ColumnVar
	Ascending  bool
	NullsFirst bool
}

// OrderSpec is an ordered list of Orderings, most-significant first.
type OrderSpec struct {
	OrderDesc []Ordering
}

func (o OrderSpec) equal(other OrderSpec) bool {
	if len(o.OrderDesc) != len(other.OrderDesc) {
		return false
	}
	for i, ord := range o.OrderDesc {
		other := other.OrderDesc[i]
		if ord.Key.Index != other.Key.Index || ord.Ascending != other.Ascending || ord.NullsFirst != other.NullsFirst {
			return false
		}
	}
	return true
}

// SortProperty is the one physical-property fact this catalog models: a
// required or delivered sort order. No operator in this catalog derives
// a non-empty SortProperty natively, so satisfying one always costs a
// PhysicalSort enforcer.
type SortProperty struct {
	Order OrderSpec
}

// Satisfy implements props.Property: a delivered order satisfies a
// required one only if they name the same ordering.
func (p SortProperty) Satisfy(required props.Property) bool {
	req, ok := required.(SortProperty)
	if !ok {
		return false
	}
	return p.Order.equal(req.Order)
}

// Equal implements props.Property.
func (p SortProperty) Equal(other props.Property) bool {
	o, ok := other.(SortProperty)
	return ok && p.Order.equal(o.Order)
}

// HashKey implements props.Property.
func (p SortProperty) HashKey() uint64 {
	var h uint64 = 14695981039346656037
	for _, ord := range p.Order.OrderDesc {
		h ^= uint64(ord.Key.Index)
		h *= 1099511628211
		if ord.Ascending {
			h ^= 1
		}
		if ord.NullsFirst {
			h ^= 2
		}
	}
	return h
}

// MakeEnforcer implements props.Property: fabricates a PhysicalSort atop
// childGroup that forces this ordering regardless of what childGroup's
// own best plan delivers.
func (p SortProperty) MakeEnforcer(childGroup props.GroupID) operator.Physical {
	return PhysicalSort{Order: p.Order}
}

// PhysicalSort is the enforcer for SortProperty: a single-child operator
// that imposes an order on whatever its child delivers.
type PhysicalSort struct {
	Order OrderSpec
}

func (o PhysicalSort) Name() string            { return "physical_sort" }
func (o PhysicalSort) OperatorID() operator.ID { return OpPhysicalSort }

// DeriveOutputProperties reports the ordering this node now guarantees.
func (o PhysicalSort) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return props.New(SortProperty{Order: o.Order})
}

// RequiredProperties asks nothing in particular of its child: a sort can
// be applied to any input order.
func (o PhysicalSort) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{{props.Empty}}
}

// ComputeCost charges sortRowFactor per row of the group's estimated row
// count (linear in the row count).
func (o PhysicalSort) ComputeCost(stats operator.Stats) cost.Cost {
	rows := rowsOf(stats)
	return cost.New(float64(rows) * sortRowFactor)
}

// Equal implements operator.Physical.
func (o PhysicalSort) Equal(other operator.Physical) bool {
	p, ok := other.(PhysicalSort)
	return ok && o.Order.equal(p.Order)
}
