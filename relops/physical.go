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

// Operator ids. Logical and physical operators share the id space since
// Pattern matching only ever looks at a GroupPlan's logical side.
const (
	OpLogicalScan operator.ID = iota + 1
	OpLogicalFilter
	OpLogicalProject
	OpPhysicalScan
	OpPhysicalFilter
	OpPhysicalProject
	OpPhysicalSort
	OpPhysicalIndexScan
)

// Per-row cost factors. These are this catalog's own invented cost
// model, not a port of any reference pricing: a PhysicalFilter's cost
// scales with how many conjuncts it still has to evaluate itself, so
// that pushing a conjunct into an index predicate measurably cheapens
// whatever residual filter remains on top of it.
const (
	scanRowFactor      = 1.0
	filterConjunctCost = 0.2
	projectRowFactor   = 0.01
	indexScanRowFactor = 0.05
	sortRowFactor      = 0.3
)

func rowsOf(stats operator.Stats) int {
	s, ok := stats.(RowCountStats)
	if !ok {
		return 0
	}
	return s.Rows
}

// PhysicalScan reads every row of a base relation.
type PhysicalScan struct {
	Table         TableDesc
	OutputColumns []ColumnVar
}

func (o PhysicalScan) Name() string            { return "physical_scan" }
func (o PhysicalScan) OperatorID() operator.ID { return OpPhysicalScan }
func (o PhysicalScan) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return props.Empty
}
func (o PhysicalScan) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{nil}
}
func (o PhysicalScan) ComputeCost(stats operator.Stats) cost.Cost {
	return cost.New(float64(rowsOf(stats)) * scanRowFactor)
}
func (o PhysicalScan) Equal(other operator.Physical) bool {
	p, ok := other.(PhysicalScan)
	return ok && p.Table.MdID == o.Table.MdID
}

// PhysicalFilter evaluates Predicate row by row over its single child.
type PhysicalFilter struct {
	Predicate operator.Scalar
}

func (o PhysicalFilter) Name() string            { return "physical_filter" }
func (o PhysicalFilter) OperatorID() operator.ID { return OpPhysicalFilter }
func (o PhysicalFilter) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return childProps[0]
}
func (o PhysicalFilter) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{{props.Empty}}
}
func (o PhysicalFilter) ComputeCost(stats operator.Stats) cost.Cost {
	conjuncts := len(o.Predicate.SplitPredicates())
	return cost.New(float64(rowsOf(stats)) * filterConjunctCost * float64(conjuncts))
}
func (o PhysicalFilter) Equal(other operator.Physical) bool {
	p, ok := other.(PhysicalFilter)
	return ok && p.Predicate.Equal(o.Predicate)
}

// PhysicalProject narrows its child's output to Columns.
type PhysicalProject struct {
	Columns []ColumnVar
}

func (o PhysicalProject) Name() string            { return "physical_project" }
func (o PhysicalProject) OperatorID() operator.ID { return OpPhysicalProject }
func (o PhysicalProject) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return childProps[0]
}
func (o PhysicalProject) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{{props.Empty}}
}
func (o PhysicalProject) ComputeCost(stats operator.Stats) cost.Cost {
	return cost.New(float64(rowsOf(stats)) * projectRowFactor)
}
func (o PhysicalProject) Equal(other operator.Physical) bool {
	p, ok := other.(PhysicalProject)
	if !ok || len(p.Columns) != len(o.Columns) {
		return false
	}
	for i, c := range o.Columns {
		if p.Columns[i].Index != c.Index {
			return false
		}
	}
	return true
}

// PhysicalIndexScan reads only the rows an index's key can locate,
// evaluating Predicate (already restricted to key-covered conjuncts) as
// part of the index probe rather than as a separate pass.
type PhysicalIndexScan struct {
	Index         IndexMd
	Table         TableDesc
	OutputColumns []ColumnVar
	Predicate     operator.Scalar
}

func (o PhysicalIndexScan) Name() string            { return "physical_index_scan" }
func (o PhysicalIndexScan) OperatorID() operator.ID { return OpPhysicalIndexScan }
func (o PhysicalIndexScan) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return props.Empty
}
func (o PhysicalIndexScan) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{nil}
}
func (o PhysicalIndexScan) ComputeCost(stats operator.Stats) cost.Cost {
	return cost.New(float64(rowsOf(stats)) * indexScanRowFactor)
}
func (o PhysicalIndexScan) Equal(other operator.Physical) bool {
	p, ok := other.(PhysicalIndexScan)
	return ok && p.Index.Name == o.Index.Name && p.Table.MdID == o.Table.MdID
}
