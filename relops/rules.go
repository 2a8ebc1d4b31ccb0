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
	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/rule"
)

// Rule ids for this catalog's four implementation rules.
const (
	RuleScanToPhysScan memo.RuleID = iota + 1
	RuleFilterToPhysFilter
	RuleProjectToPhysProject
	RuleScanToIndexScan
)

// ScanToPhysScan implements LogicalScan directly as PhysicalScan.
type ScanToPhysScan struct{ rule.Implementation }

func (ScanToPhysScan) Name() string        { return "scan_to_phys_scan" }
func (ScanToPhysScan) RuleID() memo.RuleID { return RuleScanToPhysScan }
func (ScanToPhysScan) Pattern() rule.Pattern {
	return rule.MatchOperator(OpLogicalScan)
}
func (ScanToPhysScan) Transform(input *plan.Plan, ctx rule.Context) []*plan.Plan {
	scan := input.Op.AsLogical().(LogicalScan)
	phys := PhysicalScan{Table: scan.Table, OutputColumns: scan.OutputColumns}
	return []*plan.Plan{plan.FromPhysical(phys)}
}

// FilterToPhysFilter implements LogicalFilter directly as PhysicalFilter
// over its unchanged child.
type FilterToPhysFilter struct{ rule.Implementation }

func (FilterToPhysFilter) Name() string        { return "filter_to_phys_filter" }
func (FilterToPhysFilter) RuleID() memo.RuleID { return RuleFilterToPhysFilter }
func (FilterToPhysFilter) Pattern() rule.Pattern {
	return rule.MatchOperator(OpLogicalFilter, rule.MatchLeaf())
}
func (FilterToPhysFilter) Transform(input *plan.Plan, ctx rule.Context) []*plan.Plan {
	filter := input.Op.AsLogical().(LogicalFilter)
	child := plan.FromExisting(input.Children[0].Existing)
	phys := PhysicalFilter{Predicate: filter.Predicate}
	return []*plan.Plan{plan.FromPhysical(phys, child)}
}

// ProjectToPhysProject implements LogicalProject directly as
// PhysicalProject over its unchanged child.
type ProjectToPhysProject struct{ rule.Implementation }

func (ProjectToPhysProject) Name() string        { return "project_to_phys_project" }
func (ProjectToPhysProject) RuleID() memo.RuleID { return RuleProjectToPhysProject }
func (ProjectToPhysProject) Pattern() rule.Pattern {
	return rule.MatchOperator(OpLogicalProject, rule.MatchLeaf())
}
func (ProjectToPhysProject) Transform(input *plan.Plan, ctx rule.Context) []*plan.Plan {
	project := input.Op.AsLogical().(LogicalProject)
	child := plan.FromExisting(input.Children[0].Existing)
	phys := PhysicalProject{Columns: project.Columns}
	return []*plan.Plan{plan.FromPhysical(phys, child)}
}

// ScanToIndexScan implements Filter(Scan) as a PhysicalIndexScan when an
// available index's key columns cover at least one top-level conjunct
// of the filter's predicate. Conjuncts the index key covers become the
// index scan's own predicate; any remaining conjuncts survive as a
// residual PhysicalFilter stacked on top. A filter whose predicate no
// index key touches at all produces no alternative, leaving
// FilterToPhysFilter(ScanToPhysScan(...)) as the only option.
type ScanToIndexScan struct{ rule.Implementation }

func (ScanToIndexScan) Name() string        { return "scan_to_index_scan" }
func (ScanToIndexScan) RuleID() memo.RuleID { return RuleScanToIndexScan }
func (ScanToIndexScan) Pattern() rule.Pattern {
	return rule.MatchOperator(OpLogicalFilter, rule.MatchOperator(OpLogicalScan))
}

func (ScanToIndexScan) Transform(input *plan.Plan, ctx rule.Context) []*plan.Plan {
	filter := input.Op.AsLogical().(LogicalFilter)
	scan := input.Children[0].Op.AsLogical().(LogicalScan)

	indexes, err := scan.indexesFor(ctx.Metadata())
	if err != nil || len(indexes) == 0 {
		return nil
	}

	conjuncts := filter.Predicate.SplitPredicates()

	var results []*plan.Plan
	for _, index := range indexes {
		var covered, residual []operator.Scalar
		for _, c := range conjuncts {
			if index.coversKey(c) {
				covered = append(covered, c)
			} else {
				residual = append(residual, c)
			}
		}
		if len(covered) == 0 {
			continue
		}

		indexScan := PhysicalIndexScan{
			Index:         index,
			Table:         scan.Table,
			OutputColumns: scan.OutputColumns,
			Predicate:     newAnd(covered),
		}
		indexPlan := plan.FromPhysical(indexScan)

		if len(residual) == 0 {
			results = append(results, indexPlan)
			continue
		}

		residualFilter := PhysicalFilter{Predicate: newAnd(residual)}
		results = append(results, plan.FromPhysical(residualFilter, indexPlan))
	}
	return results
}

// RuleSet builds the rule.RuleSet this catalog's four implementation
// rules register under. There are no transformation rules in this demo
// catalog — every logical shape maps to a physical one directly.
func RuleSet() (*rule.RuleSet, error) {
	return rule.NewRuleSet(nil, []rule.Rule{
		ScanToPhysScan{},
		FilterToPhysFilter{},
		ProjectToPhysProject{},
		ScanToIndexScan{},
	})
}
