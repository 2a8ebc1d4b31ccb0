package task

import (
	"github.com/cascadeql/optcore/cost"
	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/props"
	"github.com/cascadeql/optcore/rule"
)

const (
	opScan         operator.ID = 1
	opFilter       operator.ID = 2
	opPhysScan     operator.ID = 3
	opPhysFilter   operator.ID = 4
	opSortEnforcer operator.ID = 5
)

// fakeScan/fakeFilter are the two logical operators used in task tests:
// a scan with no children and a filter with one.
type fakeScan struct {
	rows int
}

func (o fakeScan) Name() string            { return "scan" }
func (o fakeScan) OperatorID() operator.ID { return opScan }
func (o fakeScan) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	return fakeStats{rows: o.rows}, nil
}

type fakeFilter struct{}

func (o fakeFilter) Name() string            { return "filter" }
func (o fakeFilter) OperatorID() operator.ID { return opFilter }
func (o fakeFilter) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	in := childStats[0].(fakeStats)
	return fakeStats{rows: in.rows / 2}, nil
}

// fakePhysScan/fakePhysFilter are the physical counterparts an
// implementation rule produces. The scan has no children; the filter
// passes its parent's requirement through to its child. A bare scan
// never delivers sortedness, so a scan under a sort requirement always
// needs an enforcer.
type fakePhysScan struct {
	rowCost float64
}

func (o fakePhysScan) Name() string            { return "phys_scan" }
func (o fakePhysScan) OperatorID() operator.ID { return opPhysScan }
func (o fakePhysScan) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return fakeSortProp{}
}
func (o fakePhysScan) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{nil}
}
func (o fakePhysScan) ComputeCost(stats operator.Stats) cost.Cost {
	rows := 1
	if s, ok := stats.(fakeStats); ok {
		rows = s.rows
	}
	return cost.New(float64(rows) * o.rowCost)
}
func (o fakePhysScan) Equal(other operator.Physical) bool {
	_, ok := other.(fakePhysScan)
	return ok
}

type fakePhysFilter struct{}

func (o fakePhysFilter) Name() string            { return "phys_filter" }
func (o fakePhysFilter) OperatorID() operator.ID { return opPhysFilter }
func (o fakePhysFilter) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return childProps[0]
}
func (o fakePhysFilter) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{{parentRequired}}
}
func (o fakePhysFilter) ComputeCost(stats operator.Stats) cost.Cost { return cost.New(1) }
func (o fakePhysFilter) Equal(other operator.Physical) bool {
	_, ok := other.(fakePhysFilter)
	return ok
}

// fakeSortEnforcer is what fakeSortProp.MakeEnforcer fabricates: a
// single-child physical node whose only job is to deliver sortedness.
type fakeSortEnforcer struct{}

func (o fakeSortEnforcer) Name() string            { return "sort_enforcer" }
func (o fakeSortEnforcer) OperatorID() operator.ID { return opSortEnforcer }
func (o fakeSortEnforcer) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return fakeSortProp{sorted: true}
}
func (o fakeSortEnforcer) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{nil}
}
func (o fakeSortEnforcer) ComputeCost(stats operator.Stats) cost.Cost {
	rows := 1
	if s, ok := stats.(fakeStats); ok {
		rows = s.rows
	}
	return cost.New(float64(rows) * 0.5)
}
func (o fakeSortEnforcer) Equal(other operator.Physical) bool {
	_, ok := other.(fakeSortEnforcer)
	return ok
}

// fakeSortProp is the only Properties implementation in these tests: a
// single boolean fact, "delivered in sorted order".
type fakeSortProp struct {
	sorted bool
}

func (p fakeSortProp) Satisfy(required operator.Properties) bool {
	req, ok := required.(fakeSortProp)
	if !ok {
		return false
	}
	if !req.sorted {
		return true
	}
	return p.sorted
}
func (p fakeSortProp) Equal(other operator.Properties) bool {
	o, ok := other.(fakeSortProp)
	return ok && o.sorted == p.sorted
}
func (p fakeSortProp) HashKey() uint64 {
	if p.sorted {
		return 1
	}
	return 0
}
func (p fakeSortProp) MakeEnforcer(childGroup props.GroupID) operator.Physical {
	return fakeSortEnforcer{}
}

// fakeStats carries a row count; a smaller count is a strict
// improvement, matching cost scaling with row count in these fakes.
type fakeStats struct {
	rows int
}

func (s fakeStats) ShouldUpdate(current operator.Stats) bool {
	c, ok := current.(fakeStats)
	if !ok {
		return true
	}
	return s.rows < c.rows
}

// scanToPhysScan is a trivial implementation rule: scan -> phys_scan.
type scanToPhysScan struct{ rule.Implementation }

func (r scanToPhysScan) Name() string       { return "scan_to_phys_scan" }
func (r scanToPhysScan) RuleID() memo.RuleID { return 1 }
func (r scanToPhysScan) Pattern() rule.Pattern {
	return rule.MatchOperator(opScan)
}
func (r scanToPhysScan) Transform(input *plan.Plan, ctx rule.Context) []*plan.Plan {
	return []*plan.Plan{plan.FromPhysical(fakePhysScan{rowCost: 1})}
}

// filterToPhysFilter implements filter -> phys_filter(child), preserving
// the matched child via the bound plan's Existing reference.
type filterToPhysFilter struct{ rule.Implementation }

func (r filterToPhysFilter) Name() string       { return "filter_to_phys_filter" }
func (r filterToPhysFilter) RuleID() memo.RuleID { return 2 }
func (r filterToPhysFilter) Pattern() rule.Pattern {
	return rule.MatchOperator(opFilter, rule.MatchLeaf())
}
func (r filterToPhysFilter) Transform(input *plan.Plan, ctx rule.Context) []*plan.Plan {
	child := plan.FromExisting(input.Children[0].Existing)
	return []*plan.Plan{plan.FromPhysical(fakePhysFilter{}, child)}
}
