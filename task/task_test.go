package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/rule"
)

// noSort is the "nothing required" value for these tests' Properties
// fake: an unsorted fakeSortProp is satisfied by anything, exactly like
// an empty props.PhysicalProperties would be.
var noSort = fakeSortProp{}

func buildContext(t *testing.T, lp *plan.LogicalPlan) (*memo.Memo, memo.GroupID, *OptimizerContext) {
	t.Helper()

	m := memo.New()
	root := m.Init(lp)

	ruleSet, err := rule.NewRuleSet(nil, []rule.Rule{scanToPhysScan{}, filterToPhysFilter{}})
	require.NoError(t, err)

	ctx := NewOptimizerContext(m, ruleSet, nil, noSort, nil, nil)
	return m, root, ctx
}

// TestOptimizeDrainsToBestPlanUnderEmptyRequirement runs scan(10 rows)
// under filter through the full task loop with no physical requirement:
// no enforcer should be needed, and the cheapest plan should be
// phys_filter(phys_scan).
func TestOptimizeDrainsToBestPlanUnderEmptyRequirement(t *testing.T) {
	scan := plan.NewLogicalPlan(fakeScan{rows: 10})
	filter := plan.NewLogicalPlan(fakeFilter{}, scan)
	m, root, ctx := buildContext(t, filter)

	r := NewRunner()
	r.Push(NewOptimizeGroupTask(root, noSort))
	require.NoError(t, r.Run(ctx))

	best, err := m.ExtractBestPlan(noSort)
	require.NoError(t, err)
	require.Equal(t, "phys_filter", best.Op.Name())
	require.Len(t, best.Children, 1)
	require.Equal(t, "phys_scan", best.Children[0].Op.Name())
}

// TestOptimizeInsertsEnforcerWhenRequirementUnmet runs a bare scan under
// a sortedness requirement that no candidate operator can deliver
// natively, so the search must fall back to a sort enforcer.
func TestOptimizeInsertsEnforcerWhenRequirementUnmet(t *testing.T) {
	scan := plan.NewLogicalPlan(fakeScan{rows: 4})
	m, root, ctx := buildContext(t, scan)

	required := fakeSortProp{sorted: true}
	r := NewRunner()
	r.Push(NewOptimizeGroupTask(root, required))
	require.NoError(t, r.Run(ctx))

	best, err := m.ExtractBestPlan(required)
	require.NoError(t, err)
	require.Equal(t, "sort_enforcer", best.Op.Name())
	require.Len(t, best.Children, 1)
	require.Equal(t, "phys_scan", best.Children[0].Op.Name())
}

// TestOptimizeSkipsEnforcerWhenNotRequired confirms the same scan
// optimized with no sort requirement never pays for the enforcer.
func TestOptimizeSkipsEnforcerWhenNotRequired(t *testing.T) {
	scan := plan.NewLogicalPlan(fakeScan{rows: 4})
	m, root, ctx := buildContext(t, scan)

	r := NewRunner()
	r.Push(NewOptimizeGroupTask(root, noSort))
	require.NoError(t, r.Run(ctx))

	best, err := m.ExtractBestPlan(noSort)
	require.NoError(t, err)
	require.Equal(t, "phys_scan", best.Op.Name())
}

// TestApplyRuleTaskPanicsOnDoubleApplication guards the invariant that a
// rule never fires twice against the same GroupPlan.
func TestApplyRuleTaskPanicsOnDoubleApplication(t *testing.T) {
	scan := plan.NewLogicalPlan(fakeScan{rows: 1})
	m, root, ctx := buildContext(t, scan)

	gp := m.Group(root).LogicalPlans()[0]
	r := scanToPhysScan{}

	require.NotPanics(t, func() {
		NewApplyRuleTask(gp, r, noSort).execute(NewRunner(), ctx)
	})
	require.Panics(t, func() {
		NewApplyRuleTask(gp, r, noSort).execute(NewRunner(), ctx)
	})
}

// TestDeriveStatsIsIdempotent confirms a second DeriveStats on the same
// plan is a no-op rather than re-deriving (and re-applying) statistics.
func TestDeriveStatsIsIdempotent(t *testing.T) {
	scan := plan.NewLogicalPlan(fakeScan{rows: 7})
	m, root, ctx := buildContext(t, scan)

	gp := m.Group(root).LogicalPlans()[0]
	task := NewDeriveStatsTask(gp)

	require.NoError(t, task.execute(NewRunner(), ctx))
	require.True(t, gp.IsStatsDerived())
	stats := m.Group(root).Statistics()

	require.NoError(t, task.execute(NewRunner(), ctx))
	require.Equal(t, stats, m.Group(root).Statistics())
}
