package rule

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
)

const (
	opScan   operator.ID = 1
	opFilter operator.ID = 2
)

type logicalOp struct {
	name string
	id   operator.ID
}

func (o logicalOp) Name() string            { return o.name }
func (o logicalOp) OperatorID() operator.ID { return o.id }
func (o logicalOp) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	return nil, nil
}

func buildMemo(t *testing.T) (*memo.Memo, memo.GroupID) {
	t.Helper()
	scan := plan.NewLogicalPlan(logicalOp{name: "scan", id: opScan})
	filter := plan.NewLogicalPlan(logicalOp{name: "filter", id: opFilter}, scan)

	m := memo.New()
	root := m.Init(filter)
	return m, root
}

func TestMatchWithoutChildOperatorID(t *testing.T) {
	m, root := buildMemo(t)
	filterGP := m.Group(root).LogicalPlans()[0]

	p := MatchOperator(opFilter, MatchLeaf())
	require.True(t, p.MatchWithoutChild(filterGP))

	wrong := MatchOperator(opScan, MatchLeaf())
	require.False(t, wrong.MatchWithoutChild(filterGP))
}

func TestMatchWithoutChildRejectsTooFewInputs(t *testing.T) {
	m, root := buildMemo(t)
	filterGP := m.Group(root).LogicalPlans()[0]

	// Filter has exactly 1 input; a pattern demanding 2 non-multi-leaf
	// children cannot match.
	p := MatchOperator(opFilter, MatchLeaf(), MatchLeaf())
	require.False(t, p.MatchWithoutChild(filterGP))
}

func TestLeafPatternMatchesAnyPlanUnconditionally(t *testing.T) {
	m, root := buildMemo(t)
	filterGP := m.Group(root).LogicalPlans()[0]

	require.True(t, MatchLeaf().MatchWithoutChild(filterGP))
}

func TestBindingEnumeratesSingleShapeOnce(t *testing.T) {
	m, root := buildMemo(t)
	filterGP := m.Group(root).LogicalPlans()[0]

	pattern := MatchOperator(opFilter, MatchLeaf())
	b := NewBinding(pattern, filterGP)

	first := b.Next()
	require.NotNil(t, first)
	require.True(t, first.IsExisting())
	require.Equal(t, "filter", first.Op.Name())
	require.Len(t, first.Children, 1)
	require.Equal(t, "scan", first.Children[0].Op.Name())

	require.Nil(t, b.Next())
}

func TestBindingYieldsNothingOnShapeMismatch(t *testing.T) {
	m, root := buildMemo(t)
	filterGP := m.Group(root).LogicalPlans()[0]

	pattern := MatchOperator(opScan, MatchLeaf())
	b := NewBinding(pattern, filterGP)
	require.Nil(t, b.Next())
}

func TestNewRuleSetRejectsDuplicateIDs(t *testing.T) {
	a := fakeTransformRule{id: 1, name: "a"}
	b := fakeTransformRule{id: 1, name: "b"}

	_, err := NewRuleSet([]Rule{a, b}, nil)
	require.Error(t, err)
	require.True(t, ErrDuplicateRuleID.Is(err))
}

func TestNewRuleSetRejectsWrongFamily(t *testing.T) {
	notTransform := fakeImplementRule{id: 1, name: "impl-in-transform-slot"}
	_, err := NewRuleSet([]Rule{notTransform}, nil)
	require.Error(t, err)
	require.True(t, ErrWrongFamily.Is(err))
}

type fakeTransformRule struct {
	Transformation
	id   memo.RuleID
	name string
}

func (f fakeTransformRule) Name() string       { return f.name }
func (f fakeTransformRule) RuleID() memo.RuleID { return f.id }
func (f fakeTransformRule) Pattern() Pattern    { return MatchLeaf() }
func (f fakeTransformRule) Transform(input *plan.Plan, ctx Context) []*plan.Plan {
	return nil
}

type fakeImplementRule struct {
	Implementation
	id   memo.RuleID
	name string
}

func (f fakeImplementRule) Name() string       { return f.name }
func (f fakeImplementRule) RuleID() memo.RuleID { return f.id }
func (f fakeImplementRule) Pattern() Pattern    { return MatchLeaf() }
func (f fakeImplementRule) Transform(input *plan.Plan, ctx Context) []*plan.Plan {
	return nil
}
