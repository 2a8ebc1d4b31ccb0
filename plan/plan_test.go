package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeql/optcore/cost"
	"github.com/cascadeql/optcore/operator"
)

type stubLogical struct{ name string }

func (s stubLogical) Name() string          { return s.name }
func (s stubLogical) OperatorID() operator.ID { return 1 }
func (s stubLogical) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	return nil, nil
}

type stubPhysical struct{ name string }

func (s stubPhysical) Name() string          { return s.name }
func (s stubPhysical) OperatorID() operator.ID { return 2 }
func (s stubPhysical) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return nil
}
func (s stubPhysical) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return nil
}
func (s stubPhysical) ComputeCost(stats operator.Stats) cost.Cost { return cost.Zero }
func (s stubPhysical) Equal(other operator.Physical) bool         { return false }

func TestFromLogicalPlanConvertsTreeShape(t *testing.T) {
	lp := NewLogicalPlan(stubLogical{name: "scan"})
	root := NewLogicalPlan(stubLogical{name: "filter"}, lp)

	p := FromLogicalPlan(root)
	require.True(t, p.Op.IsLogical())
	require.Equal(t, "filter", p.Op.Name())
	require.Len(t, p.Children, 1)
	require.Equal(t, "scan", p.Children[0].Op.Name())
	require.False(t, p.IsExisting())
}

func TestFromExistingShortCircuits(t *testing.T) {
	p := FromExisting("some-opaque-group-plan-handle")
	require.True(t, p.IsExisting())
	require.Nil(t, p.Children)
}

func TestFromPhysicalWrapsOperator(t *testing.T) {
	child := FromLogical(stubLogical{name: "scan"})
	p := FromPhysical(stubPhysical{name: "scan-exec"}, child)
	require.True(t, p.Op.IsPhysical())
	require.Len(t, p.Children, 1)
}
