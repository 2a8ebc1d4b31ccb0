package memo

import (
	"github.com/cascadeql/optcore/cost"
	"github.com/cascadeql/optcore/operator"
)

// fakeLogical is a minimal Logical used across memo tests.
type fakeLogical struct {
	name string
	id   operator.ID
}

func (f fakeLogical) Name() string            { return f.name }
func (f fakeLogical) OperatorID() operator.ID { return f.id }
func (f fakeLogical) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	return fakeStats{rows: 1}, nil
}

// fakePhysical is a minimal Physical with a fixed own-cost and no
// required child properties (leaf operator).
type fakePhysical struct {
	name string
	id   operator.ID
	own  float64
}

func (f fakePhysical) Name() string            { return f.name }
func (f fakePhysical) OperatorID() operator.ID { return f.id }
func (f fakePhysical) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return fakeProps{}
}
func (f fakePhysical) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{nil}
}
func (f fakePhysical) ComputeCost(stats operator.Stats) cost.Cost { return cost.New(f.own) }
func (f fakePhysical) Equal(other operator.Physical) bool {
	o, ok := other.(fakePhysical)
	return ok && o.name == f.name
}

// fakeProps is the only Properties value used in these tests: the empty
// requirement. Equal/HashKey make it usable as a propMap key.
type fakeProps struct {
	tag string
}

func (p fakeProps) Satisfy(required operator.Properties) bool {
	o, ok := required.(fakeProps)
	return ok && o.tag == ""
}
func (p fakeProps) Equal(other operator.Properties) bool {
	o, ok := other.(fakeProps)
	return ok && o.tag == p.tag
}
func (p fakeProps) HashKey() uint64 {
	h := uint64(14695981039346656037)
	for _, c := range p.tag {
		h ^= uint64(c)
		h *= 1099511628211
	}
	return h
}

// fakeStats implements operator.Stats with strict row-count improvement.
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
