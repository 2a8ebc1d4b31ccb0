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

package memo

import (
	"github.com/cascadeql/optcore/cost"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/props"
)

// GroupPlan is one operator expression occupying a Group: either a
// logical or a physical operator, applied to an ordered list of child
// groups.
//
// Go has no weak references, so the back-reference to the owning group
// described in the reference design is realized as a GroupID plus a
// lookup through the owning *Memo (Group method below) rather than a
// literal Weak pointer. The lookup panics if the id cannot be resolved,
// which is the Go equivalent of an un-upgradable weak reference — it
// should never happen while an optimize call is in flight.
type GroupPlan struct {
	memo    *Memo
	groupID props.GroupID
	op      operator.Operator
	inputs  []props.GroupID

	mask            ruleMask
	requireToOutput propMap[operator.Properties]
	statsDerived    bool
}

func newGroupPlan(op operator.Operator, inputs []props.GroupID) *GroupPlan {
	return &GroupPlan{
		op:              op,
		inputs:          inputs,
		requireToOutput: newPropMap[operator.Properties](),
	}
}

// GroupID returns the id of the owning group.
func (gp *GroupPlan) GroupID() props.GroupID {
	return gp.groupID
}

// Group resolves the owning group through the memo. It panics if the
// group cannot be found, which would indicate the GroupPlan has outlived
// its memo or was never inserted.
func (gp *GroupPlan) Group() *Group {
	if gp.memo == nil {
		panic("memo: GroupPlan has no owning memo; it was never inserted")
	}
	return gp.memo.Group(gp.groupID)
}

// Operator returns the wrapped logical or physical operator.
func (gp *GroupPlan) Operator() operator.Operator {
	return gp.op
}

// Inputs returns the ids of the child groups, in order.
func (gp *GroupPlan) Inputs() []props.GroupID {
	return gp.inputs
}

// InputGroups resolves each child group through the memo.
func (gp *GroupPlan) InputGroups() []*Group {
	groups := make([]*Group, len(gp.inputs))
	for i, id := range gp.inputs {
		groups[i] = gp.memo.Group(id)
	}
	return groups
}

// IsRuleApplied reports whether id has already been applied to this
// plan.
func (gp *GroupPlan) IsRuleApplied(id RuleID) bool {
	return gp.mask.has(id)
}

// MarkRuleApplied records that id has been applied. It is the caller's
// responsibility (ApplyRule, see package task) to assert this has not
// already happened before calling.
func (gp *GroupPlan) MarkRuleApplied(id RuleID) {
	gp.mask.set(id)
}

// IsStatsDerived reports whether DeriveStats has already run for this
// plan.
func (gp *GroupPlan) IsStatsDerived() bool {
	return gp.statsDerived
}

// MarkStatsDerived flags this plan as having had its statistics derived.
func (gp *GroupPlan) MarkStatsDerived() {
	gp.statsDerived = true
}

// DeriveStatistics invokes the wrapped logical operator's statistics
// derivation. It panics if this plan does not wrap a logical operator.
func (gp *GroupPlan) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	return gp.op.AsLogical().DeriveStatistics(md, childStats)
}

// ComputeCost invokes the wrapped physical operator's own cost function.
// It panics if this plan does not wrap a physical operator.
func (gp *GroupPlan) ComputeCost(stats operator.Stats) cost.Cost {
	return gp.op.AsPhysical().ComputeCost(stats)
}

// DeriveOutputProperties invokes the wrapped physical operator.
func (gp *GroupPlan) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return gp.op.AsPhysical().DeriveOutputProperties(childProps)
}

// RequiredProperties invokes the wrapped physical operator.
func (gp *GroupPlan) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return gp.op.AsPhysical().RequiredProperties(parentRequired)
}

// OutputProperties returns what this plan's operator was recorded as
// delivering for a given requirement, set by SetOutputProperties during
// EnforceAndCost.
func (gp *GroupPlan) OutputProperties(required operator.Properties) (operator.Properties, bool) {
	return gp.requireToOutput.get(required)
}

// SetOutputProperties records what this plan's operator delivers for a
// given requirement.
func (gp *GroupPlan) SetOutputProperties(required, output operator.Properties) {
	gp.requireToOutput.set(required, output)
}
