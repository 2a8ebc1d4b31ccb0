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
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/props"
)

type bestPlanEntry struct {
	cost cost.Cost
	plan *GroupPlan
}

type childReqEntry struct {
	cost      cost.Cost
	childReqs []operator.Properties
}

// Group is an equivalence class of plans that all produce the same
// logical result.
type Group struct {
	id            props.GroupID
	logicalPlans  []*GroupPlan
	physicalPlans []*GroupPlan
	explored      bool
	statistics    operator.Stats

	bestPlans propMap[bestPlanEntry]
	childReqs propMap[childReqEntry]
}

func newGroup(id props.GroupID) *Group {
	return &Group{
		id:        id,
		bestPlans: newPropMap[bestPlanEntry](),
		childReqs: newPropMap[childReqEntry](),
	}
}

// ID returns this group's stable identifier.
func (g *Group) ID() props.GroupID {
	return g.id
}

// LogicalPlans returns the logical alternatives known in this group, in
// insertion order.
func (g *Group) LogicalPlans() []*GroupPlan {
	return g.logicalPlans
}

// PhysicalPlans returns the physical alternatives known in this group,
// in insertion order.
func (g *Group) PhysicalPlans() []*GroupPlan {
	return g.physicalPlans
}

func (g *Group) addPlan(gp *GroupPlan) {
	if gp.op.IsLogical() {
		g.logicalPlans = append(g.logicalPlans, gp)
	} else {
		g.physicalPlans = append(g.physicalPlans, gp)
	}
}

// IsExplored reports whether OptimizePlan has already been pushed for
// every logical plan in this group.
func (g *Group) IsExplored() bool {
	return g.explored
}

// SetExplored marks this group as explored. Exploration happens at most
// once per group.
func (g *Group) SetExplored() {
	g.explored = true
}

// Statistics returns the latest accepted statistics estimate, or nil if
// none has been derived yet.
func (g *Group) Statistics() operator.Stats {
	return g.statistics
}

// UpdateStatistics applies stats iff it is nil-to-set or a strict
// improvement over the current estimate, per stats.ShouldUpdate.
func (g *Group) UpdateStatistics(stats operator.Stats) {
	if g.statistics == nil || stats.ShouldUpdate(g.statistics) {
		g.statistics = stats
	}
}

// BestPlan returns the cheapest known plan for required, if any.
func (g *Group) BestPlan(required operator.Properties) (cost.Cost, *GroupPlan, bool) {
	entry, ok := g.bestPlans.get(required)
	if !ok {
		return cost.Zero, nil, false
	}
	return entry.cost, entry.plan, true
}

// UpdateBestPlan records gp as the best plan for required if curr is a
// strict improvement over whatever is already recorded (first-seen wins
// on ties — see DESIGN.md for why this differs from the asymmetric
// >/>= comparisons in the reference implementation).
func (g *Group) UpdateBestPlan(required operator.Properties, gp *GroupPlan, curr cost.Cost) {
	if entry, ok := g.bestPlans.get(required); ok && !curr.Less(entry.cost) {
		return
	}
	g.bestPlans.set(required, bestPlanEntry{cost: curr, plan: gp})
}

// ChildRequiredProps returns the child-requirement decomposition that
// achieved the best recorded cost for required, if any.
func (g *Group) ChildRequiredProps(required operator.Properties) ([]operator.Properties, cost.Cost, bool) {
	entry, ok := g.childReqs.get(required)
	if !ok {
		return nil, cost.Zero, false
	}
	return entry.childReqs, entry.cost, true
}

// UpdateChildRequiredProps records childReqs as the decomposition
// achieving curr for required, under the same strict-improvement rule as
// UpdateBestPlan.
func (g *Group) UpdateChildRequiredProps(required operator.Properties, childReqs []operator.Properties, curr cost.Cost) {
	if entry, ok := g.childReqs.get(required); ok && !curr.Less(entry.cost) {
		return
	}
	g.childReqs.set(required, childReqEntry{cost: curr, childReqs: childReqs})
}

// ExtractBestPlan recursively reconstructs the physical plan tree rooted
// at this group for the given requirement, following BestPlan and
// ChildRequiredProps down through child groups. It fails if required was
// never reached by the search.
func (g *Group) ExtractBestPlan(required operator.Properties) (*plan.PhysicalPlan, error) {
	_, gp, ok := g.BestPlan(required)
	if !ok {
		return nil, ErrNoPlanFound.New(g.id, required)
	}
	phys := gp.op.AsPhysical()

	if len(gp.inputs) == 0 {
		return plan.NewPhysicalPlan(phys), nil
	}

	childReqs, _, ok := g.ChildRequiredProps(required)
	if !ok {
		return nil, ErrNoPlanFound.New(g.id, required)
	}

	children := make([]*plan.PhysicalPlan, len(gp.inputs))
	for i, childID := range gp.inputs {
		childGroup := gp.memo.Group(childID)
		childPlan, err := childGroup.ExtractBestPlan(childReqs[i])
		if err != nil {
			return nil, err
		}
		children[i] = childPlan
	}
	return plan.NewPhysicalPlan(phys, children...), nil
}
