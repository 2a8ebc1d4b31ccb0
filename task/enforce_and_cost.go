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

package task

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cascadeql/optcore/cost"
	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/props"
)

// enforcerFactory is satisfied by a Properties implementation (in
// practice, props.PhysicalProperties) able to fabricate the physical
// operator that forces its own delivery on top of an arbitrary child
// group. It is declared narrowly here, rather than imported from props,
// so this package only depends on the capability it actually uses.
type enforcerFactory interface {
	MakeEnforcer(childGroup props.GroupID) operator.Physical
}

// EnforceAndCostTask is the only suspending task: costing one physical
// plan's alternatives can require a child group to be optimized under a
// requirement nothing has asked for yet, at which point this task pushes
// a resumed copy of itself (with prevIndex set to the decomposition that
// is waiting) below an OptimizeGroupTask for the missing child and
// returns without finishing; the copy retries that same decomposition.
type EnforceAndCostTask struct {
	plan      *memo.GroupPlan
	required  operator.Properties
	prevIndex int
}

// NewEnforceAndCostTask builds a fresh (prevIndex 0) EnforceAndCostTask.
func NewEnforceAndCostTask(p *memo.GroupPlan, required operator.Properties) *EnforceAndCostTask {
	return &EnforceAndCostTask{plan: p, required: required}
}

func (t *EnforceAndCostTask) resumed() *EnforceAndCostTask {
	return &EnforceAndCostTask{plan: t.plan, required: t.required, prevIndex: t.prevIndex}
}

func (t *EnforceAndCostTask) execute(r *Runner, ctx *OptimizerContext) error {
	ctx.logTask(KindEnforceAndCost, logrus.Fields{
		"group_id":   t.plan.GroupID(),
		"prev_index": t.prevIndex,
	})

	decompositions := t.plan.RequiredProperties(t.required)
	inputs := t.plan.InputGroups()

	for index := t.prevIndex; index < len(decompositions); index++ {
		childRequired := decompositions[index]

		var childOutputs []operator.Properties
		childCost := cost.Zero
		if len(inputs) > 0 {
			childOutputs = make([]operator.Properties, 0, len(inputs))
			missing := false
			for i, group := range inputs {
				req := childRequired[i]
				bestCost, best, ok := group.BestPlan(req)
				if !ok {
					t.prevIndex = index
					r.Push(t.resumed())
					r.Push(NewOptimizeGroupTask(group.ID(), req))
					missing = true
					break
				}
				output, ok := best.OutputProperties(req)
				if !ok {
					panic("task: group's recorded best plan has no output properties for its own requirement")
				}
				childOutputs = append(childOutputs, output)
				childCost = childCost.Add(bestCost)
			}
			if missing {
				return nil
			}
		}

		t.prevIndex = index
		t.submitCostPlan(ctx, childOutputs, childCost)
	}
	return nil
}

// submitCostPlan derives what t.plan actually delivers given
// childOutputs, costs it as its own cost plus childCost (the summed cost
// of each child's best plan), and records it as a candidate best plan for
// that delivered requirement. If the delivered properties fall short of
// what the caller required, it additionally fabricates an enforcer on
// top, costs it as the enforcer's own cost plus the plan's total, and
// records that as the candidate for the original requirement.
func (t *EnforceAndCostTask) submitCostPlan(ctx *OptimizerContext, childOutputs []operator.Properties, childCost cost.Cost) {
	group := t.plan.Group()

	outputProp := t.plan.DeriveOutputProperties(childOutputs)
	currCost := t.plan.ComputeCost(group.Statistics()).Add(childCost)

	t.plan.SetOutputProperties(outputProp, outputProp)
	group.UpdateBestPlan(outputProp, t.plan, currCost)
	group.UpdateChildRequiredProps(outputProp, childOutputs, currCost)

	if outputProp.Satisfy(t.required) {
		return
	}

	enforcerPlan := t.addEnforcer(ctx)
	enforcerPlan.SetOutputProperties(t.required, outputProp)

	enforcerCost := enforcerPlan.ComputeCost(group.Statistics()).Add(currCost)
	group.UpdateBestPlan(t.required, enforcerPlan, enforcerCost)
	group.UpdateChildRequiredProps(t.required, []operator.Properties{outputProp}, enforcerCost)

	if ctx.metrics != nil {
		ctx.metrics.EnforcerInserted()
	}
}

// addEnforcer fabricates the enforcer operator for t.required on top of
// t.plan's group and inserts it into that same group, reusing
// memo.CopyInPlan's existing-child short-circuit so the enforcer's sole
// child resolves to t.plan's group without being re-copied.
func (t *EnforceAndCostTask) addEnforcer(ctx *OptimizerContext) *memo.GroupPlan {
	factory, ok := t.required.(enforcerFactory)
	if !ok {
		panic(fmt.Sprintf("task: %T cannot fabricate an enforcer for itself", t.required))
	}

	groupID := t.plan.GroupID()
	enforcerOp := factory.MakeEnforcer(groupID)
	transient := plan.FromPhysical(enforcerOp, plan.FromExisting(t.plan))
	return ctx.Memo().CopyInPlan(&groupID, transient)
}
