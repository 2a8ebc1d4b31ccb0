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
	"github.com/sirupsen/logrus"

	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
)

// OptimizePlanTask drives rule application and child exploration for one
// logical plan.
type OptimizePlanTask struct {
	plan     *memo.GroupPlan
	required operator.Properties
}

// NewOptimizePlanTask builds an OptimizePlanTask.
func NewOptimizePlanTask(plan *memo.GroupPlan, required operator.Properties) *OptimizePlanTask {
	return &OptimizePlanTask{plan: plan, required: required}
}

func (t *OptimizePlanTask) execute(r *Runner, ctx *OptimizerContext) error {
	ctx.logTask(KindOptimizePlan, logrus.Fields{"group_id": t.plan.GroupID()})

	for _, candidate := range ctx.RuleSet().ApplicableRules(t.plan) {
		r.Push(NewApplyRuleTask(t.plan, candidate, t.required))
	}

	r.Push(NewDeriveStatsTask(t.plan))

	children := t.plan.InputGroups()
	for i := len(children) - 1; i >= 0; i-- {
		r.Push(NewExploreGroupTask(children[i].ID(), t.required))
	}
	return nil
}
