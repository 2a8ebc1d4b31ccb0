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

	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/rule"
)

// ApplyRuleTask materializes one rule against one plan: it enumerates
// every Binding of the rule's pattern, keeps the ones that pass Check,
// transforms them, and copies the results back into the matched plan's
// group as new alternatives.
type ApplyRuleTask struct {
	plan     *memo.GroupPlan
	rule     rule.Rule
	required operator.Properties
}

// NewApplyRuleTask builds an ApplyRuleTask.
func NewApplyRuleTask(plan *memo.GroupPlan, r rule.Rule, required operator.Properties) *ApplyRuleTask {
	return &ApplyRuleTask{plan: plan, rule: r, required: required}
}

func (t *ApplyRuleTask) execute(r *Runner, ctx *OptimizerContext) error {
	ctx.logTask(KindApplyRule, logrus.Fields{
		"group_id": t.plan.GroupID(),
		"rule":     t.rule.Name(),
	})

	if t.plan.IsRuleApplied(t.rule.RuleID()) {
		panic(fmt.Sprintf("task: rule %q applied twice to the same plan", t.rule.Name()))
	}

	var newPlans []*plan.Plan
	binding := rule.NewBinding(t.rule.Pattern(), t.plan)
	for bound := binding.Next(); bound != nil; bound = binding.Next() {
		if !t.rule.Check(bound, ctx) {
			continue
		}
		newPlans = append(newPlans, t.rule.Transform(bound, ctx)...)
	}

	group := t.plan.GroupID()
	producedPhysical := false
	for _, p := range newPlans {
		inserted := ctx.Memo().CopyInPlan(&group, p)
		if inserted.Operator().IsLogical() {
			r.Push(NewOptimizePlanTask(inserted, t.required))
		} else {
			producedPhysical = true
			r.Push(NewEnforceAndCostTask(inserted, t.required))
		}
	}
	if producedPhysical && ctx.metrics != nil {
		ctx.metrics.RuleApplied(t.rule.Name())
	}

	t.plan.MarkRuleApplied(t.rule.RuleID())
	return nil
}
