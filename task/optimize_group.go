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

// OptimizeGroupTask drives the exploration and costing of a group under
// a requirement.
type OptimizeGroupTask struct {
	group    memo.GroupID
	required operator.Properties
}

// NewOptimizeGroupTask builds an OptimizeGroupTask.
func NewOptimizeGroupTask(group memo.GroupID, required operator.Properties) *OptimizeGroupTask {
	return &OptimizeGroupTask{group: group, required: required}
}

func (t *OptimizeGroupTask) execute(r *Runner, ctx *OptimizerContext) error {
	ctx.logTask(KindOptimizeGroup, logrus.Fields{"group_id": t.group})

	group := ctx.Memo().Group(t.group)

	if !group.IsExplored() {
		logicalPlans := group.LogicalPlans()
		for i := len(logicalPlans) - 1; i >= 0; i-- {
			r.Push(NewOptimizePlanTask(logicalPlans[i], t.required))
		}
		group.SetExplored()
	}

	physicalPlans := group.PhysicalPlans()
	for i := len(physicalPlans) - 1; i >= 0; i-- {
		r.Push(NewEnforceAndCostTask(physicalPlans[i], t.required))
	}
	return nil
}
