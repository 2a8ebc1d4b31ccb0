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

// ExploreGroupTask ensures OptimizePlan has run for every logical plan
// in a group, at most once per group.
type ExploreGroupTask struct {
	group    memo.GroupID
	required operator.Properties
}

// NewExploreGroupTask builds an ExploreGroupTask.
func NewExploreGroupTask(group memo.GroupID, required operator.Properties) *ExploreGroupTask {
	return &ExploreGroupTask{group: group, required: required}
}

func (t *ExploreGroupTask) execute(r *Runner, ctx *OptimizerContext) error {
	ctx.logTask(KindExploreGroup, logrus.Fields{"group_id": t.group})

	group := ctx.Memo().Group(t.group)
	if group.IsExplored() {
		return nil
	}

	for _, p := range group.LogicalPlans() {
		r.Push(NewOptimizePlanTask(p, t.required))
	}
	group.SetExplored()
	return nil
}
