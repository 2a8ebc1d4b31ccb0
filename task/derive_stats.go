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

// DeriveStatsTask computes and records a logical plan's output
// statistics, at most once per plan. Every child group is assumed to
// already carry statistics by the time this runs, because OptimizePlan
// pushes ExploreGroup for every child after pushing DeriveStats for
// itself, so the LIFO runner explores the children first.
type DeriveStatsTask struct {
	plan *memo.GroupPlan
}

// NewDeriveStatsTask builds a DeriveStatsTask.
func NewDeriveStatsTask(p *memo.GroupPlan) *DeriveStatsTask {
	return &DeriveStatsTask{plan: p}
}

func (t *DeriveStatsTask) execute(r *Runner, ctx *OptimizerContext) error {
	ctx.logTask(KindDeriveStats, logrus.Fields{"group_id": t.plan.GroupID()})

	if t.plan.IsStatsDerived() {
		return nil
	}

	inputs := t.plan.InputGroups()
	childStats := make([]operator.Stats, len(inputs))
	for i, group := range inputs {
		childStats[i] = group.Statistics()
	}

	stats, err := t.plan.DeriveStatistics(ctx.Metadata(), childStats)
	if err != nil {
		return err
	}

	t.plan.Group().UpdateStatistics(stats)
	t.plan.MarkStatsDerived()
	return nil
}
