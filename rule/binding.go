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

package rule

import (
	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/plan"
)

// Binding is a lazy iterator that enumerates concrete sub-plans matching
// a Pattern rooted at a given GroupPlan. Each call to Next materializes
// one distinct choice of logical plan in every child group visited
// during descent, backtracking through a stack of per-depth cursors when
// a choice is exhausted.
type Binding struct {
	pattern   Pattern
	groupPlan *memo.GroupPlan

	groupTraceID   int
	groupPlanIndex []int
}

// NewBinding builds a Binding enumerating pattern's matches against gp.
func NewBinding(pattern Pattern, gp *memo.GroupPlan) *Binding {
	return &Binding{pattern: pattern, groupPlan: gp, groupPlanIndex: []int{0}}
}

func removeAt(s []int, i int) []int {
	return append(s[:i], s[i+1:]...)
}

// extractGroupPlan advances the cursor at the current depth and returns
// the logical plan it now points at, or nil once that depth's
// alternatives are exhausted (in which case the depth is popped).
func (b *Binding) extractGroupPlan(pattern Pattern, group *memo.Group) *memo.GroupPlan {
	plans := group.LogicalPlans()

	if pattern.IsLeafOrMultiLeaf() {
		if b.groupPlanIndex[b.groupTraceID] > 0 {
			b.groupPlanIndex = removeAt(b.groupPlanIndex, b.groupTraceID)
			return nil
		}
		if len(plans) == 0 {
			return nil
		}
		return plans[0]
	}

	id := b.groupPlanIndex[b.groupTraceID]
	if id >= len(plans) {
		b.groupPlanIndex = removeAt(b.groupPlanIndex, b.groupTraceID)
		return nil
	}
	return plans[id]
}

// matches attempts to build a Plan by recursively matching pattern
// against gp, descending into child groups as dictated by the pattern
// shape. It returns nil if the match fails at this depth or any deeper
// one.
func (b *Binding) matches(pattern Pattern, gp *memo.GroupPlan) *plan.Plan {
	if !pattern.MatchWithoutChild(gp) {
		return nil
	}

	var inputs []*plan.Plan
	patternIndex := 0
	groupPlanIndex := 0
	childGroups := gp.InputGroups()

	for patternIndex < len(pattern.Children()) && groupPlanIndex < len(childGroups) {
		b.groupTraceID++
		for len(b.groupPlanIndex) <= b.groupTraceID {
			b.groupPlanIndex = append(b.groupPlanIndex, 0)
		}

		group := childGroups[groupPlanIndex]
		childPattern := pattern.Child(patternIndex)

		extracted := b.extractGroupPlan(childPattern, group)
		if extracted == nil {
			return nil
		}
		childPlan := b.matches(childPattern, extracted)
		if childPlan == nil {
			return nil
		}
		inputs = append(inputs, childPlan)

		if !(childPattern.IsMultiLeaf() &&
			(len(childGroups)-groupPlanIndex > len(pattern.Children())-patternIndex)) {
			patternIndex++
		}
		groupPlanIndex++
	}

	return plan.NewBound(gp.Operator(), inputs, gp)
}

// Next returns the next matching Plan, or nil once every alternative has
// been enumerated.
func (b *Binding) Next() *plan.Plan {
	if len(b.pattern.Children()) == 0 && b.groupPlanIndex[0] > 0 {
		return nil
	}

	for {
		b.groupTraceID = 0
		if n := len(b.groupPlanIndex); n > 0 {
			b.groupPlanIndex[n-1]++
		}

		p := b.matches(b.pattern, b.groupPlan)
		if p != nil || len(b.groupPlanIndex) == 1 {
			return p
		}
	}
}
