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

// Package plan holds the three tree shapes that cross the boundary
// between callers, rules and the memo: LogicalPlan and PhysicalPlan are
// the plain caller-facing input/output trees, while Plan is the
// transient structure rules build to carry their output back into the
// memo.
package plan

import "github.com/cascadeql/optcore/operator"

// LogicalPlan is the plain tree a caller builds to describe the query it
// wants optimized. It is copied into the memo once, at the start of an
// Optimize call, by memo.Memo.Init.
type LogicalPlan struct {
	Op       operator.Logical
	Children []*LogicalPlan
}

// NewLogicalPlan builds a LogicalPlan node.
func NewLogicalPlan(op operator.Logical, children ...*LogicalPlan) *LogicalPlan {
	return &LogicalPlan{Op: op, Children: children}
}

// PhysicalPlan is the plain tree returned by Optimizer.Optimize once the
// search has picked a winner for every required property in scope. It is
// produced by memo.Memo.ExtractBestPlan.
type PhysicalPlan struct {
	Op       operator.Physical
	Children []*PhysicalPlan
}

// NewPhysicalPlan builds a PhysicalPlan node.
func NewPhysicalPlan(op operator.Physical, children ...*PhysicalPlan) *PhysicalPlan {
	return &PhysicalPlan{Op: op, Children: children}
}

// Plan is the transient tree rules build as the output of Transform. It
// pairs an operator with a vector of child Plans and, optionally, a
// reference to an already-materialized memo entry.
//
// When Existing is non-nil, the subtree rooted here is unchanged from
// what the memo already holds: the memo reuses that entry's group
// rather than allocating a new one, which is how rule application
// preserves group identity for children it did not touch. The concrete
// type behind Existing is owned by package memo (its *memo.GroupPlan);
// plan deliberately treats it as opaque so that this package does not
// need to import memo, which in turn imports plan.
type Plan struct {
	Op       operator.Operator
	Children []*Plan
	Existing any
}

// FromLogical wraps a Logical operator into a new (not-yet-materialized)
// Plan node.
func FromLogical(op operator.Logical, children ...*Plan) *Plan {
	return &Plan{Op: operator.FromLogical(op), Children: children}
}

// FromPhysical wraps a Physical operator into a new Plan node.
func FromPhysical(op operator.Physical, children ...*Plan) *Plan {
	return &Plan{Op: operator.FromPhysical(op), Children: children}
}

// FromExisting wraps an already-materialized memo entry so that a rule
// can reference an untouched child without forcing the memo to
// re-copy it.
func FromExisting(existing any) *Plan {
	return &Plan{Existing: existing}
}

// NewBound builds a Plan that exposes both its operator/children (for a
// rule's Check/Transform to inspect) and an Existing reference back to
// the memo entry it was matched from. If this exact node is forwarded
// unchanged into a rule's output, CopyInPlan reuses the existing group
// instead of reconstructing an equivalent one. This is how pattern
// matching (package rule) hands matched sub-plans to rules.
func NewBound(op operator.Operator, children []*Plan, existing any) *Plan {
	return &Plan{Op: op, Children: children, Existing: existing}
}

// IsExisting reports whether this node short-circuits to an
// already-materialized memo entry instead of carrying its own operator.
func (p *Plan) IsExisting() bool {
	return p.Existing != nil
}

// FromLogicalPlan converts a caller-supplied LogicalPlan into the
// transient Plan shape memo.Init copies from.
func FromLogicalPlan(lp *LogicalPlan) *Plan {
	if lp == nil {
		return nil
	}
	children := make([]*Plan, len(lp.Children))
	for i, c := range lp.Children {
		children[i] = FromLogicalPlan(c)
	}
	return &Plan{Op: operator.FromLogical(lp.Op), Children: children}
}
