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

// Package memo implements the shared graph of equivalence classes (the
// Cascades "memo"): Group, GroupPlan and the Memo that owns them. It is
// the polynomial-size encoding of the exponential space of equivalent
// plans, obtained by factoring shared subtrees into groups and
// collapsing operator alternatives into per-group lists.
package memo

import (
	"fmt"

	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/props"
)

// GroupID re-exports props.GroupID for callers that only need to name a
// memo group and should not otherwise depend on package props.
type GroupID = props.GroupID

// Memo owns every Group created during a single optimize call.
type Memo struct {
	groups      []*Group
	rootGroup   props.GroupID
	hasRoot     bool
	nextGroupID uint32

	metrics   Metrics
	maxGroups int
}

// New builds an empty Memo.
func New() *Memo {
	return &Memo{}
}

// Init copies a caller-supplied LogicalPlan into the memo, allocating one
// group per logical node, and records the resulting group as the root.
func (m *Memo) Init(lp *plan.LogicalPlan) props.GroupID {
	root := m.CopyInPlan(nil, plan.FromLogicalPlan(lp))
	m.rootGroup = root.groupID
	m.hasRoot = true
	return m.rootGroup
}

// CopyInPlan walks a transient Plan tree built by a rule's Transform and
// materializes it into the memo. Children whose Existing field is set
// short-circuit to the group they already belong to, preserving group
// identity for subtrees a rule did not touch; everything else is
// recursively copied in as fresh GroupPlans.
//
// When targetGroup is non-nil, the top-level node is inserted into that
// group (this is how a rule's output joins the equivalence class of the
// plan it was derived from) rather than allocating a new one.
func (m *Memo) CopyInPlan(targetGroup *props.GroupID, p *plan.Plan) *GroupPlan {
	inputs := make([]props.GroupID, len(p.Children))
	for i, child := range p.Children {
		inputs[i] = m.resolveChildGroup(child)
	}

	gp := newGroupPlan(p.Op, inputs)
	return m.InsertGroupPlan(gp, targetGroup)
}

func (m *Memo) resolveChildGroup(p *plan.Plan) props.GroupID {
	if p.IsExisting() {
		return p.Existing.(*GroupPlan).groupID
	}
	return m.CopyInPlan(nil, p).groupID
}

// InsertGroupPlan appends gp to the logical or physical list of
// targetGroup (allocating a fresh group if targetGroup is nil), sets its
// back-reference, and returns it.
func (m *Memo) InsertGroupPlan(gp *GroupPlan, targetGroup *props.GroupID) *GroupPlan {
	var group *Group
	if targetGroup != nil {
		group = m.Group(*targetGroup)
	} else {
		group = m.newGroup()
	}

	gp.memo = m
	gp.groupID = group.id
	group.addPlan(gp)
	return gp
}

func (m *Memo) newGroup() *Group {
	g := newGroup(props.GroupID(m.nextGroupID))
	m.nextGroupID++
	m.groups = append(m.groups, g)
	if m.metrics != nil {
		m.metrics.GroupCreated()
	}
	return g
}

// SetMaxGroups caps the number of groups this Memo may allocate; zero (the
// default) leaves it unbounded. It does not itself abort allocation —
// CheckGroupCap reports the overflow for a caller to act on, the same way
// Runner.cancelCheck is polled once per drained task rather than threaded
// through every call that might push a new task.
func (m *Memo) SetMaxGroups(n int) {
	m.maxGroups = n
}

// CheckGroupCap reports ErrTooManyGroups once the memo has allocated past
// the limit set by SetMaxGroups. optimizer.Optimize polls it via
// Runner.SetCancelCheck so a runaway search aborts between tasks.
func (m *Memo) CheckGroupCap() error {
	if m.maxGroups > 0 && len(m.groups) > m.maxGroups {
		return ErrTooManyGroups.New(m.maxGroups)
	}
	return nil
}

// Group resolves a GroupID to its Group. It panics if the id is unknown,
// which is the Go stand-in for an un-upgradable weak reference: it
// indicates a stale id outlived the memo that produced it.
func (m *Memo) Group(id props.GroupID) *Group {
	idx := int(id)
	if idx < 0 || idx >= len(m.groups) {
		panic(fmt.Sprintf("memo: group %d does not exist", id))
	}
	return m.groups[idx]
}

// RootGroup returns the id of the group Init produced. It panics if
// called before Init.
func (m *Memo) RootGroup() props.GroupID {
	if !m.hasRoot {
		panic("memo: RootGroup called before Init")
	}
	return m.rootGroup
}

// ExtractBestPlan reconstructs the optimal physical plan satisfying
// required, starting from the root group.
func (m *Memo) ExtractBestPlan(required operator.Properties) (*plan.PhysicalPlan, error) {
	return m.Group(m.RootGroup()).ExtractBestPlan(required)
}
