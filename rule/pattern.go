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

// Package rule implements the pattern matcher and binding iterator that
// drive rule application: Pattern describes the shape a rule is willing
// to fire on, Binding lazily enumerates the concrete sub-plans of the
// memo matching that shape, and RuleSet partitions registered rules into
// the transformation and implementation families.
package rule

import (
	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
)

// Kind discriminates the four Pattern node shapes.
type Kind int

const (
	// KindOperator matches a GroupPlan whose logical operator has a
	// specific operator.ID.
	KindOperator Kind = iota
	// KindTree is the full-wildcard pattern kind. MatchWithoutChild does
	// not accept it, so a Tree pattern matches nothing at any position.
	KindTree
	// KindLeaf matches any single GroupPlan without descending into it.
	KindLeaf
	// KindMultiLeaf greedily matches one-or-more consecutive children at
	// the position it occupies, without descending into any of them.
	KindMultiLeaf
)

// Pattern is an ordered tree describing the plan shape a rule matches
// against.
type Pattern struct {
	kind       Kind
	operatorID operator.ID
	children   []Pattern
}

// MatchOperator matches a logical operator with the given id, requiring
// its children to match the given child patterns in order.
func MatchOperator(id operator.ID, children ...Pattern) Pattern {
	return Pattern{kind: KindOperator, operatorID: id, children: children}
}

// MatchTree builds a Tree pattern. MatchWithoutChild does not accept a
// Tree pattern, so it matches no GroupPlan at any position.
func MatchTree() Pattern {
	return Pattern{kind: KindTree}
}

// MatchLeaf matches any single GroupPlan, undescended.
func MatchLeaf() Pattern {
	return Pattern{kind: KindLeaf}
}

// MatchMultiLeaf greedily matches one or more consecutive children,
// undescended.
func MatchMultiLeaf() Pattern {
	return Pattern{kind: KindMultiLeaf}
}

// Children returns this pattern's child patterns.
func (p Pattern) Children() []Pattern {
	return p.children
}

// Child returns the child pattern at index i.
func (p Pattern) Child(i int) Pattern {
	return p.children[i]
}

// IsLeaf reports whether this is a Leaf pattern.
func (p Pattern) IsLeaf() bool {
	return p.kind == KindLeaf
}

// IsMultiLeaf reports whether this is a MultiLeaf pattern.
func (p Pattern) IsMultiLeaf() bool {
	return p.kind == KindMultiLeaf
}

// IsLeafOrMultiLeaf reports whether this pattern matches unconditionally
// without descending.
func (p Pattern) IsLeafOrMultiLeaf() bool {
	return p.kind == KindLeaf || p.kind == KindMultiLeaf
}

func (p Pattern) isOperator(id operator.ID) bool {
	return p.kind == KindOperator && p.operatorID == id
}

func childrenHaveMultiLeaf(children []Pattern) bool {
	for _, c := range children {
		if c.IsMultiLeaf() {
			return true
		}
	}
	return false
}

// MatchWithoutChild reports whether this pattern matches gp's own shape
// (operator id and input-count bound), without attempting to recursively
// match any child. Full recursive matching, including enumerating the
// concrete child alternatives, is Binding's job.
func (p Pattern) MatchWithoutChild(gp *memo.GroupPlan) bool {
	inputs := gp.Inputs()
	if len(inputs) < len(p.children) && !childrenHaveMultiLeaf(p.children) {
		return false
	}

	if p.IsLeafOrMultiLeaf() {
		return true
	}

	op := gp.Operator()
	if !op.IsLogical() {
		return false
	}
	return p.isOperator(op.OperatorID())
}
