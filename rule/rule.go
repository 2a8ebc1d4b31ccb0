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
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
)

// Context is the narrow view of live optimizer state a rule's Check and
// Transform may consult. Package task's OptimizerContext implements
// this; rule deliberately does not import task; otherwise the two
// packages would import each other.
type Context interface {
	Metadata() operator.MetadataAccessor
}

// Rule is a local rewrite: a Pattern it fires on, plus the logic to
// validate and materialize a match. Transformation rules rewrite logical
// plans into alternative logical plans (exploring the equivalence
// class); implementation rules rewrite logical plans into physical
// plans (generating executable candidates).
type Rule interface {
	Name() string
	RuleID() memo.RuleID
	Pattern() Pattern

	// Check filters a raw pattern match before Transform runs.
	Check(input *plan.Plan, ctx Context) bool
	// Transform produces zero or more replacement Plans for input.
	Transform(input *plan.Plan, ctx Context) []*plan.Plan

	// Promise is a rule's self-declared priority. Most rules accept the
	// default of 1. The task scheduler does not read it: rules that apply
	// to the same GroupPlan are pushed in registration order and so run
	// in reverse registration order.
	Promise() int
	// NeedStatistics reports whether this rule's Check/Transform reads
	// group statistics. The task scheduler does not read it; statistics
	// are derived for a plan before any of its rules run regardless.
	NeedStatistics() bool
	// ApplyOnce reports whether this rule declares itself single-use per
	// owning group. The task scheduler does not read it; every rule is
	// applied at most once per GroupPlan regardless of this flag.
	ApplyOnce() bool

	IsTransformation() bool
	IsImplementation() bool
}

// Base supplies the common default method bodies so that concrete rules
// only need to override what they actually customize, mirroring the
// reference trait's default methods.
type Base struct{}

// Check defaults to accepting every pattern match.
func (Base) Check(input *plan.Plan, ctx Context) bool { return true }

// Promise defaults to the lowest non-zero priority.
func (Base) Promise() int { return 1 }

// NeedStatistics defaults to false.
func (Base) NeedStatistics() bool { return false }

// ApplyOnce defaults to false.
func (Base) ApplyOnce() bool { return false }

// Transformation embeds Base and reports IsTransformation() = true.
type Transformation struct{ Base }

func (Transformation) IsTransformation() bool { return true }
func (Transformation) IsImplementation() bool { return false }

// Implementation embeds Base and reports IsImplementation() = true.
type Implementation struct{ Base }

func (Implementation) IsTransformation() bool { return false }
func (Implementation) IsImplementation() bool { return true }
