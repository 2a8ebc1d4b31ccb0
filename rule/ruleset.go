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
	"gopkg.in/src-d/go-errors.v1"

	"github.com/cascadeql/optcore/memo"
)

// ErrDuplicateRuleID is returned by NewRuleSet when two registered rules
// share a RuleID. rule_id -> bit position must be injective for the
// rule_mask bitset in package memo to be sound.
var ErrDuplicateRuleID = errors.NewKind("rule: duplicate rule id %d used by both %q and %q")

// ErrWrongFamily is returned by NewRuleSet when a rule is registered in
// the wrong partition (a transformation rule among implement rules, or
// vice versa).
var ErrWrongFamily = errors.NewKind("rule: %q is not a %s rule")

// RuleSet partitions the registered rules into transformation and
// implementation families.
type RuleSet struct {
	transformRules []Rule
	implementRules []Rule
}

// NewRuleSet validates and builds a RuleSet. It rejects duplicate rule
// ids across both families and rules registered under the wrong family.
func NewRuleSet(transformRules, implementRules []Rule) (*RuleSet, error) {
	seen := make(map[memo.RuleID]string, len(transformRules)+len(implementRules))

	for _, r := range transformRules {
		if !r.IsTransformation() {
			return nil, ErrWrongFamily.New(r.Name(), "transformation")
		}
		if other, ok := seen[r.RuleID()]; ok {
			return nil, ErrDuplicateRuleID.New(r.RuleID(), other, r.Name())
		}
		seen[r.RuleID()] = r.Name()
	}
	for _, r := range implementRules {
		if !r.IsImplementation() {
			return nil, ErrWrongFamily.New(r.Name(), "implementation")
		}
		if other, ok := seen[r.RuleID()]; ok {
			return nil, ErrDuplicateRuleID.New(r.RuleID(), other, r.Name())
		}
		seen[r.RuleID()] = r.Name()
	}

	return &RuleSet{transformRules: transformRules, implementRules: implementRules}, nil
}

// TransformRules returns the transformation-rule partition.
func (rs *RuleSet) TransformRules() []Rule {
	return rs.transformRules
}

// ImplementRules returns the implementation-rule partition.
func (rs *RuleSet) ImplementRules() []Rule {
	return rs.implementRules
}

// ApplicableRules returns every rule (from both families) whose pattern
// matches gp's own shape and which has not already been applied to it.
func (rs *RuleSet) ApplicableRules(gp *memo.GroupPlan) []Rule {
	var applicable []Rule
	for _, r := range rs.transformRules {
		if !gp.IsRuleApplied(r.RuleID()) && r.Pattern().MatchWithoutChild(gp) {
			applicable = append(applicable, r)
		}
	}
	for _, r := range rs.implementRules {
		if !gp.IsRuleApplied(r.RuleID()) && r.Pattern().MatchWithoutChild(gp) {
			applicable = append(applicable, r)
		}
	}
	return applicable
}
