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

package memo

import "math/bits"

// RuleID identifies a rule for rule_mask bookkeeping. A RuleSet assigns
// these at construction time and rejects duplicates; see package rule.
type RuleID uint16

// maxRuleID bounds the rule_mask bitset to 256 concurrently registered
// rules, which comfortably exceeds any rule catalog built on top of this
// core.
const maxRuleID = 256

// ruleMask is a fixed-size bitset tracking which rules have already been
// applied to a GroupPlan. A rule id appears in at most one bit position
// and, once set, is never cleared.
type ruleMask [maxRuleID / 64]uint64

func (m *ruleMask) has(id RuleID) bool {
	word, bit := id/64, id%64
	return m[word]&(uint64(1)<<bit) != 0
}

func (m *ruleMask) set(id RuleID) {
	word, bit := id/64, id%64
	m[word] |= uint64(1) << bit
}

// count returns the number of rules applied so far; used only by tests
// and diagnostics.
func (m *ruleMask) count() int {
	n := 0
	for _, word := range m {
		n += bits.OnesCount64(word)
	}
	return n
}
