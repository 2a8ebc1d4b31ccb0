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

package relops

import "github.com/cascadeql/optcore/operator"

// RowCountStats is the only statistic this catalog tracks. A smaller
// row count is always a strict improvement, so two independently
// estimated child statistics converge on whichever is tighter.
type RowCountStats struct {
	Rows int
}

// ShouldUpdate implements operator.Stats.
func (s RowCountStats) ShouldUpdate(current operator.Stats) bool {
	c, ok := current.(RowCountStats)
	if !ok {
		return true
	}
	return s.Rows < c.Rows
}
