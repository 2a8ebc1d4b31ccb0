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

// Package cost defines the scalar cost value used to compare candidate
// physical plans during optimization.
package cost

// Cost wraps a non-negative real-valued scalar. Costs are totally ordered
// and additive: the cost of a plan is the sum of its own cost plus the
// cost of each of its children.
type Cost struct {
	value float64
}

// Zero is the identity element for addition.
var Zero = Cost{}

// New builds a Cost from a raw value. Negative values are not meaningful
// in this model but are not rejected here; callers that derive cost from
// untrusted operator implementations should clamp at the source.
func New(value float64) Cost {
	return Cost{value: value}
}

// Value returns the raw scalar.
func (c Cost) Value() float64 {
	return c.value
}

// Add returns the sum of two costs.
func (c Cost) Add(other Cost) Cost {
	return Cost{value: c.value + other.value}
}

// Less reports whether c is strictly less than other. Best-plan updates
// must use strict less-than (see DESIGN.md) so that equal-cost
// alternatives do not churn the first plan that reached a given cost.
func (c Cost) Less(other Cost) bool {
	return c.value < other.value
}

// LessOrEqual reports whether c is less than or equal to other.
func (c Cost) LessOrEqual(other Cost) bool {
	return c.value <= other.value
}
