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

// IsNull is a unary predicate: its Operand is null.
type IsNull struct {
	Operand ColumnVar
}

// Equal implements operator.Scalar.
func (p IsNull) Equal(other operator.Scalar) bool {
	o, ok := other.(IsNull)
	return ok && o.Operand.Equal(p.Operand)
}

// SplitPredicates implements operator.Scalar: IsNull is never itself a
// conjunction.
func (p IsNull) SplitPredicates() []operator.Scalar {
	return []operator.Scalar{p}
}

// And is a conjunction of one or more operands. It is the only predicate
// shape SplitPredicates decomposes.
type And struct {
	Operands []operator.Scalar
}

// Equal implements operator.Scalar.
func (p And) Equal(other operator.Scalar) bool {
	o, ok := other.(And)
	if !ok || len(o.Operands) != len(p.Operands) {
		return false
	}
	for i, operand := range p.Operands {
		if !operand.Equal(o.Operands[i]) {
			return false
		}
	}
	return true
}

// SplitPredicates implements operator.Scalar: the top-level conjuncts,
// in order. Nested Ands are not flattened recursively since this
// catalog's rules never build nested Ands.
func (p And) SplitPredicates() []operator.Scalar {
	return p.Operands
}

// newAnd builds an And over conjuncts, collapsing to the bare conjunct
// when there is exactly one and to nil when there are none.
func newAnd(conjuncts []operator.Scalar) operator.Scalar {
	switch len(conjuncts) {
	case 0:
		return nil
	case 1:
		return conjuncts[0]
	default:
		return And{Operands: conjuncts}
	}
}
