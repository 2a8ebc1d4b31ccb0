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

// Package relops is a small demo relational catalog: scan/filter/project
// over a single-table catalog, with an index-scan implementation rule
// that splits predicates between what an index key covers and what must
// survive as a residual filter. It exists purely to give the optimizer
// core something concrete to search over in tests; nothing in package
// optimizer, memo, rule or task imports it.
package relops

import "github.com/cascadeql/optcore/operator"

// ColumnVar names a column by its ordinal position in the base relation.
// Projection in this catalog never renumbers columns, so a ColumnVar
// retains the same meaning above and below a Project node.
type ColumnVar struct {
	Index int
}

// Equal implements operator.Scalar.
func (c ColumnVar) Equal(other operator.Scalar) bool {
	o, ok := other.(ColumnVar)
	return ok && o.Index == c.Index
}

// SplitPredicates implements operator.Scalar: a bare column reference is
// not a conjunction, so it splits to itself.
func (c ColumnVar) SplitPredicates() []operator.Scalar {
	return []operator.Scalar{c}
}

// mentions reports whether expr reads column c anywhere in its tree.
func mentions(expr operator.Scalar, c ColumnVar) bool {
	switch e := expr.(type) {
	case ColumnVar:
		return e.Index == c.Index
	case IsNull:
		return mentions(e.Operand, c)
	case And:
		for _, conjunct := range e.Operands {
			if mentions(conjunct, c) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// referencedColumns returns every column expr reads, walking the same
// ColumnVar/IsNull/And shapes as mentions. Used by IndexMd.coversKey to
// check full coverage rather than a single target column.
func referencedColumns(expr operator.Scalar) []ColumnVar {
	switch e := expr.(type) {
	case ColumnVar:
		return []ColumnVar{e}
	case IsNull:
		return referencedColumns(e.Operand)
	case And:
		var cols []ColumnVar
		for _, conjunct := range e.Operands {
			cols = append(cols, referencedColumns(conjunct)...)
		}
		return cols
	default:
		return nil
	}
}
