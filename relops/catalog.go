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

// TableDesc names the base relation a Scan reads, by its metadata id.
type TableDesc struct {
	MdID operator.MdID
}

// IndexMd describes one btree index over a relation: the key columns it
// is physically sorted on, and the columns it covers (key plus any
// included columns) so a scan can be satisfied without a heap lookup.
type IndexMd struct {
	Name           string
	KeyColumns     []ColumnVar
	IncludeColumns []ColumnVar
}

// coversKey reports whether every column mentioned by expr is among the
// index's key columns, i.e. the index can evaluate expr on its own.
func (idx IndexMd) coversKey(expr operator.Scalar) bool {
	for _, col := range referencedColumns(expr) {
		covered := false
		for _, key := range idx.KeyColumns {
			if key.Index == col.Index {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// RelationStats is the row-count estimate for a relation, keyed in the
// metadata catalog separately from RelationMetadata itself (mirroring
// the reference catalog's stats/metadata split).
type RelationStats struct {
	RowCount int
}

// RelationMetadata is the catalog entry a LogicalScan resolves to derive
// its statistics and to learn what indexes are available for the
// index-scan rule to consider.
type RelationMetadata struct {
	Name    string
	StatsID operator.MdID
	Indexes []IndexMd
}
