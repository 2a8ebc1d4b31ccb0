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

// LogicalScan reads every row of the relation named by Table.
type LogicalScan struct {
	Table         TableDesc
	OutputColumns []ColumnVar
}

func (o LogicalScan) Name() string            { return "logical_scan" }
func (o LogicalScan) OperatorID() operator.ID { return OpLogicalScan }

// DeriveStatistics resolves the relation's RelationMetadata, then its
// RelationStats, through md.
func (o LogicalScan) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	relMd, err := md.Retrieve(o.Table.MdID)
	if err != nil {
		return nil, err
	}
	relation := relMd.(RelationMetadata)

	statsMd, err := md.Retrieve(relation.StatsID)
	if err != nil {
		return nil, err
	}
	return RowCountStats{Rows: statsMd.(RelationStats).RowCount}, nil
}

// indexesFor resolves the relation's available indexes through md,
// given the scan's own TableDesc. Used by the ScanToIndexScan rule.
func (o LogicalScan) indexesFor(md operator.MetadataAccessor) ([]IndexMd, error) {
	relMd, err := md.Retrieve(o.Table.MdID)
	if err != nil {
		return nil, err
	}
	return relMd.(RelationMetadata).Indexes, nil
}

// LogicalFilter keeps only the rows its single child produces that
// satisfy Predicate.
type LogicalFilter struct {
	Predicate operator.Scalar
}

func (o LogicalFilter) Name() string            { return "logical_filter" }
func (o LogicalFilter) OperatorID() operator.ID { return OpLogicalFilter }

// DeriveStatistics halves the child's row-count estimate, a simple
// fixed-selectivity stand-in since this catalog carries no histogram
// math.
func (o LogicalFilter) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	in := childStats[0].(RowCountStats)
	return RowCountStats{Rows: in.Rows / 2}, nil
}

// LogicalProject narrows its child's output to Columns without changing
// row count.
type LogicalProject struct {
	Columns []ColumnVar
}

func (o LogicalProject) Name() string            { return "logical_project" }
func (o LogicalProject) OperatorID() operator.ID { return OpLogicalProject }

// DeriveStatistics passes the child's row count through unchanged:
// projection never filters rows.
func (o LogicalProject) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	return childStats[0], nil
}
