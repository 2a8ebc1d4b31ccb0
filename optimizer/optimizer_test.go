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

package optimizer

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/cascadeql/optcore/config"
	"github.com/cascadeql/optcore/cost"
	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/rule"
)

const opCount operator.ID = 100
const opPhysCount operator.ID = 101

type countScan struct{ rows int }

func (o countScan) Name() string            { return "count_scan" }
func (o countScan) OperatorID() operator.ID { return opCount }
func (o countScan) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	return countStats{rows: o.rows}, nil
}

type countStats struct{ rows int }

func (s countStats) ShouldUpdate(current operator.Stats) bool {
	c, ok := current.(countStats)
	return !ok || s.rows < c.rows
}

type physCount struct{}

func (o physCount) Name() string            { return "phys_count_scan" }
func (o physCount) OperatorID() operator.ID { return opPhysCount }
func (o physCount) DeriveOutputProperties(childProps []operator.Properties) operator.Properties {
	return noopProps{}
}
func (o physCount) RequiredProperties(parentRequired operator.Properties) []operator.PropertiesPerChild {
	return []operator.PropertiesPerChild{nil}
}
func (o physCount) ComputeCost(stats operator.Stats) cost.Cost { return cost.New(1) }
func (o physCount) Equal(other operator.Physical) bool {
	_, ok := other.(physCount)
	return ok
}

// noopProps is satisfied by anything, standing in for "no requirement".
type noopProps struct{}

func (noopProps) Satisfy(required operator.Properties) bool { return true }
func (noopProps) Equal(other operator.Properties) bool      { _, ok := other.(noopProps); return ok }
func (noopProps) HashKey() uint64                            { return 0 }

type implCount struct{ rule.Implementation }

func (implCount) Name() string        { return "count_scan_to_phys" }
func (implCount) RuleID() memo.RuleID { return 1 }
func (implCount) Pattern() rule.Pattern {
	return rule.MatchOperator(opCount)
}
func (implCount) Transform(input *plan.Plan, ctx rule.Context) []*plan.Plan {
	return []*plan.Plan{plan.FromPhysical(physCount{})}
}

type nopMetadata struct{}

func (nopMetadata) Retrieve(id operator.MdID) (operator.Metadata, error) { return nil, nil }

func buildTestRuleSet(t *testing.T) *rule.RuleSet {
	t.Helper()
	rs, err := rule.NewRuleSet(nil, []rule.Rule{implCount{}})
	require.NoError(t, err)
	return rs
}

func TestOptimizeReturnsCheapestPhysicalPlan(t *testing.T) {
	rs := buildTestRuleSet(t)
	opt := New(config.Default(), rs, nil, nil)

	lp := plan.NewLogicalPlan(countScan{rows: 100})
	best, err := opt.Optimize(context.Background(), lp, noopProps{}, nopMetadata{})
	require.NoError(t, err)
	require.Equal(t, "phys_count_scan", best.Op.Name())
}

func TestNewFallsBackToInfoOnInvalidLogLevel(t *testing.T) {
	rs := buildTestRuleSet(t)
	opts := config.Default()
	opts.LogLevel = "not-a-level"
	opt := New(opts, rs, nil, nil)
	require.Equal(t, "info", opt.log.Level.String())
}

func TestMetricsRecordsTaskExecution(t *testing.T) {
	rs := buildTestRuleSet(t)
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	opts := config.Default()
	opts.MetricsEnabled = true
	opt := New(opts, rs, nil, m)

	lp := plan.NewLogicalPlan(countScan{rows: 5})
	_, err := opt.Optimize(context.Background(), lp, noopProps{}, nopMetadata{})
	require.NoError(t, err)

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, metricFamilies)

	names := make(map[string]bool, len(metricFamilies))
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}
	require.True(t, names["cascadeql_optimizer_tasks_executed_total"])
	require.True(t, names["cascadeql_optimizer_memo_groups_created_total"])
	require.True(t, names["cascadeql_optimizer_optimize_duration_seconds"])
}

// wrapCount is a one-child logical node with no implementation rule
// registered, used only to force Init to allocate a second group.
type wrapCount struct{}

func (o wrapCount) Name() string            { return "wrap_count" }
func (o wrapCount) OperatorID() operator.ID { return opPhysCount + 1 }
func (o wrapCount) DeriveStatistics(md operator.MetadataAccessor, childStats []operator.Stats) (operator.Stats, error) {
	return countStats{rows: 1}, nil
}

func TestMaxMemoGroupsAbortsSearch(t *testing.T) {
	rs := buildTestRuleSet(t)
	opts := config.Default()
	opts.MaxMemoGroups = 1
	opt := New(opts, rs, nil, nil)

	lp := plan.NewLogicalPlan(wrapCount{}, plan.NewLogicalPlan(countScan{rows: 5}))
	_, err := opt.Optimize(context.Background(), lp, noopProps{}, nopMetadata{})
	require.Error(t, err)
	require.True(t, memo.ErrTooManyGroups.Is(err))
}
