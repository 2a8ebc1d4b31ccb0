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
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cascadeql/optcore/task"
)

// Metrics implements task.Metrics and memo.Metrics over prometheus
// collectors. A nil *Metrics is never passed to task.NewOptimizerContext
// or memo.Memo.SetMetrics; Optimizer only reports into one when
// config.Options.MetricsEnabled is set.
type Metrics struct {
	tasksExecuted     *prometheus.CounterVec
	rulesApplied      *prometheus.CounterVec
	enforcersInserted prometheus.Counter
	groupsCreated     prometheus.Counter
	optimizeDuration  prometheus.Histogram
}

// NewMetrics builds and registers the optimizer's collectors against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tasksExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cascadeql",
			Subsystem: "optimizer",
			Name:      "tasks_executed_total",
			Help:      "Number of scheduler tasks executed, by kind.",
		}, []string{"kind"}),
		rulesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cascadeql",
			Subsystem: "optimizer",
			Name:      "rules_applied_total",
			Help:      "Number of times a rule produced at least one physical alternative, by rule name.",
		}, []string{"rule"}),
		enforcersInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cascadeql",
			Subsystem: "optimizer",
			Name:      "enforcers_inserted_total",
			Help:      "Number of enforcer operators fabricated to satisfy an otherwise-unmet requirement.",
		}),
		groupsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cascadeql",
			Subsystem: "optimizer",
			Name:      "memo_groups_created_total",
			Help:      "Number of memo groups allocated across all Optimize calls.",
		}),
		optimizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cascadeql",
			Subsystem: "optimizer",
			Name:      "optimize_duration_seconds",
			Help:      "Wall-clock duration of Optimize calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.tasksExecuted, m.rulesApplied, m.enforcersInserted, m.groupsCreated, m.optimizeDuration)
	return m
}

// TaskExecuted implements task.Metrics.
func (m *Metrics) TaskExecuted(kind task.Kind) {
	m.tasksExecuted.WithLabelValues(kind.String()).Inc()
}

// RuleApplied implements task.Metrics.
func (m *Metrics) RuleApplied(ruleName string) {
	m.rulesApplied.WithLabelValues(ruleName).Inc()
}

// EnforcerInserted implements task.Metrics.
func (m *Metrics) EnforcerInserted() {
	m.enforcersInserted.Inc()
}

// GroupCreated implements memo.Metrics.
func (m *Metrics) GroupCreated() {
	m.groupsCreated.Inc()
}

// ObserveOptimizeDuration records one Optimize call's wall-clock duration.
func (m *Metrics) ObserveOptimizeDuration(d time.Duration) {
	m.optimizeDuration.Observe(d.Seconds())
}
