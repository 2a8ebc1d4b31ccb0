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

// Package optimizer is the facade an embedding application drives: it
// owns one config.Options, wires up the ambient stack (logging, metrics,
// tracing, GC logging) the way the config selects, and exposes a single
// Optimize call that runs a plan through the memo/rule/task machinery
// and returns the cheapest physical plan it found.
package optimizer

import (
	"context"
	"io"
	"time"

	"github.com/CAFxX/gcnotifier"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/cascadeql/optcore/config"
	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/plan"
	"github.com/cascadeql/optcore/rule"
	"github.com/cascadeql/optcore/task"
)

// Optimizer runs Cascades searches against a fixed rule set, reporting
// through whatever logging/metrics/tracing config.Options enabled.
type Optimizer struct {
	opts    config.Options
	ruleSet *rule.RuleSet
	log     *logrus.Logger
	metrics *Metrics
	tracer  opentracing.Tracer

	gc *gcnotifier.GcNotifier
}

// New builds an Optimizer bound to ruleSet. metrics, built with
// NewMetrics against the caller's prometheus.Registerer, is reported into
// only when opts.MetricsEnabled is set; with MetricsEnabled unset or a nil
// metrics, nothing is recorded. log may be nil to disable logging.
func New(opts config.Options, ruleSet *rule.RuleSet, log *logrus.Logger, metrics *Metrics) *Optimizer {
	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	log.SetLevel(level)
	if !opts.MetricsEnabled {
		metrics = nil
	}

	o := &Optimizer{
		opts:    opts,
		ruleSet: ruleSet,
		log:     log,
		metrics: metrics,
	}

	if opts.TracingEnabled {
		o.tracer = opentracing.GlobalTracer()
	}
	if opts.GCLogging {
		o.gc = gcnotifier.New()
		go o.logGCEvents()
	}

	return o
}

// Close stops the background GC-logging goroutine, if one was started.
// It is a no-op when GC logging was never enabled.
func (o *Optimizer) Close() {
	if o.gc != nil {
		o.gc.Close()
	}
}

func (o *Optimizer) logGCEvents() {
	for range o.gc.AfterGC() {
		o.log.Debug("gc cycle observed")
	}
}

// Optimize runs a single Cascades search: it copies lp into a fresh
// Memo, schedules the root OptimizeGroup task under required, drains the
// task.Runner to completion, and extracts the cheapest physical plan
// satisfying required from the root group.
//
// A non-nil error means the search itself failed (a metadata lookup
// error propagated up through DeriveStats), was stopped between tasks
// (ctx was cancelled or its deadline passed, or the memo grew past
// config.Options.MaxMemoGroups, memo.ErrTooManyGroups), or no physical
// plan could be produced at all (memo.ErrNoPlanFound); each aborts the
// call with nothing usable returned.
func (o *Optimizer) Optimize(ctx context.Context, lp *plan.LogicalPlan, required operator.Properties, md operator.MetadataAccessor) (*plan.PhysicalPlan, error) {
	var span opentracing.Span
	if o.tracer != nil {
		span, _ = opentracing.StartSpanFromContextWithTracer(ctx, o.tracer, "optimizer.Optimize")
		defer span.Finish()
	}

	start := time.Now()
	if o.metrics != nil {
		defer func() { o.metrics.ObserveOptimizeDuration(time.Since(start)) }()
	}

	m := memo.New()
	m.SetMetrics(o.memoMetricsOrNil())
	m.SetMaxGroups(o.opts.MaxMemoGroups)
	root := m.Init(lp)

	optCtx := task.NewOptimizerContext(m, o.ruleSet, md, required, o.log, o.metricsOrNil())

	runner := task.NewRunner()
	runner.SetCancelCheck(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return m.CheckGroupCap()
	})
	runner.Push(task.NewOptimizeGroupTask(root, required))
	if err := runner.Run(optCtx); err != nil {
		if span != nil {
			span.SetTag("error", true)
		}
		return nil, err
	}

	best, err := m.ExtractBestPlan(required)
	if err != nil {
		if span != nil {
			span.SetTag("error", true)
		}
		return nil, err
	}
	return best, nil
}

func (o *Optimizer) metricsOrNil() task.Metrics {
	if o.metrics == nil {
		return nil
	}
	return o.metrics
}

func (o *Optimizer) memoMetricsOrNil() memo.Metrics {
	if o.metrics == nil {
		return nil
	}
	return o.metrics
}
