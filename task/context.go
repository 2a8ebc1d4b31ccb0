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

// Package task implements the Cascades search itself: a single-threaded
// LIFO TaskRunner driving the six task kinds (OptimizeGroup,
// OptimizePlan, ApplyRule, EnforceAndCost, DeriveStats, ExploreGroup)
// that together explore, implement, cost and enforce properties over a
// Memo.
package task

import (
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/cascadeql/optcore/memo"
	"github.com/cascadeql/optcore/operator"
	"github.com/cascadeql/optcore/rule"
)

// Metrics is the narrow set of counters the scheduler reports through.
// optimizer.Metrics implements this over prometheus collectors; nil is
// accepted and simply disables reporting.
type Metrics interface {
	TaskExecuted(kind Kind)
	RuleApplied(ruleName string)
	EnforcerInserted()
}

// Kind identifies one of the six task kinds, used for logging, tracing
// and metrics labels.
type Kind int

const (
	KindOptimizeGroup Kind = iota
	KindOptimizePlan
	KindApplyRule
	KindEnforceAndCost
	KindDeriveStats
	KindExploreGroup
)

func (k Kind) String() string {
	switch k {
	case KindOptimizeGroup:
		return "optimize_group"
	case KindOptimizePlan:
		return "optimize_plan"
	case KindApplyRule:
		return "apply_rule"
	case KindEnforceAndCost:
		return "enforce_and_cost"
	case KindDeriveStats:
		return "derive_stats"
	case KindExploreGroup:
		return "explore_group"
	default:
		return "unknown"
	}
}

// OptimizerContext bundles everything a task needs to execute: the live
// memo, the registered rules, the metadata accessor, and the root
// requirement the caller asked for. It is created once per Optimize call
// and stamped with a correlation id used to tie together the log lines
// a single search can produce in the thousands.
type OptimizerContext struct {
	memo     *memo.Memo
	ruleSet  *rule.RuleSet
	metadata operator.MetadataAccessor
	required operator.Properties

	correlationID uuid.UUID
	log           *logrus.Entry
	metrics       Metrics
}

// NewOptimizerContext builds an OptimizerContext. logger may be nil, in
// which case a disabled logger is used; metrics may be nil to disable
// metrics reporting.
func NewOptimizerContext(m *memo.Memo, rs *rule.RuleSet, md operator.MetadataAccessor, required operator.Properties, logger *logrus.Logger, metrics Metrics) *OptimizerContext {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	id := uuid.NewV4()
	return &OptimizerContext{
		memo:          m,
		ruleSet:       rs,
		metadata:      md,
		required:      required,
		correlationID: id,
		log:           logger.WithField("optimize_id", id.String()),
		metrics:       metrics,
	}
}

// Memo returns the live memo this context drives.
func (c *OptimizerContext) Memo() *memo.Memo { return c.memo }

// RuleSet returns the registered rules.
func (c *OptimizerContext) RuleSet() *rule.RuleSet { return c.ruleSet }

// Metadata implements rule.Context.
func (c *OptimizerContext) Metadata() operator.MetadataAccessor { return c.metadata }

// RequiredProperties returns the root requirement this Optimize call was
// asked to satisfy.
func (c *OptimizerContext) RequiredProperties() operator.Properties { return c.required }

// CorrelationID returns the UUID stamped on this context.
func (c *OptimizerContext) CorrelationID() uuid.UUID { return c.correlationID }

func (c *OptimizerContext) logTask(kind Kind, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["task"] = kind.String()
	c.log.WithFields(fields).Debug("executing task")
	if c.metrics != nil {
		c.metrics.TaskExecuted(kind)
	}
}
