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

// Package config loads the tuning knobs an embedding application sets
// around an Optimizer: log level, whether metrics/tracing/GC logging are
// wired up. It is intentionally small and YAML-shaped, following the
// teacher's own style of keeping operational config close to plain
// structs rather than a bespoke flag parser.
package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"
)

// ErrInvalidLogLevel is returned when a config file names a log level
// logrus does not recognize.
var ErrInvalidLogLevel = errors.NewKind("config: invalid log level %q")

// Options are the tuning knobs for one Optimizer instance.
type Options struct {
	// LogLevel is parsed with logrus.ParseLevel; defaults to "info".
	LogLevel string `yaml:"log_level"`
	// MetricsEnabled turns on reporting into the optimizer.Metrics
	// collectors passed to optimizer.New.
	MetricsEnabled bool `yaml:"metrics_enabled"`
	// TracingEnabled turns on an opentracing span per Optimize call.
	// Individual tasks get no spans of their own.
	TracingEnabled bool `yaml:"tracing_enabled"`
	// GCLogging subscribes to GC notifications for the lifetime of the
	// Optimizer (until Close) and logs each one at Debug; useful while
	// tuning memo size on a long-running service.
	GCLogging bool `yaml:"gc_logging"`
	// MaxMemoGroups caps the number of groups a single Optimize call may
	// allocate before it aborts; zero means unbounded. The cap is polled
	// once per drained scheduler task (memo.Memo.CheckGroupCap via
	// Runner.SetCancelCheck), not on every allocation, so a single task
	// that fans out into many new plans can overshoot it slightly before
	// the search aborts. Accepts any YAML-scalar shape (string, int,
	// float) via spf13/cast, since operators commonly templatize config
	// files with string env substitution.
	MaxMemoGroups int `yaml:"max_memo_groups"`
}

// Default returns the zero-tuning baseline: info logging, nothing else
// enabled.
func Default() Options {
	return Options{LogLevel: "info"}
}

// rawOptions mirrors Options but leaves MaxMemoGroups as `any` so
// loosely-typed YAML values (e.g. a quoted "1000") can be coerced with
// cast instead of failing yaml.Unmarshal outright.
type rawOptions struct {
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	TracingEnabled bool   `yaml:"tracing_enabled"`
	GCLogging      bool   `yaml:"gc_logging"`
	MaxMemoGroups  any    `yaml:"max_memo_groups"`
}

// Load parses YAML-encoded Options from data, applying Default for any
// field the source omits.
func Load(data []byte) (Options, error) {
	opts := Default()

	var raw rawOptions
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Options{}, err
	}

	if raw.LogLevel != "" {
		if _, err := logrus.ParseLevel(raw.LogLevel); err != nil {
			return Options{}, ErrInvalidLogLevel.New(raw.LogLevel)
		}
		opts.LogLevel = raw.LogLevel
	}
	opts.MetricsEnabled = raw.MetricsEnabled
	opts.TracingEnabled = raw.TracingEnabled
	opts.GCLogging = raw.GCLogging

	if raw.MaxMemoGroups != nil {
		groups, err := cast.ToIntE(raw.MaxMemoGroups)
		if err != nil {
			return Options{}, err
		}
		opts.MaxMemoGroups = groups
	}

	return opts, nil
}

// LoadFile reads and parses a YAML config file at path.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return Load(data)
}
