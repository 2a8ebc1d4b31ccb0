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

package memo

// Metrics is the narrow counter surface newGroup reports through. It is
// declared here rather than imported from package task (which already
// imports memo, so the reverse import would cycle) and is satisfied
// structurally by optimizer.Metrics the same way rule.Context is
// satisfied by task.OptimizerContext.
type Metrics interface {
	GroupCreated()
}

// SetMetrics installs the collector newGroup reports into; nil disables
// reporting. It is a setter rather than a New argument so the handful of
// tests that build a bare Memo are unaffected.
func (m *Memo) SetMetrics(metrics Metrics) {
	m.metrics = metrics
}
