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

package task

// Task is one of the six scheduler task kinds. The interface is
// intentionally unexported-method-gated (execute) so the set stays
// closed to this package, mirroring the reference implementation's
// closed Task enum. A non-nil error aborts the run: only DeriveStats
// can produce one today, when metadata lookup fails.
type Task interface {
	execute(r *Runner, ctx *OptimizerContext) error
}

// Runner drives a single-threaded LIFO stack of tasks to completion.
// There is no concurrency and no preemption: each popped task runs to
// completion before the next is popped, and a task may push further
// tasks (including, for EnforceAndCost, a resumed copy of itself).
type Runner struct {
	stack []Task

	// cancelCheck, when set, is polled once after every drained task so
	// a caller-supplied context deadline or cancellation can abort a
	// runaway search between tasks rather than mid-task.
	cancelCheck func() error
}

// NewRunner builds an empty Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// SetCancelCheck installs a function polled once after every task this
// Runner drains; a non-nil return aborts Run the same way a task error
// does. optimizer.Optimize wires this to a check of context.Context.Err
// followed by memo.Memo.CheckGroupCap.
func (r *Runner) SetCancelCheck(check func() error) {
	r.cancelCheck = check
}

// Push schedules a task to run before anything currently on the stack
// (LIFO): tasks pushed later execute earlier.
func (r *Runner) Push(t Task) {
	r.stack = append(r.stack, t)
}

// Run drains the stack, executing tasks until none remain or one
// returns an error, in which case the remaining stack is discarded and
// the error is returned to the caller.
func (r *Runner) Run(ctx *OptimizerContext) error {
	for len(r.stack) > 0 {
		n := len(r.stack) - 1
		t := r.stack[n]
		r.stack = r.stack[:n]
		if err := t.execute(r, ctx); err != nil {
			r.stack = nil
			return err
		}
		if r.cancelCheck != nil {
			if err := r.cancelCheck(); err != nil {
				r.stack = nil
				return err
			}
		}
	}
	return nil
}
