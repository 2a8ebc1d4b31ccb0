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

import "gopkg.in/src-d/go-errors.v1"

// ErrNoPlanFound is returned by ExtractBestPlan when no physical plan
// was ever recorded for the requested (group, required-properties) pair.
// This always indicates the search never reached a plan satisfying that
// requirement, not a transient condition.
var ErrNoPlanFound = errors.NewKind("memo: no plan found for group %v under required properties %v")

// ErrTooManyGroups is reported by CheckGroupCap once a Memo has allocated
// past the limit set by SetMaxGroups.
var ErrTooManyGroups = errors.NewKind("memo: exceeded the configured cap of %d groups")
