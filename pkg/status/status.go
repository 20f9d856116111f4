// Copyright 2025 walteh LLC
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

package status

import (
	"fmt"
)

// 📋 Plan is one scheduled rename. It is never mutated once built.
type Plan struct {
	Original string // Path of the entry as enumerated
	Proposed string // Path the entry should end up at
}

// String returns "original -> proposed"
func (p Plan) String() string {
	return fmt.Sprintf("%s -> %s", p.Original, p.Proposed)
}

// 📊 Status is the result of handling one plan
type Status int

const (
	StatusRenamed   Status = iota // Entry was renamed
	StatusDryRun                  // Rename was only reported
	StatusCollision               // Destination already existed
	StatusFailed                  // Rename was attempted or rejected with an error
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusRenamed:
		return "renamed"
	case StatusDryRun:
		return "dry-run"
	case StatusCollision:
		return "collision"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🎯 Outcome pairs a plan with what happened to it
type Outcome struct {
	Plan   Plan
	Status Status
	Err    error // Set for StatusFailed, and for StatusCollision when existence could not be checked
}

// ⚠️ Warning is an entry the enumerator had to drop
type Warning struct {
	Path   string
	Reason string
	Err    error
}

// String returns a readable description of the warning
func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s: %v", w.Path, w.Reason, w.Err)
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Reason)
}

// 📦 Report aggregates every outcome and warning of one run
type Report struct {
	RunID    string // Unique per run, also attached to every log line of the run
	Outcomes []Outcome
	Warnings []Warning
}

// Count returns how many outcomes have status s
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// HasFailures reports whether any rename failed
func (r *Report) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

// Find returns the outcome for an original path
func (r *Report) Find(original string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Plan.Original == original {
			return o, true
		}
	}
	return Outcome{}, false
}
