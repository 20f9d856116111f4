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

// Package guard keeps renames from overwriting existing entries.
//
// Destinations are checked twice: once while planning and once right before each
// rename. The second check narrows the window in which another process (or a sibling
// rename of the same batch) can create the destination, but does not close it:
// nothing stops a file from appearing between the check and the rename itself.
package guard

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/rena/pkg/status"
)

// 🛡️ Guard checks proposed destinations against the filesystem
type Guard struct {
	files status.FileManager
}

// 🏭 New creates a guard backed by files
func New(files status.FileManager) *Guard {
	return &Guard{files: files}
}

// 🔍 Filter is the plan-time check. A plan is dropped when its destination exists or an
// earlier plan of the same batch already claims it; dropped plans come back as collisions.
// Kept plans stay in their original order.
func (g *Guard) Filter(ctx context.Context, plans []status.Plan) ([]status.Plan, []status.Outcome) {
	kept := make([]status.Plan, 0, len(plans))
	var dropped []status.Outcome

	claimed := make(map[string]string, len(plans))
	for _, plan := range plans {
		key := filepath.Clean(plan.Proposed)
		if owner, ok := claimed[key]; ok {
			zerolog.Ctx(ctx).Warn().
				Str("destination", plan.Proposed).
				Str("claimed_by", owner).
				Str("original", plan.Original).
				Msg("destination already claimed by another rename in this batch")
			dropped = append(dropped, status.Outcome{Plan: plan, Status: status.StatusCollision})
			continue
		}

		if outcome, clear := g.Check(ctx, plan); !clear {
			dropped = append(dropped, outcome)
			continue
		}

		claimed[key] = plan.Original
		kept = append(kept, plan)
	}

	return kept, dropped
}

// ✅ Check is the execute-time check for a single plan. It returns clear=true when the
// destination is free; otherwise the collision outcome to report.
func (g *Guard) Check(ctx context.Context, plan status.Plan) (status.Outcome, bool) {
	exists, err := g.files.Exists(ctx, plan.Proposed)
	if err != nil {
		// an unknown destination is treated as taken
		zerolog.Ctx(ctx).Warn().Err(err).Str("destination", plan.Proposed).Msg("unable to check destination, not renaming")
		return status.Outcome{Plan: plan, Status: status.StatusCollision, Err: err}, false
	}
	if exists {
		zerolog.Ctx(ctx).Warn().Str("destination", plan.Proposed).Str("original", plan.Original).Msg("destination already exists, unable to rename")
		return status.Outcome{Plan: plan, Status: status.StatusCollision}, false
	}
	return status.Outcome{}, true
}
