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

// Package execute applies rename plans, in parallel, one task per plan.
package execute

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/walteh/rena/pkg/guard"
	"github.com/walteh/rena/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📣 Reporter receives each outcome as soon as it is known. It is called from worker goroutines.
type Reporter interface {
	Report(ctx context.Context, outcome status.Outcome)
}

// 🔧 Options contains configuration for the executor
type Options struct {
	// Files performs the renames
	Files status.FileManager
	// Guard re-checks each destination right before its rename
	Guard *guard.Guard
	// Jobs bounds concurrent renames; 0 means GOMAXPROCS
	Jobs int
	// DryRun reports plans without renaming
	DryRun bool
	// Reporter is optional
	Reporter Reporter
}

// 🏃 Executor runs plans
type Executor struct {
	files    status.FileManager
	guard    *guard.Guard
	jobs     int
	dryRun   bool
	reporter Reporter
}

// 🏗️ New creates an executor
func New(opts Options) (*Executor, error) {
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Guard == nil {
		return nil, errors.Errorf("guard is required")
	}
	if opts.Jobs < 0 {
		return nil, errors.Errorf("jobs must be non-negative, got %d", opts.Jobs)
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	return &Executor{
		files:    opts.Files,
		guard:    opts.Guard,
		jobs:     jobs,
		dryRun:   opts.DryRun,
		reporter: opts.Reporter,
	}, nil
}

// ⚡ Execute handles every plan and returns one outcome per plan, in plan order.
// A failing rename never stops the others and nothing is rolled back.
func (e *Executor) Execute(ctx context.Context, plans []status.Plan) []status.Outcome {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("plans", len(plans)).Int("jobs", e.jobs).Bool("dry_run", e.dryRun).Msg("executing plans")

	outcomes := make([]status.Outcome, len(plans))

	var g errgroup.Group
	g.SetLimit(e.jobs)
	for i, plan := range plans {
		g.Go(func() error {
			// each task owns outcomes[i] and nothing else
			outcomes[i] = e.run(ctx, plan)
			if e.reporter != nil {
				e.reporter.Report(ctx, outcomes[i])
			}
			return nil
		})
	}
	_ = g.Wait() // tasks never fail, failures are outcomes

	return outcomes
}

// 📄 run handles a single plan
func (e *Executor) run(ctx context.Context, plan status.Plan) status.Outcome {
	if outcome, clear := e.guard.Check(ctx, plan); !clear {
		return outcome
	}

	if e.dryRun {
		return status.Outcome{Plan: plan, Status: status.StatusDryRun}
	}

	if err := e.files.Rename(ctx, plan.Original, plan.Proposed); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("from", plan.Original).Str("to", plan.Proposed).Msg("rename failed")
		return status.Outcome{Plan: plan, Status: status.StatusFailed, Err: err}
	}

	return status.Outcome{Plan: plan, Status: status.StatusRenamed}
}
