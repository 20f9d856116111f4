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

package rename

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/rena/pkg/config"
	"github.com/walteh/rena/pkg/enumerate"
	"github.com/walteh/rena/pkg/execute"
	"github.com/walteh/rena/pkg/guard"
	"github.com/walteh/rena/pkg/lock"
	"github.com/walteh/rena/pkg/naming"
	"github.com/walteh/rena/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ⚠️ WarningReporter is implemented by reporters that also want enumeration warnings
type WarningReporter interface {
	Warn(ctx context.Context, w status.Warning)
}

// 🔧 Option customizes a run
type Option func(*runner)

// WithFileManager replaces the filesystem used for existence checks and renames
func WithFileManager(files status.FileManager) Option {
	return func(r *runner) {
		r.files = files
	}
}

// WithReporter streams every outcome (and, for a WarningReporter, every warning) as it happens
func WithReporter(rep execute.Reporter) Option {
	return func(r *runner) {
		r.reporter = rep
	}
}

type runner struct {
	files    status.FileManager
	reporter execute.Reporter
}

// 🚀 Run renames the entries of cfg.Folder.
//
// Runs on the same folder are serialised through a lock file. The only error it returns is
// a *config.ConfigurationError, for an invalid configuration or a folder that cannot be
// listed, or the context error when ctx ends while waiting for that lock; nothing has been
// renamed in either case. Everything else (skipped entries, collisions and failed renames)
// is part of the report, whose outcomes follow enumeration order.
func Run(ctx context.Context, cfg config.Configuration, opts ...Option) (*status.Report, error) {
	r := &runner{files: status.OSFileManager{}}
	for _, opt := range opts {
		opt(r)
	}

	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run", runID).Str("folder", cfg.Folder).Logger()
	ctx = logger.WithContext(ctx)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating configuration: %w", err)
	}

	lk, err := lock.Acquire(ctx, cfg.Folder)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Errorf("waiting for folder lock: %w", err)
		}
		logger.Warn().Err(err).Msg("unable to lock folder, continuing without it")
	}
	defer lk.Release(ctx)

	logger.Info().
		Str("kind", cfg.TargetKind.String()).
		Bool("dry_run", cfg.DryRun).
		Bool("substitution", cfg.UsesSubstitution()).
		Msg("starting rename")

	res, err := enumerate.Enumerate(ctx, cfg)
	if err != nil {
		return nil, errors.Errorf("enumerating folder: %w", err)
	}
	if wr, ok := r.reporter.(WarningReporter); ok {
		for _, w := range res.Warnings {
			wr.Warn(ctx, w)
		}
	}

	byOriginal := make(map[string]status.Outcome, len(res.Items))
	record := func(o status.Outcome, report bool) {
		byOriginal[o.Plan.Original] = o
		if report && r.reporter != nil {
			r.reporter.Report(ctx, o)
		}
	}

	plans, rejected := naming.Plan(ctx, naming.New(cfg), res.Items)
	for _, rej := range rejected {
		record(status.Outcome{
			Plan:   status.Plan{Original: rej.Item.Path, Proposed: rej.Proposed},
			Status: status.StatusFailed,
			Err:    rej.Err,
		}, true)
	}

	g := guard.New(r.files)
	plans, dropped := g.Filter(ctx, plans)
	for _, o := range dropped {
		record(o, true)
	}

	ex, err := execute.New(execute.Options{
		Files:    r.files,
		Guard:    g,
		Jobs:     cfg.Jobs,
		DryRun:   cfg.DryRun,
		Reporter: r.reporter,
	})
	if err != nil {
		return nil, errors.Errorf("creating executor: %w", err)
	}
	for _, o := range ex.Execute(ctx, plans) {
		record(o, false)
	}

	report := &status.Report{
		RunID:    runID,
		Outcomes: make([]status.Outcome, 0, len(byOriginal)),
		Warnings: res.Warnings,
	}
	for _, item := range res.Items {
		if o, ok := byOriginal[item.Path]; ok {
			report.Outcomes = append(report.Outcomes, o)
		}
	}

	logger.Info().
		Int("renamed", report.Count(status.StatusRenamed)).
		Int("dry_run", report.Count(status.StatusDryRun)).
		Int("collisions", report.Count(status.StatusCollision)).
		Int("failed", report.Count(status.StatusFailed)).
		Int("warnings", len(report.Warnings)).
		Msg("rename finished")

	return report, nil
}
