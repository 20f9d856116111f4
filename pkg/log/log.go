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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/rena/pkg/status"
)

// 🎯 Logger renders rename outcomes for a person watching the terminal.
// Every console line is mirrored to the zerolog logger found in the context.
type Logger struct {
	console io.Writer
	verbose bool
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Successful renames are only printed when verbose is set.
func New(console io.Writer, verbose bool) *Logger {
	return &Logger{
		console: console,
		verbose: verbose,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatOutcome formats an outcome for display. ok is false when the outcome prints nothing.
func (l *Logger) formatOutcome(o status.Outcome) (line string, ok bool) {
	switch o.Status {
	case status.StatusDryRun:
		return fmt.Sprintf("%s `%s` -> `%s`",
			color.New(color.FgCyan).Sprint("[DRY RUN]:"),
			o.Plan.Original,
			o.Plan.Proposed), true
	case status.StatusRenamed:
		if !l.verbose {
			return "", false
		}
		return fmt.Sprintf("%s `%s` -> `%s`",
			color.New(color.FgGreen).Sprint("✓"),
			o.Plan.Original,
			o.Plan.Proposed), true
	case status.StatusCollision:
		msg := fmt.Sprintf("File `%s` already exists, unable to rename.", o.Plan.Proposed)
		if o.Err != nil {
			msg = fmt.Sprintf("Unable to check whether `%s` exists, not renaming: %v", o.Plan.Proposed, o.Err)
		}
		return color.New(color.FgYellow).Sprint(msg), true
	case status.StatusFailed:
		return color.New(color.FgRed).Sprintf("Failed to rename `%s` to `%s`: %v",
			o.Plan.Original,
			o.Plan.Proposed,
			o.Err), true
	default:
		return "", false
	}
}

// 📣 Report prints a single outcome. Safe for concurrent use.
func (l *Logger) Report(ctx context.Context, o status.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if line, ok := l.formatOutcome(o); ok {
		fmt.Fprintln(l.console, line)
	}

	// guard and execute already log collisions and failures at their own level
	zerolog.Ctx(ctx).Debug().
		Str("original", o.Plan.Original).
		Str("proposed", o.Plan.Proposed).
		Str("status", o.Status.String()).
		AnErr("error", o.Err).
		Msg("rename outcome")
}

// ⚠️ Warn prints an entry the enumerator skipped
func (l *Logger) Warn(ctx context.Context, w status.Warning) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(w.String()))
	zerolog.Ctx(ctx).Debug().Str("path", w.Path).Str("reason", w.Reason).AnErr("error", w.Err).Msg("entry skipped")
}

// 📝 Header logs a header
func (l *Logger) Header(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	renaText := color.New(color.Bold, color.FgCyan).Sprint("rena")
	fmt.Fprintf(l.console, "\n%s %s\n\n", renaText, color.New(color.Faint).Sprint("• "+msg))
	zerolog.Ctx(ctx).Info().Msg(msg)
}

// 📊 Summary prints the end of run totals
func (l *Logger) Summary(ctx context.Context, report *status.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	renamed := report.Count(status.StatusRenamed)
	dryRun := report.Count(status.StatusDryRun)
	collisions := report.Count(status.StatusCollision)
	failed := report.Count(status.StatusFailed)

	msg := fmt.Sprintf("%d renamed, %d planned, %d skipped, %d failed, %d warnings",
		renamed, dryRun, collisions, failed, len(report.Warnings))

	var printer *pterm.PrefixPrinter
	switch {
	case failed > 0:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	case collisions > 0 || len(report.Warnings) > 0:
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"})
	default:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"})
	}
	printer.WithWriter(l.console).Println(msg)

	zerolog.Ctx(ctx).Info().
		Int("renamed", renamed).
		Int("dry_run", dryRun).
		Int("collisions", collisions).
		Int("failed", failed).
		Int("warnings", len(report.Warnings)).
		Msg("run complete")
}

// 🔍 Fatal prints an error that stopped the run before any rename
func (l *Logger) Fatal(ctx context.Context, description string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(l.console).Println(description)
	if err != nil {
		pterm.Error.WithWriter(l.console).Println(err)
	}
	zerolog.Ctx(ctx).Error().Err(err).Msg(description)
}
