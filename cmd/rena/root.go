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

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rena/pkg/config"
	"github.com/walteh/rena/pkg/log"
	"github.com/walteh/rena/pkg/rename"
	"gitlab.com/tozd/go/errors"
)

// errReported is returned once the problem has already been shown to the user
var errReported = errors.Base("reported")

// rootOpts holds the raw flag values
type rootOpts struct {
	configFile string
	debug      bool

	dir         bool
	verbose     bool
	origin      int
	prefix      string
	padding     int
	direction   config.PadDirection
	match       string
	matchRename string
	dryRun      bool
	jobs        int
	order       config.Order
	exclude     []string
}

// newRootCmd creates the rena command
func newRootCmd() *cobra.Command {
	defaults := config.Default()
	o := &rootOpts{
		direction: defaults.PaddingDirection,
		order:     defaults.Order,
	}

	cmd := &cobra.Command{
		Use:   "rena [FOLDER]",
		Short: "Batch rename the files or directories of a folder",
		Long: `rena renames every file (or, with --dir, every directory) directly inside FOLDER.

By default entries are numbered in name order: PREFIX_0000000000.ext, PREFIX_0000000001.ext, ...
With --match and --match-rename, each matching name is rewritten from the regex capture
groups instead ($1, ${1}, ${name}).

An entry is never renamed onto an existing path. Use --dry-run to preview.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context(), o.debug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.configuration(cmd, args)
			console := log.New(cmd.OutOrStdout(), cfg.Verbose)
			if err != nil {
				console.Fatal(ctx, "Invalid configuration", err)
				return errReported
			}

			return runRename(log.NewContext(ctx, console), cfg)
		},
	}

	addRootFlags(cmd, o)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds the rename flags to the root command
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	defaults := config.Default()

	cmd.PersistentFlags().StringVarP(&o.configFile, "config", "c", "", "config file path (.yaml, .yml, .toml, .json or .hcl); defaults to the user config file")
	cmd.PersistentFlags().BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")

	flags := cmd.Flags()
	flags.BoolVar(&o.dir, "dir", false, "rename directories instead of files")
	flags.BoolVar(&o.verbose, "verbose", false, "print every successful rename")
	flags.IntVarP(&o.origin, "origin", "n", defaults.Origin, "first sequence number")
	flags.StringVarP(&o.prefix, "prefix", "p", defaults.Prefix, "name prefix")
	flags.IntVar(&o.padding, "padding", defaults.PaddingWidth, "minimum width of the sequence number")
	flags.Var(&o.direction, "padding-direction", "where padding zeros go: left, right or middle")
	flags.StringVarP(&o.match, "match", "m", "", "only rename entries whose name matches this regex")
	flags.StringVar(&o.matchRename, "match-rename", "", "rename matches to this template (requires --match)")
	flags.BoolVar(&o.dryRun, "dry-run", false, "print the renames without performing them")
	flags.IntVarP(&o.jobs, "jobs", "j", defaults.Jobs, "parallel renames (0 uses every CPU)")
	flags.Var(&o.order, "order", "numbering order: name, natural or none")
	flags.StringArrayVarP(&o.exclude, "exclude", "x", nil, "skip names matching this glob (repeatable)")
}

// configuration builds the run configuration. Values from the config file (--config, or
// else the user config file if one exists) are applied first and only flags set on the
// command line override them.
func (o *rootOpts) configuration(cmd *cobra.Command, args []string) (config.Configuration, error) {
	cfg := config.Default()

	configFile := o.configFile
	if configFile == "" {
		configFile, _ = config.Discover(cmd.Context())
	}
	if configFile != "" {
		f, err := config.Load(cmd.Context(), configFile)
		if err != nil {
			return cfg, errors.Errorf("loading config: %w", err)
		}
		if err := f.Apply(&cfg); err != nil {
			return cfg, errors.Errorf("applying config file: %w", err)
		}
	}

	if len(args) > 0 {
		cfg.Folder = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.TargetKind = config.KindFile
		if o.dir {
			cfg.TargetKind = config.KindDirectory
		}
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if flags.Changed("origin") {
		cfg.Origin = o.origin
	}
	if flags.Changed("prefix") {
		cfg.Prefix = o.prefix
	}
	if flags.Changed("padding") {
		cfg.PaddingWidth = o.padding
	}
	if flags.Changed("padding-direction") {
		cfg.PaddingDirection = o.direction
	}
	if flags.Changed("match") {
		re, err := config.CompilePattern(o.match)
		if err != nil {
			return cfg, errors.Errorf("parsing --match: %w", err)
		}
		cfg.FilterPattern = re
	}
	if flags.Changed("match-rename") {
		cfg.RenameTemplate = o.matchRename
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if flags.Changed("jobs") {
		cfg.Jobs = o.jobs
	}
	if flags.Changed("order") {
		cfg.Order = o.order
	}
	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, o.exclude...)
	}

	if cfg.Folder == "" {
		return cfg, errors.Errorf("a FOLDER argument is required")
	}

	return cfg, nil
}

// runRename runs one batch and prints its outcome
func runRename(ctx context.Context, cfg config.Configuration) error {
	console := log.FromContext(ctx)

	verb := "renaming"
	if cfg.DryRun {
		verb = "planning"
	}
	console.Header(ctx, fmt.Sprintf("%s %s entries in %s", verb, cfg.TargetKind, cfg.Folder))

	report, err := rename.Run(ctx, cfg, rename.WithReporter(console))
	if err != nil {
		console.Fatal(ctx, "Unable to start renaming", err)
		return errReported
	}

	console.Summary(ctx, report)

	if report.HasFailures() {
		return errReported
	}
	return nil
}

// setupLogging sets the diagnostic log level based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.Ctx(ctx).Level(level)
	return logger.WithContext(ctx)
}
