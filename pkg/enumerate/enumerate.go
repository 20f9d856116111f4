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

// Package enumerate lists the entries of one folder that a rename run acts on.
package enumerate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/rena/pkg/config"
	"github.com/walteh/rena/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📄 Item is one candidate entry. It is never modified after Enumerate returns it.
type Item struct {
	Path string      // Full path, folder joined with Name
	Name string      // Base name
	Kind config.Kind // File or directory, after resolving symlinks
}

// 📦 Result is the ordered candidate list plus the entries that had to be dropped
type Result struct {
	Items    []Item
	Warnings []status.Warning
}

// 🔍 Enumerate lists cfg.Folder without recursing. It keeps entries of cfg.TargetKind whose
// base name matches cfg.FilterPattern (when set) and none of cfg.Exclude, ordered by cfg.Order.
// Only a missing, non-directory or unlistable folder is an error; anything per entry becomes a warning.
func Enumerate(ctx context.Context, cfg config.Configuration) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	entries, warnings, err := list(ctx, cfg.Folder)
	if err != nil {
		return nil, err
	}

	res := &Result{Warnings: warnings}
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(cfg.Folder, name)

		kind, ok, err := kindOf(path, entry)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("unable to determine entry kind")
			res.Warnings = append(res.Warnings, status.Warning{
				Path:   path,
				Reason: "unable to determine entry kind",
				Err:    err,
			})
			continue
		}
		if !ok || kind != cfg.TargetKind {
			logger.Debug().Str("path", path).Str("want", cfg.TargetKind.String()).Msg("skipping entry of another kind")
			continue
		}

		if excluded(ctx, cfg.Exclude, name) {
			continue
		}

		if cfg.FilterPattern != nil && !cfg.FilterPattern.MatchString(name) {
			logger.Debug().Str("path", path).Str("pattern", cfg.FilterPattern.String()).Msg("skipping entry not matching pattern")
			continue
		}

		res.Items = append(res.Items, Item{Path: path, Name: name, Kind: kind})
	}

	Sort(res.Items, cfg.Order)

	logger.Debug().
		Int("items", len(res.Items)).
		Int("warnings", len(res.Warnings)).
		Str("order", cfg.Order.String()).
		Msg("enumerated folder")

	return res, nil
}

// list opens the folder and returns its raw entries in directory-stream order
func list(ctx context.Context, folder string) ([]fs.DirEntry, []status.Warning, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, config.NewConfigurationError(folder, "folder does not exist", nil)
		}
		return nil, nil, config.NewConfigurationError(folder, "unable to access folder", err)
	}
	if !info.IsDir() {
		return nil, nil, config.NewConfigurationError(folder, "not a folder", nil)
	}

	dir, err := os.Open(folder)
	if err != nil {
		return nil, nil, config.NewConfigurationError(folder, "unable to read directory", err)
	}
	defer dir.Close()

	// (*os.File).ReadDir keeps stream order, unlike os.ReadDir which sorts
	entries, err := dir.ReadDir(-1)
	if err != nil {
		if len(entries) == 0 {
			return nil, nil, config.NewConfigurationError(folder, "unable to read directory", err)
		}
		zerolog.Ctx(ctx).Warn().Err(err).Str("folder", folder).Int("read", len(entries)).Msg("directory listing stopped early")
		return entries, []status.Warning{{Path: folder, Reason: "directory listing stopped early", Err: err}}, nil
	}

	return entries, nil, nil
}

// kindOf classifies an entry. ok is false for entries that are neither files nor directories.
func kindOf(path string, entry fs.DirEntry) (config.Kind, bool, error) {
	mode := entry.Type()
	if mode&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return 0, false, errors.Errorf("resolving symlink: %w", err)
		}
		mode = info.Mode().Type()
	}

	switch {
	case mode.IsDir():
		return config.KindDirectory, true, nil
	case mode.IsRegular():
		return config.KindFile, true, nil
	default:
		return 0, false, nil
	}
}

func excluded(ctx context.Context, globs []string, name string) bool {
	for _, glob := range globs {
		matched, err := doublestar.Match(glob, name)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("glob", glob).Str("name", name).Err(err).Msg("error matching exclude glob")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("name", name).Str("glob", glob).Msg("entry excluded by glob")
			return true
		}
	}
	return false
}

// 🔢 Sort orders items in place
func Sort(items []Item, order config.Order) {
	switch order {
	case config.OrderName:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Name < items[j].Name
		})
	case config.OrderNatural:
		sort.SliceStable(items, func(i, j int) bool {
			return NaturalLess(items[i].Name, items[j].Name)
		})
	case config.OrderNone:
	}
}
