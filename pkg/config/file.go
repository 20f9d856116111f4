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

package config

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config file parsers
type Parser interface {
	// 📝 Parse parses the file from bytes
	Parse(ctx context.Context, data []byte) (*File, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📄 File holds defaults read from a config file. Nil fields were not set.
type File struct {
	Folder           *string  `json:"folder,omitempty" yaml:"folder,omitempty" toml:"folder,omitempty"`
	Dir              *bool    `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty"`
	Origin           *int     `json:"origin,omitempty" yaml:"origin,omitempty" toml:"origin,omitempty"`
	Prefix           *string  `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Padding          *int     `json:"padding,omitempty" yaml:"padding,omitempty" toml:"padding,omitempty"`
	PaddingDirection *string  `json:"padding_direction,omitempty" yaml:"padding_direction,omitempty" toml:"padding_direction,omitempty"`
	Match            *string  `json:"match,omitempty" yaml:"match,omitempty" toml:"match,omitempty"`
	MatchRename      *string  `json:"match_rename,omitempty" yaml:"match_rename,omitempty" toml:"match_rename,omitempty"`
	DryRun           *bool    `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run,omitempty"`
	Verbose          *bool    `json:"verbose,omitempty" yaml:"verbose,omitempty" toml:"verbose,omitempty"`
	Jobs             *int     `json:"jobs,omitempty" yaml:"jobs,omitempty" toml:"jobs,omitempty"`
	Order            *string  `json:"order,omitempty" yaml:"order,omitempty" toml:"order,omitempty"`
	Exclude          []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`
}

// 🎯 Load reads a config file, picking the parser by file name
func Load(ctx context.Context, path string) (*File, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	f, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return f, nil
}

// 🔧 Apply overlays every field set in f onto cfg
func (f *File) Apply(cfg *Configuration) error {
	if f == nil {
		return nil
	}
	if f.Folder != nil {
		cfg.Folder = *f.Folder
	}
	if f.Dir != nil {
		cfg.TargetKind = KindFile
		if *f.Dir {
			cfg.TargetKind = KindDirectory
		}
	}
	if f.Origin != nil {
		cfg.Origin = *f.Origin
	}
	if f.Prefix != nil {
		cfg.Prefix = *f.Prefix
	}
	if f.Padding != nil {
		cfg.PaddingWidth = *f.Padding
	}
	if f.PaddingDirection != nil {
		if err := cfg.PaddingDirection.Set(*f.PaddingDirection); err != nil {
			return errors.Errorf("padding_direction: %w", err)
		}
	}
	if f.Match != nil {
		re, err := CompilePattern(*f.Match)
		if err != nil {
			return errors.Errorf("match: %w", err)
		}
		cfg.FilterPattern = re
	}
	if f.MatchRename != nil {
		cfg.RenameTemplate = *f.MatchRename
	}
	if f.DryRun != nil {
		cfg.DryRun = *f.DryRun
	}
	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
	if f.Jobs != nil {
		cfg.Jobs = *f.Jobs
	}
	if f.Order != nil {
		if err := cfg.Order.Set(*f.Order); err != nil {
			return errors.Errorf("order: %w", err)
		}
	}
	if len(f.Exclude) > 0 {
		cfg.Exclude = append([]string(nil), f.Exclude...)
	}
	return nil
}
