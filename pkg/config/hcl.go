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
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the file from HCL. Attributes may reference env.NAME.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "rena.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	attrs, diags := hclFile.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
	}

	// stable order keeps error messages deterministic
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var f File
	for _, name := range names {
		attr := attrs[name]
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, errors.Errorf("evaluating %s: %s", name, diags.Error())
		}

		var target interface{}
		switch name {
		case "folder":
			f.Folder = new(string)
			target = f.Folder
		case "dir":
			f.Dir = new(bool)
			target = f.Dir
		case "origin":
			f.Origin = new(int)
			target = f.Origin
		case "prefix":
			f.Prefix = new(string)
			target = f.Prefix
		case "padding":
			f.Padding = new(int)
			target = f.Padding
		case "padding_direction":
			f.PaddingDirection = new(string)
			target = f.PaddingDirection
		case "match":
			f.Match = new(string)
			target = f.Match
		case "match_rename":
			f.MatchRename = new(string)
			target = f.MatchRename
		case "dry_run":
			f.DryRun = new(bool)
			target = f.DryRun
		case "verbose":
			f.Verbose = new(bool)
			target = f.Verbose
		case "jobs":
			f.Jobs = new(int)
			target = f.Jobs
		case "order":
			f.Order = new(string)
			target = f.Order
		case "exclude":
			list, err := convert.Convert(val, cty.List(cty.String))
			if err != nil {
				return nil, errors.Errorf("decoding exclude: %w", err)
			}
			val = list
			target = &f.Exclude
		default:
			return nil, errors.Errorf("decoding HCL: unsupported attribute %q at %s", name, attr.NameRange)
		}

		if err := gocty.FromCtyValue(val, target); err != nil {
			return nil, errors.Errorf("decoding %s: %w", name, err)
		}
	}

	return &f, nil
}

// environment exposes the process environment as the env object
func environment() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
