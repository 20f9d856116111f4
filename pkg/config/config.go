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
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 📁 Kind selects which directory entries a run acts on
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// ↔️ PadDirection decides where zeros go when a counter is shorter than the padding width
type PadDirection int

const (
	PadLeft PadDirection = iota
	PadRight
	PadMiddle
)

// String returns a string representation of PadDirection
func (d PadDirection) String() string {
	switch d {
	case PadLeft:
		return "left"
	case PadRight:
		return "right"
	case PadMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Set parses s into d, so PadDirection can back a command line flag
func (d *PadDirection) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		*d = PadLeft
	case "right":
		*d = PadRight
	case "middle":
		*d = PadMiddle
	default:
		return errors.Errorf("invalid padding direction %q (want left, right or middle)", s)
	}
	return nil
}

// Type names the flag value type in help output
func (d *PadDirection) Type() string { return "direction" }

// 🔢 Order decides how enumerated entries are sorted before numbering
type Order int

const (
	// OrderName sorts by base name, byte-wise
	OrderName Order = iota
	// OrderNatural sorts by base name, comparing digit runs numerically
	OrderNatural
	// OrderNone keeps whatever order the directory stream yields
	OrderNone
)

// String returns a string representation of Order
func (o Order) String() string {
	switch o {
	case OrderName:
		return "name"
	case OrderNatural:
		return "natural"
	case OrderNone:
		return "none"
	default:
		return "unknown"
	}
}

// Set parses s into o, so Order can back a command line flag
func (o *Order) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "":
		*o = OrderName
	case "natural":
		*o = OrderNatural
	case "none":
		*o = OrderNone
	default:
		return errors.Errorf("invalid order %q (want name, natural or none)", s)
	}
	return nil
}

// Type names the flag value type in help output
func (o *Order) Type() string { return "order" }

// MaxPaddingWidth is the longest base name (NAME_MAX) common filesystems accept
const MaxPaddingWidth = 255

// 📚 Configuration is everything a run needs. It is built once and only read afterwards.
type Configuration struct {
	Folder           string         // Directory whose entries are renamed
	TargetKind       Kind           // Entry kind to act on
	Origin           int            // First sequence number
	Prefix           string         // Sequential name prefix
	PaddingWidth     int            // Minimum counter width
	PaddingDirection PadDirection   // Where padding zeros go
	FilterPattern    *regexp.Regexp // Optional base name filter
	RenameTemplate   string         // Substitution template; empty selects the sequential scheme
	DryRun           bool           // Report without renaming
	Verbose          bool           // Report successful renames too

	Jobs    int      // Parallel renames; 0 means GOMAXPROCS
	Order   Order    // Enumeration order
	Exclude []string // Doublestar globs matched against base names
}

// 🏭 Default returns the configuration used when nothing else is specified
func Default() Configuration {
	return Configuration{
		TargetKind:       KindFile,
		Prefix:           "item",
		PaddingWidth:     10,
		PaddingDirection: PadLeft,
		Order:            OrderName,
	}
}

// 🔄 UsesSubstitution reports whether the pattern substitution scheme is selected
func (c Configuration) UsesSubstitution() bool {
	return c.RenameTemplate != ""
}

// 🔍 Validate checks field constraints. Failures are *ConfigurationError.
func (c Configuration) Validate() error {
	if strings.TrimSpace(c.Folder) == "" {
		return invalid(c.Folder, "folder is required")
	}
	if c.Origin < 0 {
		return invalid(c.Folder, fmt.Sprintf("origin must be non-negative, got %d", c.Origin))
	}
	if c.PaddingWidth < 0 {
		return invalid(c.Folder, fmt.Sprintf("padding must be non-negative, got %d", c.PaddingWidth))
	}
	if c.PaddingWidth > MaxPaddingWidth {
		return invalid(c.Folder, fmt.Sprintf("padding must be at most %d, got %d", MaxPaddingWidth, c.PaddingWidth))
	}
	if c.Jobs < 0 {
		return invalid(c.Folder, fmt.Sprintf("jobs must be non-negative, got %d", c.Jobs))
	}
	if c.UsesSubstitution() && c.FilterPattern == nil {
		return invalid(c.Folder, "a rename template requires a match pattern")
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return invalid(c.Folder, fmt.Sprintf("invalid exclude glob %q", pattern))
		}
	}
	if strings.ContainsRune(c.Prefix, filepath.Separator) {
		return invalid(c.Folder, fmt.Sprintf("prefix %q must not contain a path separator", c.Prefix))
	}
	return nil
}

// 🧩 CompilePattern compiles a match pattern, wrapping failures as *ConfigurationError
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.WithStack(&ConfigurationError{
			Reason: fmt.Sprintf("invalid match pattern %q", pattern),
			Err:    err,
		})
	}
	return re, nil
}

// ❌ ConfigurationError means a run cannot start. Nothing on disk has been touched when it is returned.
type ConfigurationError struct {
	Folder string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	if e.Folder != "" {
		fmt.Fprintf(&b, "folder `%s`: ", e.Folder)
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError builds a stack-carrying *ConfigurationError
func NewConfigurationError(folder, reason string, err error) error {
	return errors.WithStack(&ConfigurationError{Folder: folder, Reason: reason, Err: err})
}

func invalid(folder, reason string) error {
	return NewConfigurationError(folder, reason, nil)
}
