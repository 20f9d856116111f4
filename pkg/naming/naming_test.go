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

package naming

import (
	"context"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rena/pkg/config"
	"github.com/walteh/rena/pkg/enumerate"
	"gitlab.com/tozd/go/errors"
)

func fileItem(folder, name string) enumerate.Item {
	return enumerate.Item{Path: filepath.Join(folder, name), Name: name, Kind: config.KindFile}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		width int
		dir   config.PadDirection
		want  string
	}{
		{name: "left", n: 7, width: 4, dir: config.PadLeft, want: "0007"},
		{name: "right", n: 7, width: 4, dir: config.PadRight, want: "7000"},
		{name: "middle_even_split", n: 7, width: 3, dir: config.PadMiddle, want: "070"},
		{name: "middle_odd_zero_goes_last", n: 7, width: 4, dir: config.PadMiddle, want: "0700"},
		{name: "middle_two_digits", n: 12, width: 5, dir: config.PadMiddle, want: "01200"},
		{name: "exact_width", n: 1234, width: 4, dir: config.PadLeft, want: "1234"},
		{name: "never_truncated", n: 123456, width: 3, dir: config.PadRight, want: "123456"},
		{name: "zero_width", n: 0, width: 0, dir: config.PadLeft, want: "0"},
		{name: "ten_wide_zero", n: 0, width: 10, dir: config.PadLeft, want: "0000000000"},
		{name: "name_limit", n: 1, width: config.MaxPaddingWidth, dir: config.PadLeft, want: strings.Repeat("0", config.MaxPaddingWidth-1) + "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pad(tt.n, tt.width, tt.dir)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, len(got), tt.width, "padded counter is never shorter than the width")
		})
	}
}

func TestPadCapsWidth(t *testing.T) {
	for _, dir := range []config.PadDirection{config.PadLeft, config.PadRight, config.PadMiddle} {
		t.Run(dir.String(), func(t *testing.T) {
			var got string
			require.NotPanics(t, func() { got = Pad(1, math.MaxInt, dir) })
			assert.Len(t, got, config.MaxPaddingWidth)
		})
	}
}

func TestSequential(t *testing.T) {
	folder := "/photos"
	s := &Sequential{Folder: folder, Prefix: "item", Origin: 0, Width: 10, Direction: config.PadLeft}

	inputs := []string{"image.jpg", "image3.jpg", "12746uju21.jpg", "17f29a002.jpg"}
	want := []string{"item_0000000000.jpg", "item_0000000001.jpg", "item_0000000002.jpg", "item_0000000003.jpg"}

	for i, name := range inputs {
		got, err := s.Propose(fileItem(folder, name), i)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(folder, want[i]), got)
	}
}

func TestSequentialExtensions(t *testing.T) {
	s := &Sequential{Folder: "/f", Prefix: "p", Origin: 3, Width: 2, Direction: config.PadLeft}

	tests := []struct {
		name string
		item enumerate.Item
		want string
	}{
		{name: "no_extension", item: fileItem("/f", "README"), want: "/f/p_03"},
		{name: "last_dot_wins", item: fileItem("/f", "archive.tar.gz"), want: "/f/p_03.gz"},
		{name: "dotfile_is_all_extension", item: fileItem("/f", ".bashrc"), want: "/f/p_03.bashrc"},
		{name: "directory_keeps_no_extension", item: enumerate.Item{Path: "/f/album.2020", Name: "album.2020", Kind: config.KindDirectory}, want: "/f/p_03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Propose(tt.item, 0)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestSubstitution(t *testing.T) {
	s := &Substitution{
		Pattern:  regexp.MustCompile(`Show\.S(\d+)E(\d+)\.1080p\.mkv`),
		Template: "Show S${1} E${2} (1080p).mkv",
	}

	got, err := s.Propose(fileItem("/tv", "Show.S01E02.1080p.mkv"), 7)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tv", "Show S01 E02 (1080p).mkv"), got)
}

func TestSubstitutionTemplates(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		template string
		input    string
		want     string
		wantErr  bool
	}{
		{name: "dollar_n", pattern: `(\w+)-(\d+)`, template: "$2.txt", input: "a-12.txt", want: "12.txt"},
		{name: "whole_match", pattern: `\d+`, template: "n${0}.txt", input: "abc123def", want: "n123.txt"},
		{name: "first_match_only", pattern: `(\d+)`, template: "${1}", input: "1-2-3", want: "1"},
		{name: "verbatim_without_groups", pattern: `.*`, template: "fixed.txt", input: "whatever", want: "fixed.txt"},
		{name: "escaped_dollar", pattern: `(\d+)`, template: "$$${1}", input: "42", want: "$42"},
		{name: "named_group", pattern: `(?P<ep>\d+)`, template: "ep${ep}", input: "x7", want: "ep7"},
		{name: "separator_rejected", pattern: `(.*)`, template: "../${1}", input: "a", wantErr: true},
		{name: "empty_rejected", pattern: `(x?)`, template: "${1}", input: "a", wantErr: true},
		{name: "dotdot_rejected", pattern: `.*`, template: "..", input: "a", wantErr: true},
		{name: "no_match_rejected", pattern: `^z`, template: "x", input: "a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Substitution{Pattern: regexp.MustCompile(tt.pattern), Template: tt.template}
			got, err := s.Propose(fileItem("/dir", tt.input), 0)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidName))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/dir", filepath.Dir(got), "substitution never changes the parent directory")
			assert.Equal(t, tt.want, filepath.Base(got))
		})
	}
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.Folder = "/x"
	_, ok := New(cfg).(*Sequential)
	assert.True(t, ok, "no template selects the sequential scheme")

	cfg.FilterPattern = regexp.MustCompile(`(.*)`)
	cfg.RenameTemplate = "${1}"
	_, ok = New(cfg).(*Substitution)
	assert.True(t, ok, "a template selects the substitution scheme")
}

func TestPlanConsumesOneCounterPerItem(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	s := &Sequential{Folder: "/f", Prefix: "item", Origin: 5, Width: 3, Direction: config.PadLeft}

	items := []enumerate.Item{fileItem("/f", "a.jpg"), fileItem("/f", "b.png"), fileItem("/f", "c")}
	plans, rejected := Plan(ctx, s, items)
	require.Empty(t, rejected)
	require.Len(t, plans, 3)

	for i, want := range []string{"item_005.jpg", "item_006.png", "item_007"} {
		assert.Equal(t, items[i].Path, plans[i].Original)
		assert.Equal(t, filepath.Join("/f", want), plans[i].Proposed)
	}
}

func TestPlanCollectsRejected(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	s := &Substitution{Pattern: regexp.MustCompile(`^(keep|drop)`), Template: "${1}/x"}

	items := []enumerate.Item{fileItem("/f", "keep.txt")}
	plans, rejected := Plan(ctx, s, items)
	assert.Empty(t, plans)
	require.Len(t, rejected, 1)
	assert.Equal(t, items[0], rejected[0].Item)
	assert.Equal(t, "/f"+string(filepath.Separator)+"keep/x", rejected[0].Proposed, "the rejected destination is kept for the report")
	assert.True(t, errors.Is(rejected[0].Err, ErrInvalidName))
}
