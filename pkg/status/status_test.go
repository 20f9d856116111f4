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

package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusRenamed, "renamed"},
		{StatusDryRun, "dry-run"},
		{StatusCollision, "collision"},
		{StatusFailed, "failed"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestReport(t *testing.T) {
	r := &Report{
		Outcomes: []Outcome{
			{Plan: Plan{Original: "/a/1.jpg", Proposed: "/a/item_0.jpg"}, Status: StatusRenamed},
			{Plan: Plan{Original: "/a/2.jpg", Proposed: "/a/item_1.jpg"}, Status: StatusCollision},
			{Plan: Plan{Original: "/a/3.jpg", Proposed: "/a/item_2.jpg"}, Status: StatusRenamed},
		},
	}

	assert.Equal(t, 2, r.Count(StatusRenamed))
	assert.Equal(t, 1, r.Count(StatusCollision))
	assert.False(t, r.HasFailures())

	o, ok := r.Find("/a/2.jpg")
	require.True(t, ok)
	assert.Equal(t, StatusCollision, o.Status)

	_, ok = r.Find("/a/404.jpg")
	assert.False(t, ok)

	r.Outcomes = append(r.Outcomes, Outcome{Status: StatusFailed, Err: errors.New("boom")})
	assert.True(t, r.HasFailures())
}

func TestWarningString(t *testing.T) {
	w := Warning{Path: "/a/x", Reason: "unable to determine entry kind", Err: errors.New("permission denied")}
	assert.Equal(t, "/a/x: unable to determine entry kind: permission denied", w.String())

	w.Err = nil
	assert.Equal(t, "/a/x: unable to determine entry kind", w.String())
}

func TestPlanString(t *testing.T) {
	assert.Equal(t, "/a/b -> /a/c", Plan{Original: "/a/b", Proposed: "/a/c"}.String())
}

func TestOSFileManager(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	dir := t.TempDir()
	fm := OSFileManager{}

	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(src, []byte("a"), 0o644))

	exists, err := fm.Exists(ctx, src)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = fm.Exists(ctx, dst)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fm.Rename(ctx, src, dst))
	_, err = os.Stat(dst)
	require.NoError(t, err)

	err = fm.Rename(ctx, src, dst)
	require.Error(t, err, "renaming a missing source should fail")
	assert.Contains(t, err.Error(), "renaming")
}

func TestOSFileManagerDanglingSymlink(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "missing"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	exists, err := OSFileManager{}.Exists(ctx, link)
	require.NoError(t, err)
	assert.True(t, exists, "a dangling symlink still occupies the name")
}
