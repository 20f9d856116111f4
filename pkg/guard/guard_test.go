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

package guard_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rena/pkg/guard"
	"github.com/walteh/rena/pkg/status"
	"github.com/walteh/rena/pkg/status/statusmock"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestFilterOnDisk(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.jpg"), nil, 0o644))

	plans := []status.Plan{
		{Original: filepath.Join(dir, "a.jpg"), Proposed: filepath.Join(dir, "free.jpg")},
		{Original: filepath.Join(dir, "b.jpg"), Proposed: filepath.Join(dir, "taken.jpg")},
		{Original: filepath.Join(dir, "c.jpg"), Proposed: filepath.Join(dir, "other.jpg")},
	}

	kept, dropped := guard.New(status.OSFileManager{}).Filter(ctx, plans)

	assert.Equal(t, []status.Plan{plans[0], plans[2]}, kept, "kept plans keep their order")
	require.Len(t, dropped, 1)
	assert.Equal(t, plans[1], dropped[0].Plan)
	assert.Equal(t, status.StatusCollision, dropped[0].Status)
	assert.NoError(t, dropped[0].Err)
}

func TestFilterSelfRenameCollides(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "item_0.jpg")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	kept, dropped := guard.New(status.OSFileManager{}).Filter(ctx, []status.Plan{{Original: path, Proposed: path}})
	assert.Empty(t, kept)
	require.Len(t, dropped, 1)
	assert.Equal(t, status.StatusCollision, dropped[0].Status)
}

func TestFilterDuplicateDestinations(t *testing.T) {
	ctx := testContext(t)
	fm := statusmock.New(t)
	fm.On("Exists", mock.Anything, "/d/item_1000").Return(false, nil).Once()
	fm.On("Exists", mock.Anything, "/d/item_2000").Return(false, nil).Once()

	plans := []status.Plan{
		{Original: "/d/a", Proposed: "/d/item_1000"},
		{Original: "/d/b", Proposed: "/d/item_2000"},
		{Original: "/d/c", Proposed: "/d/./item_1000"},
	}

	kept, dropped := guard.New(fm).Filter(ctx, plans)
	assert.Equal(t, plans[:2], kept)
	require.Len(t, dropped, 1)
	assert.Equal(t, "/d/c", dropped[0].Plan.Original, "the later claimant loses")
	assert.Equal(t, status.StatusCollision, dropped[0].Status)
}

func TestCheck(t *testing.T) {
	statErr := errors.New("permission denied")

	tests := []struct {
		name      string
		exists    bool
		err       error
		wantClear bool
		wantErr   bool
	}{
		{name: "free", wantClear: true},
		{name: "exists", exists: true},
		{name: "unknown_is_taken", err: statErr, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			plan := status.Plan{Original: "/d/a", Proposed: "/d/b"}

			fm := statusmock.New(t)
			fm.On("Exists", mock.Anything, "/d/b").Return(tt.exists, tt.err).Once()

			outcome, clear := guard.New(fm).Check(ctx, plan)
			assert.Equal(t, tt.wantClear, clear)
			if tt.wantClear {
				return
			}
			assert.Equal(t, plan, outcome.Plan)
			assert.Equal(t, status.StatusCollision, outcome.Status)
			if tt.wantErr {
				assert.ErrorIs(t, outcome.Err, statErr)
			} else {
				assert.NoError(t, outcome.Err)
			}
		})
	}
}
