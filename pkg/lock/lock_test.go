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

package lock_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rena/pkg/lock"
)

func setup(t *testing.T) (context.Context, string) {
	t.Helper()
	t.Cleanup(xdg.Reload)
	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	xdg.Reload()

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	return ctx, runtimeDir
}

func TestPath(t *testing.T) {
	_, runtimeDir := setup(t)
	folder := t.TempDir()

	a, err := lock.Path(folder)
	require.NoError(t, err)
	b, err := lock.Path(folder + string(filepath.Separator) + ".")
	require.NoError(t, err)
	other, err := lock.Path(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, a, b, "equivalent spellings share a lock")
	assert.NotEqual(t, a, other)
	assert.Equal(t, filepath.Join(runtimeDir, "rena", "locks"), filepath.Dir(a))
	assert.NotContains(t, a, folder, "the lock never lives inside the folder")
}

func TestAcquireExcludesSecondRun(t *testing.T) {
	ctx, _ := setup(t)
	folder := t.TempDir()

	held, err := lock.Acquire(ctx, folder)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = lock.Acquire(waitCtx, folder)
	require.Error(t, err, "a second run waits while the folder is held")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	held.Release(ctx)
	held.Release(ctx)

	again, err := lock.Acquire(ctx, folder)
	require.NoError(t, err)
	again.Release(ctx)

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	assert.Empty(t, entries, "locking leaves the folder untouched")
}

func TestAcquireWaitsForRelease(t *testing.T) {
	ctx, _ := setup(t)
	folder := t.TempDir()

	held, err := lock.Acquire(ctx, folder)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		held.Release(ctx)
	}()

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	next, err := lock.Acquire(waitCtx, folder)
	require.NoError(t, err)
	next.Release(ctx)
}

func TestAcquireLogsKeepCallerFields(t *testing.T) {
	setup(t)
	folder := t.TempDir()

	buf := &bytes.Buffer{}
	ctx := zerolog.New(buf).Level(zerolog.DebugLevel).With().Str("folder", folder).Logger().WithContext(context.Background())

	held, err := lock.Acquire(ctx, folder)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 60*time.Millisecond)
	defer cancel()
	_, err = lock.Acquire(waitCtx, folder)
	require.Error(t, err)
	held.Release(ctx)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2, "locking and waiting are both logged")
	for _, line := range lines {
		assert.Equal(t, 1, strings.Count(line, `"folder":`), "folder appears once per line: %s", line)
		assert.Contains(t, line, `"lock":`)
	}
}
