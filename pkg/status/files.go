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
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager is the filesystem surface the guard and executor need
type FileManager interface {
	// Exists reports whether anything, including a dangling symlink, is at path
	Exists(ctx context.Context, path string) (bool, error)
	// Rename moves from to to within one directory
	Rename(ctx context.Context, from, to string) error
}

// 🔧 OSFileManager implements FileManager on the real filesystem
type OSFileManager struct{}

var _ FileManager = OSFileManager{}

func (OSFileManager) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking existence of %s: %w", path, err)
}

func (OSFileManager) Rename(ctx context.Context, from, to string) error {
	zerolog.Ctx(ctx).Trace().Str("from", from).Str("to", to).Msg("rename")
	if err := os.Rename(from, to); err != nil {
		return errors.Errorf("renaming: %w", err)
	}
	return nil
}
