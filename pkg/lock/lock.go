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

// Package lock serialises rena runs that target the same folder.
//
// The lock file lives in the XDG runtime directory, never inside the folder being
// renamed, so it cannot show up in an enumeration. Only rena processes honour it.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const retryDelay = 25 * time.Millisecond

// 🔒 Lock is a held folder lock
type Lock struct {
	fl *flock.Flock
}

// 📍 Path returns the lock file used for folder
func Path(folder string) (string, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", errors.Errorf("resolving folder: %w", err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	p, err := xdg.RuntimeFile(path.Join("rena", "locks", hex.EncodeToString(sum[:16])+".lock"))
	if err != nil {
		return "", errors.Errorf("locating lock file: %w", err)
	}
	return p, nil
}

// ⏳ Acquire blocks until the folder lock is held or ctx is done
func Acquire(ctx context.Context, folder string) (*Lock, error) {
	p, err := Path(folder)
	if err != nil {
		return nil, err
	}

	fl := flock.New(p)
	logger := zerolog.Ctx(ctx).With().Str("lock", p).Logger()

	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Errorf("locking folder: %w", err)
	}
	if !ok {
		logger.Info().Msg("another run holds this folder, waiting")
		ok, err = fl.TryLockContext(ctx, retryDelay)
		if err != nil {
			return nil, errors.Errorf("waiting for folder lock: %w", err)
		}
		if !ok {
			return nil, errors.Errorf("folder lock not acquired")
		}
	}

	logger.Debug().Msg("folder locked")
	return &Lock{fl: fl}, nil
}

// 🔓 Release gives the lock back. Safe to call more than once.
func (l *Lock) Release(ctx context.Context) {
	if l == nil || !l.fl.Locked() {
		return
	}
	if err := l.fl.Unlock(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("lock", l.fl.Path()).Msg("releasing folder lock")
	}
}
