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

// Package statusmock provides a testify mock of status.FileManager.
package statusmock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/walteh/rena/pkg/status"
)

// 🔧 FileManager is a mock implementation of status.FileManager
type FileManager struct {
	mock.Mock
}

var _ status.FileManager = (*FileManager)(nil)

// 🏭 New creates a mock whose expectations are asserted when the test ends
func New(t *testing.T) *FileManager {
	m := &FileManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FileManager) Exists(ctx context.Context, path string) (bool, error) {
	result := m.Called(ctx, path)
	return result.Bool(0), result.Error(1)
}

func (m *FileManager) Rename(ctx context.Context, from, to string) error {
	result := m.Called(ctx, from, to)
	return result.Error(0)
}
