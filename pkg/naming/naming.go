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

// Package naming turns enumerated items into proposed destination paths.
package naming

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/rena/pkg/config"
	"github.com/walteh/rena/pkg/enumerate"
	"github.com/walteh/rena/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidName is returned when a scheme would produce a name that leaves the folder or is empty
var ErrInvalidName = errors.Base("invalid name")

// 🏷️ Scheme proposes a destination for the item at a given position in enumeration order.
// Implementations are pure: the same item and index always yield the same path.
// On error the returned path, when not empty, is the destination that was rejected.
type Scheme interface {
	Propose(item enumerate.Item, index int) (string, error)
}

// 🏭 New picks the scheme selected by cfg
func New(cfg config.Configuration) Scheme {
	if cfg.UsesSubstitution() {
		return &Substitution{
			Pattern:  cfg.FilterPattern,
			Template: cfg.RenameTemplate,
		}
	}
	return &Sequential{
		Folder:    cfg.Folder,
		Prefix:    cfg.Prefix,
		Origin:    cfg.Origin,
		Width:     cfg.PaddingWidth,
		Direction: cfg.PaddingDirection,
	}
}

// 📋 Rejected is an item the scheme could not name
type Rejected struct {
	Item     enumerate.Item
	Proposed string // Rejected destination, empty when none was produced
	Err      error
}

// 🔄 Plan folds the scheme over items in order. Item i is proposed with index i, so every
// item consumes exactly one position whether or not it survives later checks.
func Plan(ctx context.Context, scheme Scheme, items []enumerate.Item) ([]status.Plan, []Rejected) {
	logger := zerolog.Ctx(ctx)

	plans := make([]status.Plan, 0, len(items))
	var rejected []Rejected
	for i, item := range items {
		proposed, err := scheme.Propose(item, i)
		if err != nil {
			logger.Warn().Err(err).Str("path", item.Path).Str("proposed", proposed).Msg("unable to name entry")
			rejected = append(rejected, Rejected{Item: item, Proposed: proposed, Err: err})
			continue
		}
		logger.Trace().Str("from", item.Path).Str("to", proposed).Int("index", i).Msg("proposed name")
		plans = append(plans, status.Plan{Original: item.Path, Proposed: proposed})
	}
	return plans, rejected
}
