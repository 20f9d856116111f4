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
	"path"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

// 📂 DefaultNames are the file names looked up, in order, under the rena config directory
var DefaultNames = []string{"config.yaml", "config.yml", "config.toml", "config.hcl", "config.json"}

// 🔎 Discover returns the first user config file found in the XDG config directories
// ($XDG_CONFIG_HOME/rena, then each of $XDG_CONFIG_DIRS/rena).
func Discover(ctx context.Context) (string, bool) {
	logger := zerolog.Ctx(ctx)
	for _, name := range DefaultNames {
		found, err := xdg.SearchConfigFile(path.Join("rena", name))
		if err != nil {
			continue
		}
		logger.Debug().Str("path", found).Msg("found user config file")
		return found, true
	}
	logger.Debug().Str("config_home", xdg.ConfigHome).Msg("no user config file")
	return "", false
}
