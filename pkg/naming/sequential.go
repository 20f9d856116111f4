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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/walteh/rena/pkg/config"
	"github.com/walteh/rena/pkg/enumerate"
)

// 🔢 Sequential names items {Folder}/{Prefix}_{counter}{ext}, counting up from Origin
type Sequential struct {
	Folder    string
	Prefix    string
	Origin    int
	Width     int
	Direction config.PadDirection
}

// Propose implements Scheme
func (s *Sequential) Propose(item enumerate.Item, index int) (string, error) {
	counter := Pad(s.Origin+index, s.Width, s.Direction)

	ext := ""
	if item.Kind == config.KindFile {
		ext = filepath.Ext(item.Name)
	}

	return filepath.Join(s.Folder, s.Prefix+"_"+counter+ext), nil
}

// ↔️ Pad renders n in decimal and adds zeros until it is width long.
// Left puts them in front, Right after, Middle splits them with the odd zero at the end.
// Numbers already width long or longer are returned unchanged. Width is capped at
// config.MaxPaddingWidth.
func Pad(n, width int, dir config.PadDirection) string {
	width = min(width, config.MaxPaddingWidth)
	digits := strconv.Itoa(n)
	missing := width - len(digits)
	if missing <= 0 {
		return digits
	}

	switch dir {
	case config.PadRight:
		return digits + strings.Repeat("0", missing)
	case config.PadMiddle:
		front := missing / 2
		return strings.Repeat("0", front) + digits + strings.Repeat("0", missing-front)
	default:
		return strings.Repeat("0", missing) + digits
	}
}
