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
	"regexp"
	"strings"

	"github.com/walteh/rena/pkg/enumerate"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Substitution expands Template with the capture groups of the first Pattern match
// against the base name. $N and ${N} refer to group N, $0 to the whole match, $$ is a dollar sign.
// The result replaces the base name; the parent directory never changes.
type Substitution struct {
	Pattern  *regexp.Regexp
	Template string
}

// Propose implements Scheme
func (s *Substitution) Propose(item enumerate.Item, index int) (string, error) {
	match := s.Pattern.FindStringSubmatchIndex(item.Name)
	if match == nil {
		return "", errors.Errorf("%w: %q does not match %s", ErrInvalidName, item.Name, s.Pattern)
	}

	name := string(s.Pattern.ExpandString(nil, s.Template, item.Name, match))
	if err := checkBaseName(name); err != nil {
		// unjoined, so ".." and separators show as expanded
		return filepath.Dir(item.Path) + string(filepath.Separator) + name,
			errors.Errorf("expanding %q for %q: %w", s.Template, item.Name, err)
	}

	return filepath.Join(filepath.Dir(item.Path), name), nil
}

func checkBaseName(name string) error {
	switch {
	case name == "":
		return errors.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return errors.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return errors.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
