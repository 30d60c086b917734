// Copyright 2022 The xrocket Authors
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

package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version represents xrocket server version.
var Version = NewVersion(0, 3, 0)

// SemanticVersion represents a major.minor.patch version value.
type SemanticVersion struct {
	Major uint
	Minor uint
	Patch uint
}

// NewVersion returns a new SemanticVersion instance.
func NewVersion(major, minor, patch uint) *SemanticVersion {
	return &SemanticVersion{Major: major, Minor: minor, Patch: patch}
}

// Parse parses a "v1.2.3" or "1.2.3" formatted version string.
func Parse(s string) (*SemanticVersion, error) {
	parts := strings.Split(strings.TrimPrefix(s, "v"), ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("version: malformed version string: %s", s)
	}
	var nums [3]uint
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("version: malformed version string: %s", s)
		}
		nums[i] = uint(n)
	}
	return NewVersion(nums[0], nums[1], nums[2]), nil
}

// String returns version string representation.
func (v *SemanticVersion) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Number returns version representation without the leading 'v'.
func (v *SemanticVersion) Number() string {
	return strings.TrimPrefix(v.String(), "v")
}
