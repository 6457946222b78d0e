// Copyright The go-rocdl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package chipset identifies AMD GPU generations from their gfx identifiers.
// An identifier such as "gfx90a" breaks down into a decimal major version
// ("9") and a two digit hexadecimal minor version ("0a").  The major version
// determines which descriptor encoding the hardware expects.
package chipset

import (
	"fmt"
	"strconv"
	"strings"
)

// Chipset represents a single AMD GPU generation, as identified by the major
// and minor components of its gfx identifier.
type Chipset struct {
	// Major generation number (e.g. 9 for CDNA class, 10 for RDNA class).
	Major uint
	// Minor stepping within the generation, in hexadecimal.
	Minor uint
}

// Parse converts a gfx identifier (e.g. "gfx908", "gfx90a", "gfx1030") into a
// Chipset.  The final two characters always give the hexadecimal minor
// version, whilst everything between the "gfx" prefix and those two characters
// gives the decimal major version.
func Parse(name string) (Chipset, error) {
	if !strings.HasPrefix(name, "gfx") {
		return Chipset{}, fmt.Errorf("invalid chipset name \"%s\"", name)
	}
	//
	rest := name[len("gfx"):]
	if len(rest) < 3 {
		return Chipset{}, fmt.Errorf("invalid chipset name \"%s\"", name)
	}
	// Decimal major version
	major, err := strconv.ParseUint(rest[:len(rest)-2], 10, 32)
	if err != nil {
		return Chipset{}, fmt.Errorf("invalid chipset name \"%s\"", name)
	}
	// Hexadecimal minor version
	minor, err := strconv.ParseUint(rest[len(rest)-2:], 16, 32)
	if err != nil {
		return Chipset{}, fmt.Errorf("invalid chipset name \"%s\"", name)
	}
	//
	return Chipset{uint(major), uint(minor)}, nil
}

// String returns the gfx identifier for this chipset.
func (p Chipset) String() string {
	return fmt.Sprintf("gfx%d%02x", p.Major, p.Minor)
}

// SupportsOutOfBoundsSelect determines whether buffer resource descriptors on
// this chipset carry out-of-bounds selection bits.  Only the RDNA generation
// encodes its bounds checking behaviour in the descriptor itself.
func (p Chipset) SupportsOutOfBoundsSelect() bool {
	return p.Major == 10
}
