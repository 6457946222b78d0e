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

package syntax

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/x448/float16"
)

// constantBits converts the textual literal of a constant into the raw bit
// pattern of the given type.  Integer literals may be signed, or given in
// hex.  Float literals are either decimal, or the raw encoding in hex (as
// the printer emits them).
func constantBits(typ ir.Type, literal string) (uint64, error) {
	switch typ := typ.(type) {
	case *ir.IntType:
		if strings.HasPrefix(literal, "-") {
			value, err := strconv.ParseInt(literal, 0, int(typ.Bits))
			//
			return uint64(value), err
		}
		//
		return strconv.ParseUint(literal, 0, int(typ.Bits))
	case *ir.FloatType:
		if strings.HasPrefix(literal, "0x") {
			return strconv.ParseUint(literal, 0, 64)
		}
		//
		value, err := strconv.ParseFloat(literal, 64)
		//
		if err != nil {
			return 0, err
		}
		//
		return encodeFloat(typ.Format, value), nil
	}
	//
	return 0, errors.New("constants must have scalar type")
}

// encodeFloat returns the bit pattern of the given value in the given
// format, rounding to nearest even.
func encodeFloat(format ir.FloatFormat, value float64) uint64 {
	switch format {
	case ir.IEEE16:
		return uint64(float16.Fromfloat32(float32(value)).Bits())
	case ir.BFloat16:
		return uint64(bf16FromFloat32(float32(value)))
	case ir.IEEE32:
		return uint64(math.Float32bits(float32(value)))
	case ir.IEEE64:
		return math.Float64bits(value)
	}
	//
	panic("unknown float format")
}

// bf16FromFloat32 truncates a float32 to bfloat16, rounding to nearest even
// and quieting NaNs.
func bf16FromFloat32(value float32) uint16 {
	bits := math.Float32bits(value)
	// Quiet NaNs, which rounding could otherwise turn into infinities
	if value != value {
		return uint16((bits >> 16) | 0x0040)
	}
	// Round to nearest even on the low sixteen bits
	round := (bits >> 16) & 1
	bits += 0x7fff + round
	//
	return uint16(bits >> 16)
}
