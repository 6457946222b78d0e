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

package gpu

import (
	"github.com/rocforge/go-rocdl/pkg/ir"
)

// LDSBarrier synchronises the workgroup, ensuring all outstanding writes to
// local data share memory are visible before any thread proceeds.
type LDSBarrier struct{}

// NewLDSBarrier constructs a workgroup barrier.
func NewLDSBarrier() *LDSBarrier {
	return &LDSBarrier{}
}

// Mnemonic returns the textual name of this operation.
func (p *LDSBarrier) Mnemonic() string {
	return "amdgpu.lds.barrier"
}

// Operands implementation for the Instruction interface.
func (p *LDSBarrier) Operands() []*ir.Value {
	return nil
}
