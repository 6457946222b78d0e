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
package cmd

import (
	"fmt"
	"os"

	"github.com/rocforge/go-rocdl/pkg/chipset"
	"github.com/rocforge/go-rocdl/pkg/ir/gpu"
	"github.com/rocforge/go-rocdl/pkg/syntax"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] kernel_file",
	Short: "lower buffer operations into hardware intrinsics.",
	Long: `Lower the buffer operations of a given kernel module into the raw hardware
	 intrinsics of a target chipset, rewriting every memref access into a
	 resource descriptor and the byte offsets the hardware expects.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		chip, err := chipset.Parse(GetString(cmd, "chipset"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Parse kernel module
		module, srcmap := ReadKernelFile(args[0])
		// Lower buffer operations
		lowering := gpu.NewLowering(chip)
		lowering.AddSourceMap(srcmap)
		//
		if errs := lowering.LowerModule(module); len(errs) != 0 {
			printErrors(errs)
			os.Exit(2)
		}
		// Print lowered module
		fmt.Print(syntax.Print(module))
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(lowerCmd)
	lowerCmd.Flags().StringP("chipset", "c", "", "specify target chipset (e.g. gfx90a).")
	lowerCmd.MarkFlagRequired("chipset")
}
