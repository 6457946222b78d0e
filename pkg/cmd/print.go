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

	"github.com/rocforge/go-rocdl/pkg/syntax"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] kernel_file",
	Short: "parse a kernel module and print it back.",
	Long: `Parse a given kernel module, check its buffer operations are well formed and
	 print the module back in canonical form.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// Parse kernel module
		module, _ := ReadKernelFile(args[0])
		// Print canonical form
		fmt.Print(syntax.Print(module))
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}
