// Copyright Consensys Software Inc.
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

	"github.com/consensys/go-gridrows/pkg/cmd/browse"
	"github.com/consensys/go-gridrows/pkg/util/termio"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [flags] frame_file",
	Short: "Browse the rows of a frame interactively.",
	Long: `Browse the rows of a frame using an interactive (terminal-based) environment,
where columns can be sorted and filtered, and rows paged through.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var options = readGridOptions(cmd)
		// Viewport is determined by the browser
		options.RowsPerPage = 0
		options.Paginate = true
		//
		g, _, err := options.BuildGrid(readFrameFile(args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		term, err := termio.NewTerminal()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		browser := browse.NewBrowser(term, g)
		//
		if errs := browser.Start(); len(errs) > 0 {
			for _, err := range errs {
				fmt.Println(err)
			}
			//
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	addGridFlags(browseCmd)
}
