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

	"github.com/spf13/cobra"
)

var facetsCmd = &cobra.Command{
	Use:   "facets [flags] frame_file",
	Short: "List the candidate values for filtering a column.",
	Long: `List the values which the filter popup for a given column would offer, given
the filters applied.  For a column which is already filtered, the values are drawn from
the rows which passed every filter applied before it.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			options = readGridOptions(cmd)
			column  = GetString(cmd, "column")
		)
		//
		if column == "" {
			fmt.Println("missing --column")
			os.Exit(2)
		}
		//
		g, snapshot, err := options.BuildGrid(readFrameFile(args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		} else if _, ok := g.Frame().Column(column); !ok {
			fmt.Printf("unknown column \"%s\"\n", column)
			os.Exit(2)
		}
		//
		for _, value := range snapshot.Candidates(column) {
			fmt.Println(value)
		}
	},
}

func init() {
	rootCmd.AddCommand(facetsCmd)
	addGridFlags(facetsCmd)
	facetsCmd.Flags().String("column", "", "column whose candidate values to list")
}
