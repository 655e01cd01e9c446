// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This binary provides inspection tools for KeyValues files: a token
// dumper, a tree printer with path lookup, and a recursive directory
// checker.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vdf",
	Short: "vdf inspects Valve KeyValues files",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(dirCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
