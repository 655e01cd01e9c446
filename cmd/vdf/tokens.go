// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/go-vdf/vdf"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  tokensRun,
}

func tokensRun(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	source := string(data)
	tok := vdf.NewTokenizer(source)
	for {
		t, err := tok.Next()
		if err != nil {
			fmt.Fprintln(os.Stderr, report(err))
			os.Exit(1)
		}
		if t == nil {
			return nil
		}
		fmt.Printf("%4d..%-4d %-14s %q\n", t.Span.Start, t.Span.End, t.Token, t.Text(source))
	}
}
