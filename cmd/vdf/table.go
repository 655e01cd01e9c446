// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-vdf/vdf"
	"github.com/spf13/cobra"
)

var lookupPath string

var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "Parse a file into a tree and print it",
	Args:  cobra.ExactArgs(1),
	RunE:  tableRun,
}

func init() {
	tableCmd.Flags().StringVarP(&lookupPath, "lookup", "l", "", "dot separated path to print instead of the whole tree")
}

func tableRun(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	table, err := vdf.Parse(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, report(err))
		os.Exit(1)
	}
	var entry vdf.Entry = table
	if lookupPath != "" {
		entry = vdf.Lookup(table, lookupPath)
		if entry == nil {
			return fmt.Errorf("path %q not found", lookupPath)
		}
	}
	printEntry(entry, 0)
	return nil
}

func printEntry(e vdf.Entry, depth int) {
	indent := strings.Repeat("\t", depth)
	switch v := e.(type) {
	case vdf.Table:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := v[k]
			if _, ok := vdf.AsString(child); ok {
				s, _ := vdf.AsString(child)
				fmt.Printf("%s%q %q\n", indent, k, s)
				continue
			}
			fmt.Printf("%s%q\n%s{\n", indent, k, indent)
			printEntry(child, depth+1)
			fmt.Printf("%s}\n", indent)
		}
	case vdf.Array:
		for _, child := range v {
			printEntry(child, depth)
		}
	case vdf.Value:
		fmt.Printf("%s%q\n", indent, string(v))
	case vdf.Statement:
		fmt.Printf("%s%s\n", indent, string(v))
	}
}
