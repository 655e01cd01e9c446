// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-vdf/vdf"
	"github.com/spf13/cobra"
)

var dirExtensions []string

var dirCmd = &cobra.Command{
	Use:   "dir <root>",
	Short: "Parse every KeyValues file under a directory and report failures",
	Args:  cobra.ExactArgs(1),
	RunE:  dirRun,
}

func init() {
	dirCmd.Flags().StringSliceVarP(&dirExtensions, "ext", "e", []string{".vdf", ".vmt", ".vmf", ".acf"}, "file extensions to check")
}

func dirRun(cmd *cobra.Command, args []string) error {
	checked, failed := 0, 0
	err := filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExtension(path) {
			return nil
		}
		checked++
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := vdf.Parse(data); err != nil {
			failed++
			fmt.Printf("%s:\n%s\n", path, report(err))
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("checked %d files, %d failed\n", checked, failed)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range dirExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
