// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package vdf_test

import (
	"testing"

	"github.com/go-vdf/vdf"
)

var fuzzSeeds = []string{
	"",
	"\"a\" \"b\"",
	"\"root\"\n{\n\t\"k\" \"v\"\n}\n",
	"a 1 2 3\n",
	"#base \"other.vdf\"\n",
	"\"m\" { \"a\" { \"b\" \"c\" } }",
	"\"arr\" \"[1 2 3]\"",
	"\"broken",
	"{}}{",
	"// comment only\n",
	"\"esc\" \"a\\\"b\\\\c\"",
}

func FuzzParse(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, in []byte) {
		table, err := vdf.Parse(in)
		if err != nil {
			return
		}
		var v map[string]any
		if err := vdf.DecodeEntry(table, &v); err != nil {
			t.Fatalf("could not decode parsed table: %q: %s", in, err)
		}
	})
}

func FuzzUnmarshal(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, in []byte) {
		var v map[string]any
		vdf.Unmarshal(in, &v)
	})
}
