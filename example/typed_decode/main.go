// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Typed Decode demonstrates decoding KeyValues text into structs.

package main

import (
	"fmt"
	"net/netip"

	"github.com/go-vdf/vdf"
)

type Server struct {
	Name    string         `vdf:"name"`
	Address netip.AddrPort `vdf:"address"`
	Tags    []string       `vdf:"tags"`
}

type Config struct {
	Servers []Server `vdf:"server"`
	Timeout int      `vdf:"timeout"`
}

func main() {
	fmt.Println("Example 1: Typed Decode")

	vdfData := `
"server"
{
	"name"    "alpha"
	"address" "10.0.0.1:27015"
	"tags"    "[eu fast]"
}
"server"
{
	"name"    "beta"
	"address" "10.0.0.2:27015"
	"tags"    "[us]"
}
"timeout" "30"
`

	var cfg Config
	if err := vdf.Unmarshal([]byte(vdfData), &cfg); err != nil {
		panic(err)
	}

	fmt.Printf("Loaded: %+v\n", cfg)
}
