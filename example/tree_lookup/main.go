// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Tree Lookup demonstrates dynamic parsing and path lookup.

package main

import (
	"fmt"

	"github.com/go-vdf/vdf"
)

func main() {
	fmt.Println("Example 2: Tree Lookup")

	vdfData := `
"GameInfo"
{
	"game" "Half-Life 2"

	"FileSystem"
	{
		"SteamAppId" "220"
		"SearchPaths"
		{
			"game" "|gameinfo_path|."
			"game" "hl2"
		}
	}
}
`

	table, err := vdf.Parse([]byte(vdfData))
	if err != nil {
		panic(err)
	}

	name, _ := vdf.AsString(vdf.Lookup(table, "GameInfo.game"))
	fmt.Printf("game: %s\n", name)

	var appID int
	if err := vdf.To(vdf.Lookup(table, "GameInfo.FileSystem.SteamAppId"), &appID); err != nil {
		panic(err)
	}
	fmt.Printf("app id: %d\n", appID)

	// repeated keys promote to an array, addressable by index
	second := vdf.Lookup(table, "GameInfo.FileSystem.SearchPaths.game.1")
	path, _ := vdf.AsString(second)
	fmt.Printf("second search path: %s\n", path)
}
