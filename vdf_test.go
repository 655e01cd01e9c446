// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package vdf_test

import (
	"testing"

	. "gopkg.in/check.v1"

	"github.com/go-vdf/vdf"
)

func Test(t *testing.T) { TestingT(t) }

type S struct{}

var _ = Suite(&S{})

const gameInfo = `
"GameInfo"
{
	"game"		"Half-Life 2"
	"type"		"singleplayer_only"

	"FileSystem"
	{
		"SteamAppId"	"220"
		"SearchPaths"
		{
			"game"	"|gameinfo_path|."
			"game"	"hl2"
		}
	}
}
`

func (s *S) TestUnmarshal(c *C) {
	type fileSystem struct {
		SteamAppID  int `vdf:"steamappid"`
		SearchPaths struct {
			Game []string
		}
	}
	var out struct {
		GameInfo struct {
			Game       string
			Type       string
			FileSystem fileSystem
		}
	}
	c.Assert(vdf.Unmarshal([]byte(gameInfo), &out), IsNil)
	c.Assert(out.GameInfo.Game, Equals, "Half-Life 2")
	c.Assert(out.GameInfo.FileSystem.SteamAppID, Equals, 220)
	c.Assert(out.GameInfo.FileSystem.SearchPaths.Game, DeepEquals, []string{"|gameinfo_path|.", "hl2"})
}

func (s *S) TestParseAndLookup(c *C) {
	table, err := vdf.Parse([]byte(gameInfo))
	c.Assert(err, IsNil)

	game := vdf.Lookup(table, "GameInfo.game")
	name, ok := vdf.AsString(game)
	c.Assert(ok, Equals, true)
	c.Assert(name, Equals, "Half-Life 2")

	paths := vdf.Lookup(table, "GameInfo.FileSystem.SearchPaths.game")
	c.Assert(vdf.AsSlice(paths), HasLen, 2)

	second := vdf.Lookup(table, "GameInfo.FileSystem.SearchPaths.game.1")
	var dir string
	c.Assert(vdf.To(second, &dir), IsNil)
	c.Assert(dir, Equals, "hl2")

	c.Assert(vdf.Lookup(table, "GameInfo.missing"), IsNil)
}

func (s *S) TestDecodeEntry(c *C) {
	table, err := vdf.Parse([]byte(gameInfo))
	c.Assert(err, IsNil)

	var fs struct {
		SteamAppID int
		Paths      struct {
			Game []string
		} `vdf:"searchpaths"`
	}
	entry := vdf.Lookup(table, "GameInfo.FileSystem")
	c.Assert(vdf.DecodeEntry(entry, &fs), IsNil)
	c.Assert(fs.SteamAppID, Equals, 220)
	c.Assert(fs.Paths.Game, DeepEquals, []string{"|gameinfo_path|.", "hl2"})
}

func (s *S) TestUnmarshalErrorSpan(c *C) {
	data := []byte("\"count\" \"many\"\n")
	var out struct{ Count int }
	err := vdf.Unmarshal(data, &out)
	c.Assert(err, ErrorMatches, `vdf: cannot decode "many" into int`)

	pos, ok := err.(vdf.Positioned)
	c.Assert(ok, Equals, true)
	c.Assert(pos.ErrSpan(), Equals, vdf.Span{Start: 8, End: 14})
	c.Assert(pos.SourceText(), Equals, string(data))
}

func (s *S) TestUnmarshalKnownFields(c *C) {
	var out struct{ Game string }
	data := []byte("\"game\" \"hl2\"\n\"extra\" \"1\"\n")
	c.Assert(vdf.Unmarshal(data, &out), IsNil)
	c.Assert(vdf.Unmarshal(data, &out, vdf.WithKnownFields()), ErrorMatches, `vdf: field "extra" not found in type .*`)
}

func (s *S) TestParseError(c *C) {
	_, err := vdf.Parse([]byte("\"a\"\n{\n\t\"b\" \"1\"\n"))
	c.Assert(err, ErrorMatches, `vdf: unexpected end of input, expected one of .*`)
}
