// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/go-vdf/vdf"
)

// report renders err, quoting the offending source line with a caret
// marker when the error carries a span.
func report(err error) string {
	pos, ok := err.(vdf.Positioned)
	if !ok {
		return err.Error()
	}
	source := pos.SourceText()
	span := pos.ErrSpan()
	if source == "" || span.Start > len(source) || span.End > len(source) {
		return err.Error()
	}

	lineStart := strings.LastIndexByte(source[:span.Start], '\n') + 1
	lineEnd := strings.IndexByte(source[span.Start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += span.Start
	}
	line := 1 + strings.Count(source[:span.Start], "\n")
	col := span.Start - lineStart + 1

	width := span.End - span.Start
	if span.End > lineEnd || width < 1 {
		width = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", err.Error())
	fmt.Fprintf(&b, "%4d | %s\n", line, source[lineStart:lineEnd])
	fmt.Fprintf(&b, "     | %s%s\n", strings.Repeat(" ", col-1), strings.Repeat("^", width))
	return b.String()
}
