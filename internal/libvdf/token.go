// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Lexical token kinds, source spans and the spanned token carrying both.

package libvdf

import "strings"

// Token identifies the kind of a lexical token.
type Token int

const (
	// TokenGroupStart is the `{` that opens a group.
	TokenGroupStart Token = iota
	// TokenGroupEnd is the `}` that closes a group.
	TokenGroupEnd
	// TokenItem is a bare or quoted string not starting with `#`.
	TokenItem
	// TokenStatement is a bare or quoted `#`-prefixed directive.
	TokenStatement
)

// String returns the name used for the token kind in diagnostics.
func (t Token) String() string {
	switch t {
	case TokenGroupStart:
		return "start of group"
	case TokenGroupEnd:
		return "end of group"
	case TokenItem:
		return "item"
	case TokenStatement:
		return "statement"
	}
	return "unknown token"
}

// Span is a byte range into the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// SpannedToken is a token together with its location in the source.
type SpannedToken struct {
	Token Token
	Span  Span

	// NewlineBefore reports whether the whitespace skipped before this
	// token contained a line break. Sequence decoding uses it to tell
	// "another value on the same line" apart from "a new entry".
	NewlineBefore bool
}

// Raw returns the raw source slice the token covers, quotes included.
func (t *SpannedToken) Raw(source string) string {
	return source[t.Span.Start:t.Span.End]
}

// Text returns the decoded text of the token. Quoted tokens have their
// surrounding quotes stripped and `\"` and `\\` unescaped; every other
// backslash sequence passes through literally. Bare tokens are returned
// as a slice of the source without copying.
func (t *SpannedToken) Text(source string) string {
	raw := t.Raw(source)
	if len(raw) >= 2 && raw[0] == '"' {
		return unquote(raw)
	}
	return raw
}

// IsString reports whether the token carries text (an Item or Statement).
func (t *SpannedToken) IsString() bool {
	return t.Token == TokenItem || t.Token == TokenStatement
}

// unquote strips the surrounding quotes and resolves the two recognized
// escapes. The common case of no backslash at all avoids the copy.
func unquote(raw string) string {
	inner := raw[1 : len(raw)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			switch inner[i+1] {
			case '\\', '"':
				c = inner[i+1]
				i++
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
