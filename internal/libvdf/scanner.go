// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Scanner turns source text into classified tokens; Tokenizer wraps it
// with spans, one-token lookahead and a consumed-token count.

package libvdf

// isSpace reports whether c is skippable whitespace.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}

// isBareByte reports whether c may appear in a bare token. Braces always
// terminate a bare run; quotes may appear inside one.
func isBareByte(c byte) bool {
	return !isSpace(c) && c != '{' && c != '}'
}

// Scanner is the lexer: a single forward pass over the source producing
// classified tokens. Whitespace and //-to-end-of-line comments never
// produce tokens.
type Scanner struct {
	source string
	pos    int
}

// NewScanner returns a scanner over source.
func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// skip advances past whitespace and comments, reporting whether a line
// break was crossed.
func (s *Scanner) skip() (newline bool) {
	for s.pos < len(s.source) {
		c := s.source[s.pos]
		switch {
		case isSpace(c):
			if c == '\n' {
				newline = true
			}
			s.pos++
		case c == '/' && s.pos+1 < len(s.source) && s.source[s.pos+1] == '/':
			for s.pos < len(s.source) && s.source[s.pos] != '\n' {
				s.pos++
			}
		default:
			return newline
		}
	}
	return newline
}

// Scan returns the next token. ok is false when the input is exhausted.
// Bytes matching no rule yield a *NoValidTokenError; its expected set is
// left empty for the caller to attach.
func (s *Scanner) Scan() (tok SpannedToken, ok bool, err error) {
	newline := s.skip()
	if s.pos >= len(s.source) {
		return SpannedToken{}, false, nil
	}

	start := s.pos
	tok.NewlineBefore = newline

	switch c := s.source[s.pos]; {
	case c == '{':
		s.pos++
		tok.Token = TokenGroupStart
	case c == '}':
		s.pos++
		tok.Token = TokenGroupEnd
	case c == '"':
		kind, end, terminated := s.scanQuoted(start)
		if !terminated {
			s.pos = len(s.source)
			return SpannedToken{}, false, &NoValidTokenError{Span: Span{Start: start, End: s.pos}}
		}
		s.pos = end
		tok.Token = kind
	case c == '#':
		s.pos++
		for s.pos < len(s.source) && isBareByte(s.source[s.pos]) {
			s.pos++
		}
		// a lone `#` is not a statement
		if s.pos == start+1 {
			return SpannedToken{}, false, &NoValidTokenError{Span: Span{Start: start, End: s.pos}}
		}
		tok.Token = TokenStatement
	default:
		s.pos++
		for s.pos < len(s.source) && isBareByte(s.source[s.pos]) {
			s.pos++
		}
		tok.Token = TokenItem
	}

	tok.Span = Span{Start: start, End: s.pos}
	return tok, true, nil
}

// scanQuoted scans a double-quoted token starting at start, honoring the
// `\"` and `\\` escapes. It reports the classified kind, the offset one
// past the closing quote, and whether the string was terminated at all.
func (s *Scanner) scanQuoted(start int) (kind Token, end int, terminated bool) {
	kind = TokenItem
	if start+1 < len(s.source) && s.source[start+1] == '#' {
		kind = TokenStatement
	}
	i := start + 1
	for i < len(s.source) {
		switch s.source[i] {
		case '\\':
			i += 2
		case '"':
			return kind, i + 1, true
		default:
			i++
		}
	}
	return kind, i, false
}

// Tokenizer is the spanned token stream: the scanner plus one token of
// lookahead and a running count of tokens scanned. The count feeds the
// implicit top-level map heuristic in the decoder.
type Tokenizer struct {
	scanner *Scanner

	peeked    *SpannedToken
	peekedErr error
	hasPeeked bool
	lastEnd   int

	// Count is the number of tokens scanned so far, lookahead included.
	Count int
}

// NewTokenizer returns a tokenizer over source.
func NewTokenizer(source string) *Tokenizer {
	return &Tokenizer{scanner: NewScanner(source)}
}

// Source returns the full source text.
func (t *Tokenizer) Source() string {
	return t.scanner.source
}

// Next returns the next token, consuming it. At end of input both
// results are nil.
func (t *Tokenizer) Next() (*SpannedToken, error) {
	if t.hasPeeked {
		tok, err := t.peeked, t.peekedErr
		t.peeked, t.peekedErr, t.hasPeeked = nil, nil, false
		if tok != nil {
			t.lastEnd = tok.Span.End
		}
		return tok, err
	}
	tok, ok, err := t.scanner.Scan()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	t.Count++
	t.lastEnd = tok.Span.End
	return &tok, nil
}

// Peek returns what Next would return without consuming it.
func (t *Tokenizer) Peek() (*SpannedToken, error) {
	if !t.hasPeeked {
		t.peeked, t.peekedErr = t.Next()
		t.hasPeeked = true
	}
	return t.peeked, t.peekedErr
}

// PushBack returns a token to the stream so the next Next or Peek yields
// it again. Only one token may be buffered at a time.
func (t *Tokenizer) PushBack(tok *SpannedToken) {
	t.peeked, t.peekedErr, t.hasPeeked = tok, nil, true
}

// LastEnd returns the end offset of the most recently consumed token,
// 0 before the first. Multi-token constructs use it to report a span
// covering everything they consumed.
func (t *Tokenizer) LastEnd() int {
	return t.lastEnd
}

// End returns a zero-length span at the end of the input, used to point
// unexpected-end-of-input errors past the last byte.
func (t *Tokenizer) End() Span {
	n := len(t.scanner.source)
	return Span{Start: n, End: n}
}
