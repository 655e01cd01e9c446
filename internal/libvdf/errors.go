// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types for VDF parsing and decoding.
// Every error raised while reading source text carries a byte span so a
// caller can render a source-annotated report.

package libvdf

import (
	"fmt"
	"strings"
)

// Positioned is implemented by errors that point at a location in the
// source text. It exposes enough for an external diagnostic renderer;
// rendering itself is not part of this package.
type Positioned interface {
	error
	ErrSpan() Span
	SourceText() string
}

// expectedNames formats a token set for diagnostics.
func expectedNames(expected []Token) string {
	names := make([]string, len(expected))
	for i, t := range expected {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// UnexpectedTokenError reports a known token found where one of a known
// expected set was required. A nil Found means the input ended instead.
type UnexpectedTokenError struct {
	Expected []Token
	Found    *Token
	Span     Span
	Source   string
}

func (e *UnexpectedTokenError) Error() string {
	if e.Found == nil {
		return fmt.Sprintf("vdf: unexpected end of input, expected one of %s", expectedNames(e.Expected))
	}
	return fmt.Sprintf("vdf: unexpected token, found %s expected one of %s", *e.Found, expectedNames(e.Expected))
}

func (e *UnexpectedTokenError) ErrSpan() Span      { return e.Span }
func (e *UnexpectedTokenError) SourceText() string { return e.Source }

// NoValidTokenError reports bytes that do not form any token. The
// expected set is attached by the caller for message purposes.
type NoValidTokenError struct {
	Expected []Token
	Span     Span
	Source   string
}

func (e *NoValidTokenError) Error() string {
	if len(e.Expected) == 0 {
		return "vdf: no valid token found"
	}
	return fmt.Sprintf("vdf: no valid token found, expected one of %s", expectedNames(e.Expected))
}

func (e *NoValidTokenError) ErrSpan() Span      { return e.Span }
func (e *NoValidTokenError) SourceText() string { return e.Source }

// WrongEventTypeError reports a structural event of the wrong kind where
// another was required.
type WrongEventTypeError struct {
	Expected EventKind
	Found    EventKind
	Span     Span
	Source   string
}

func (e *WrongEventTypeError) Error() string {
	return fmt.Sprintf("vdf: wrong event type, found %s expected %s", e.Found, e.Expected)
}

func (e *WrongEventTypeError) ErrSpan() Span      { return e.Span }
func (e *WrongEventTypeError) SourceText() string { return e.Source }

// ParseStringError reports a scalar string that could not be converted
// to the requested type.
type ParseStringError struct {
	Type  string
	Value string
}

func (e *ParseStringError) Error() string {
	return fmt.Sprintf("vdf: cannot parse %q as %s", e.Value, e.Type)
}

// ParseItemError reports an event item whose content could not be
// converted to the requested type.
type ParseItemError struct {
	Type string
	Item Item
}

func (e *ParseItemError) Error() string {
	return fmt.Sprintf("vdf: cannot parse item %q as %s", e.Item.Content, e.Type)
}

func (e *ParseItemError) ErrSpan() Span      { return e.Item.Span }
func (e *ParseItemError) SourceText() string { return "" }

// ParseEntryError reports a tree entry that could not be converted to
// the requested type.
type ParseEntryError struct {
	Type  string
	Kind  EntryKind
	Value string
}

func (e *ParseEntryError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("vdf: cannot parse %s entry %q as %s", e.Kind, e.Value, e.Type)
	}
	return fmt.Sprintf("vdf: cannot parse %s entry as %s", e.Kind, e.Type)
}

// UnknownVariantError reports an enum tag that matched no known variant.
type UnknownVariantError struct {
	Variant  string
	Variants []string
	Span     Span
	Source   string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("vdf: unknown variant %q, expected one of %s", e.Variant, strings.Join(e.Variants, ", "))
}

func (e *UnknownVariantError) ErrSpan() Span      { return e.Span }
func (e *UnknownVariantError) SourceText() string { return e.Source }

// DecodeError reports a decode-time type mismatch: the source held a
// value the requested target shape cannot represent.
type DecodeError struct {
	Type   string
	Value  string
	Span   Span
	Source string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("vdf: cannot decode %q into %s", e.Value, e.Type)
}

func (e *DecodeError) ErrSpan() Span      { return e.Span }
func (e *DecodeError) SourceText() string { return e.Source }

// ValueError wraps a failure reported by the decode target itself, such
// as a TextUnmarshaler or a Union rejecting an otherwise well-formed
// value.
type ValueError struct {
	Err    error
	Span   Span
	Source string
}

func (e *ValueError) Error() string {
	return "vdf: " + e.Err.Error()
}

func (e *ValueError) Unwrap() error { return e.Err }

func (e *ValueError) ErrSpan() Span      { return e.Span }
func (e *ValueError) SourceText() string { return e.Source }

// withSourceSpan rewrites the span and source of an error raised in a
// context that lacked them, once a caller with the full picture catches
// it. The error kind is never changed.
func withSourceSpan(err error, span Span, source string) error {
	switch e := err.(type) {
	case *UnexpectedTokenError:
		e.Span, e.Source = span, source
	case *NoValidTokenError:
		e.Span, e.Source = span, source
	case *WrongEventTypeError:
		e.Span, e.Source = span, source
	case *UnknownVariantError:
		e.Span, e.Source = span, source
	case *DecodeError:
		e.Span, e.Source = span, source
	case *ValueError:
		e.Span, e.Source = span, source
	}
	return err
}
