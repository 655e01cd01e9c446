// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package vdf reads Valve's KeyValues text format, as found in .vdf,
// .vmt and .vmf files.
//
// Source code and other details for the project are available at GitHub:
//
//	https://github.com/go-vdf/vdf
//
// This file contains:
// - Options API (WithKnownFields)
// - Type and constant re-exports from internal/libvdf
// - Typed decoding (Unmarshal, Decoder, DecodeEntry)
// - Dynamic parsing (Parse, Table, Entry, Lookup)
// - Low-level access (Reader, Tokenizer)

package vdf

import (
	"github.com/go-vdf/vdf/internal/libvdf"
)

//-----------------------------------------------------------------------------
// Options
//-----------------------------------------------------------------------------

// Option allows configuring decoding operations.
type Option = libvdf.Option

// WithKnownFields makes keys that match no field of a struct target an
// error instead of being skipped.
var WithKnownFields = libvdf.WithKnownFields

//-----------------------------------------------------------------------------
// Tokens and spans
//-----------------------------------------------------------------------------

// Token identifies the kind of a lexical token.
type Token = libvdf.Token

const (
	TokenGroupStart = libvdf.TokenGroupStart
	TokenGroupEnd   = libvdf.TokenGroupEnd
	TokenItem       = libvdf.TokenItem
	TokenStatement  = libvdf.TokenStatement
)

// Span is a byte range into the source text.
type Span = libvdf.Span

// SpannedToken is a token together with its location in the source.
type SpannedToken = libvdf.SpannedToken

// Tokenizer is the spanned token stream over source text, with one
// token of lookahead.
type Tokenizer = libvdf.Tokenizer

// NewTokenizer returns a tokenizer over source.
func NewTokenizer(source string) *Tokenizer {
	return libvdf.NewTokenizer(source)
}

//-----------------------------------------------------------------------------
// Events
//-----------------------------------------------------------------------------

// EventKind identifies the kind of a structural event.
type EventKind = libvdf.EventKind

const (
	EventGroupStart        = libvdf.EventGroupStart
	EventGroupEnd          = libvdf.EventGroupEnd
	EventEntry             = libvdf.EventEntry
	EventValueContinuation = libvdf.EventValueContinuation
)

// Event is a structural event: a group opening or closing, a key/value
// entry, or a further value on the line of the previous entry.
type Event = libvdf.Event

// Item is the decoded text of a token together with its location.
type Item = libvdf.Item

// Reader reads structural events from source text.
type Reader = libvdf.Reader

// NewReader returns a reader over source.
func NewReader(source string) *Reader {
	return libvdf.NewReader(source)
}

//-----------------------------------------------------------------------------
// Dynamic trees
//-----------------------------------------------------------------------------

// EntryKind identifies the concrete type behind an Entry.
type EntryKind = libvdf.EntryKind

const (
	KindTable     = libvdf.KindTable
	KindArray     = libvdf.KindArray
	KindValue     = libvdf.KindValue
	KindStatement = libvdf.KindStatement
)

// Entry is a node of a dynamically parsed document.
type Entry = libvdf.Entry

// Table is a mapping of keys to entries. Repeated keys promote the
// entry to an Array.
type Table = libvdf.Table

// Array is a list of entries collected under a repeated key.
type Array = libvdf.Array

// Value is a plain string value.
type Value = libvdf.Value

// Statement is a #-prefixed value such as a conditional or an include
// directive.
type Statement = libvdf.Statement

// Parse reads in into a dynamic Table.
func Parse(in []byte) (Table, error) {
	return libvdf.LoadTable(libvdf.NewReader(string(in)))
}

// LoadTable reads every remaining event from r into a Table.
var LoadTable = libvdf.LoadTable

// Lookup resolves a dot separated path against an entry, nil when any
// segment is missing. Array elements are addressed by decimal index.
var Lookup = libvdf.Lookup

// To converts a scalar entry into the value out points to.
var To = libvdf.To

// AsString returns the entry's text if it is a Value or a Statement.
var AsString = libvdf.AsString

// AsTable returns the entry as a Table if it is one.
var AsTable = libvdf.AsTable

// AsSlice returns an entry's elements, treating a non-array entry as a
// single element.
var AsSlice = libvdf.AsSlice

//-----------------------------------------------------------------------------
// Typed decoding
//-----------------------------------------------------------------------------

// Char decodes a single-character token.
type Char = libvdf.Char

// Union is implemented by tagged union targets.
type Union = libvdf.Union

// Decoder decodes source text into typed Go values.
type Decoder = libvdf.Decoder

// NewDecoder returns a decoder over source.
func NewDecoder(source string, opts ...Option) *Decoder {
	return libvdf.NewDecoder(source, opts...)
}

// Unmarshal decodes in into the value pointed to by out.
//
// Maps, structs and the dynamic Table decode key/value groups; slices
// and arrays decode repeated keys, same-line value runs and quoted
// "[1 2 3]" inline arrays; pointers decode the empty string as nil. See
// the package documentation for the full mapping.
func Unmarshal(in []byte, out any, opts ...Option) error {
	return libvdf.NewDecoder(string(in), opts...).Decode(out)
}

// DecodeEntry converts a dynamic entry into the value out points to.
var DecodeEntry = libvdf.DecodeEntry

//-----------------------------------------------------------------------------
// Errors
//-----------------------------------------------------------------------------

// Positioned is implemented by errors that point at a location in the
// source text.
type Positioned = libvdf.Positioned

type (
	UnexpectedTokenError = libvdf.UnexpectedTokenError
	NoValidTokenError    = libvdf.NoValidTokenError
	WrongEventTypeError  = libvdf.WrongEventTypeError
	ParseStringError     = libvdf.ParseStringError
	ParseItemError       = libvdf.ParseItemError
	ParseEntryError      = libvdf.ParseEntryError
	UnknownVariantError  = libvdf.UnknownVariantError
	DecodeError          = libvdf.DecodeError
	ValueError           = libvdf.ValueError
)
