// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libvdf

import (
	"strconv"
	"strings"
)

// EntryKind identifies the concrete type behind an Entry.
type EntryKind int

const (
	KindTable EntryKind = iota
	KindArray
	KindValue
	KindStatement
)

func (k EntryKind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindArray:
		return "array"
	case KindValue:
		return "value"
	case KindStatement:
		return "statement"
	}
	return "unknown"
}

// Entry is a node of a dynamically parsed document: a Table, an Array,
// a Value or a Statement.
type Entry interface {
	// Kind returns the concrete kind of the entry.
	Kind() EntryKind
	// Get returns the child named name, nil if there is none. For
	// arrays, name is a decimal index.
	Get(name string) Entry
	// Decode converts the entry into the value pointed to by out.
	Decode(out any) error

	entry()
}

// Table is an ordered-insensitive mapping of keys to entries.
type Table map[string]Entry

// Array is a list of entries collected under a repeated key.
type Array []Entry

// Value is a plain string value.
type Value string

// Statement is a #-prefixed value such as a conditional or an
// include directive.
type Statement string

func (Table) entry()     {}
func (Array) entry()     {}
func (Value) entry()     {}
func (Statement) entry() {}

func (Table) Kind() EntryKind     { return KindTable }
func (Array) Kind() EntryKind     { return KindArray }
func (Value) Kind() EntryKind     { return KindValue }
func (Statement) Kind() EntryKind { return KindStatement }

func (t Table) Get(name string) Entry {
	return t[name]
}

func (a Array) Get(name string) Entry {
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

func (Value) Get(string) Entry     { return nil }
func (Statement) Get(string) Entry { return nil }

func (t Table) Decode(out any) error     { return DecodeEntry(t, out) }
func (a Array) Decode(out any) error     { return DecodeEntry(a, out) }
func (v Value) Decode(out any) error     { return DecodeEntry(v, out) }
func (s Statement) Decode(out any) error { return DecodeEntry(s, out) }

// Insert stores value under key. If the key is already present the
// existing entry is promoted to an Array and value is appended.
func (t Table) Insert(key string, value Entry) {
	existing, ok := t[key]
	if !ok {
		t[key] = value
		return
	}
	if arr, ok := existing.(Array); ok {
		t[key] = append(arr, value)
		return
	}
	t[key] = Array{existing, value}
}

// Lookup resolves a dot separated path against e. Array elements are
// addressed by decimal index. The result is nil when any segment is
// missing.
func Lookup(e Entry, path string) Entry {
	for _, name := range strings.Split(path, ".") {
		if e == nil {
			return nil
		}
		e = e.Get(name)
	}
	return e
}

// AsString returns the entry's text if it is a Value or a
// Statement.
func AsString(e Entry) (string, bool) {
	switch v := e.(type) {
	case Value:
		return string(v), true
	case Statement:
		return string(v), true
	}
	return "", false
}

// AsTable returns the entry as a Table if it is one.
func AsTable(e Entry) (Table, bool) {
	t, ok := e.(Table)
	return t, ok
}

// AsSlice returns the entry's elements. Arrays yield their elements,
// anything else yields itself as a single element.
func AsSlice(e Entry) []Entry {
	if a, ok := e.(Array); ok {
		return a
	}
	if e == nil {
		return nil
	}
	return []Entry{e}
}

func eventItem(i Item) Entry {
	if i.Statement {
		return Statement(i.Content)
	}
	return Value(i.Content)
}

// LoadTable reads every remaining event from r into a Table.
func LoadTable(r *Reader) (Table, error) {
	return loadTable(r, false)
}

func loadTable(r *Reader, nested bool) (Table, error) {
	table := Table{}
	lastKey := ""
	for {
		ev, err := r.Event()
		if err != nil {
			return nil, err
		}
		if ev == nil {
			if nested {
				return nil, &UnexpectedTokenError{Expected: validKeyTokens, Span: r.tok.End(), Source: r.Source()}
			}
			return table, nil
		}
		switch ev.Kind {
		case EventGroupStart:
			child, err := loadTable(r, true)
			if err != nil {
				return nil, err
			}
			table.Insert(ev.Name.Content, child)
			lastKey = ev.Name.Content
		case EventGroupEnd:
			return table, nil
		case EventEntry:
			table.Insert(ev.Key.Content, eventItem(ev.Value))
			lastKey = ev.Key.Content
		case EventValueContinuation:
			table.Insert(lastKey, eventItem(ev.Value))
		}
	}
}
