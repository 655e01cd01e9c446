// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libvdf

import (
	"encoding"
	"errors"
	"reflect"
	"strconv"
	"strings"
)

// parseInto converts text into the value out points to.
func parseInto(text string, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("vdf: conversion target must be a non-nil pointer")
	}
	return parseScalar(text, rv.Elem())
}

// parseScalar converts text into out, which must be settable. Booleans
// accept 0 and 1 besides the usual spellings; any type implementing
// encoding.TextUnmarshaler, net/netip's address types among them, is
// handed the raw text. Failures are reported as *ParseStringError.
func parseScalar(text string, out reflect.Value) error {
	if out.CanAddr() {
		if u, ok := out.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(text)); err != nil {
				return &ParseStringError{Type: out.Type().String(), Value: text}
			}
			return nil
		}
	}
	switch out.Kind() {
	case reflect.String:
		out.SetString(text)
		return nil
	case reflect.Bool:
		switch text {
		case "0":
			out.SetBool(false)
			return nil
		case "1":
			out.SetBool(true)
			return nil
		}
		b, err := strconv.ParseBool(text)
		if err != nil {
			break
		}
		out.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(text, 10, out.Type().Bits())
		if err != nil {
			break
		}
		out.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(text, 10, out.Type().Bits())
		if err != nil {
			break
		}
		out.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, out.Type().Bits())
		if err != nil {
			break
		}
		out.SetFloat(f)
		return nil
	}
	return &ParseStringError{Type: out.Type().String(), Value: text}
}

// To converts a scalar entry into the value out points to. Tables and
// arrays report a *ParseEntryError; use Decode for structured targets.
func To(e Entry, out any) error {
	s, ok := AsString(e)
	if !ok {
		name := "?"
		if rv := reflect.ValueOf(out); rv.Kind() == reflect.Pointer && !rv.IsNil() {
			name = rv.Type().Elem().String()
		}
		kind := KindValue
		if e != nil {
			kind = e.Kind()
		}
		return &ParseEntryError{Type: name, Kind: kind}
	}
	if err := parseInto(s, out); err != nil {
		if pe, ok := err.(*ParseStringError); ok {
			return &ParseEntryError{Type: pe.Type, Kind: e.Kind(), Value: s}
		}
		return err
	}
	return nil
}

// isBracketArray reports whether s looks like an inline array: the whole
// string wrapped in [] or {}.
func isBracketArray(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '[' && s[len(s)-1] == ']') || (s[0] == '{' && s[len(s)-1] == '}')
}

// splitFragments splits the interior of an inline array on spaces,
// dropping empty fragments produced by runs of them.
func splitFragments(interior string) []string {
	var fragments []string
	for _, f := range strings.Split(interior, " ") {
		if f != "" {
			fragments = append(fragments, f)
		}
	}
	return fragments
}
