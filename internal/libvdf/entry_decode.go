// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Typed decoding of an already-built dynamic tree. Mirrors the stream
// decoder but works off entries, so there are no spans to report and no
// token ambiguities left to resolve.

package libvdf

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"
)

// DecodeEntry converts a dynamic entry into the value out points to.
func DecodeEntry(e Entry, out any) error {
	if e == nil {
		return errors.New("vdf: cannot decode nil entry")
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("vdf: decode target must be a non-nil pointer")
	}
	return decodeEntryValue(e, rv.Elem())
}

func entryParseError(e Entry, out reflect.Value) error {
	err := &ParseEntryError{Type: out.Type().String(), Kind: e.Kind()}
	if s, ok := AsString(e); ok {
		err.Value = s
	}
	return err
}

func decodeEntryValue(e Entry, out reflect.Value) error {
	if out.Type() == charType {
		s, ok := AsString(e)
		if !ok {
			return entryParseError(e, out)
		}
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) || (r == utf8.RuneError && size == 1) {
			return &ParseEntryError{Type: "char", Kind: e.Kind(), Value: s}
		}
		out.SetInt(int64(r))
		return nil
	}
	if out.CanAddr() {
		if u, ok := out.Addr().Interface().(Union); ok {
			return decodeEntryUnion(e, out, u)
		}
	}
	switch out.Type() {
	case entryType:
		out.Set(reflect.ValueOf(e))
		return nil
	case tableType:
		t, ok := e.(Table)
		if !ok {
			return entryParseError(e, out)
		}
		out.Set(reflect.ValueOf(t))
		return nil
	}
	if out.Kind() != reflect.Pointer && out.CanAddr() &&
		reflect.PointerTo(out.Type()).Implements(textUnmarshalerType) {
		s, ok := AsString(e)
		if !ok {
			return entryParseError(e, out)
		}
		u := out.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return &ValueError{Err: err}
		}
		return nil
	}
	switch out.Kind() {
	case reflect.Pointer:
		if s, ok := AsString(e); ok && s == "" {
			out.SetZero()
			return nil
		}
		elem := reflect.New(out.Type().Elem())
		if err := decodeEntryValue(e, elem.Elem()); err != nil {
			return err
		}
		out.Set(elem)
		return nil
	case reflect.Interface:
		if out.NumMethod() == 0 {
			out.Set(reflect.ValueOf(entryToAny(e)))
			return nil
		}
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		s, ok := AsString(e)
		if !ok {
			return entryParseError(e, out)
		}
		if err := parseScalar(s, out); err != nil {
			pe := err.(*ParseStringError)
			return &ParseEntryError{Type: pe.Type, Kind: e.Kind(), Value: s}
		}
		return nil
	case reflect.Struct:
		if out.NumField() == 0 {
			if s, ok := AsString(e); ok && s == "" {
				return nil
			}
			return entryParseError(e, out)
		}
		return decodeEntryStruct(e, out)
	case reflect.Map:
		return decodeEntryMap(e, out)
	case reflect.Slice, reflect.Array:
		return decodeEntrySeq(e, out)
	}
	return fmt.Errorf("vdf: cannot decode into %s", out.Type())
}

func decodeEntryStruct(e Entry, out reflect.Value) error {
	t, ok := e.(Table)
	if !ok {
		return entryParseError(e, out)
	}
	sinfo, err := getStructInfo(out.Type())
	if err != nil {
		return err
	}
	for name, child := range t {
		info, ok := sinfo.FieldsMap[name]
		if !ok {
			info, ok = sinfo.FieldsMap[strings.ToLower(name)]
		}
		switch {
		case ok:
			var field reflect.Value
			if info.Inline == nil {
				field = out.Field(info.Num)
			} else {
				field = out.FieldByIndex(info.Inline)
			}
			if err := decodeEntryValue(child, field); err != nil {
				return err
			}
		case sinfo.InlineMap >= 0:
			field := out.Field(sinfo.InlineMap)
			if field.IsNil() {
				field.Set(reflect.MakeMap(field.Type()))
			}
			value := reflect.New(field.Type().Elem()).Elem()
			if err := decodeEntryValue(child, value); err != nil {
				return err
			}
			field.SetMapIndex(reflect.ValueOf(name), value)
		}
	}
	return nil
}

func decodeEntryMap(e Entry, out reflect.Value) error {
	t, ok := e.(Table)
	if !ok {
		return entryParseError(e, out)
	}
	ot := out.Type()
	if out.IsNil() {
		out.Set(reflect.MakeMap(ot))
	}
	for name, child := range t {
		k := reflect.New(ot.Key()).Elem()
		if err := parseScalar(name, k); err != nil {
			pe := err.(*ParseStringError)
			return &ParseEntryError{Type: pe.Type, Kind: e.Kind(), Value: name}
		}
		value := reflect.New(ot.Elem()).Elem()
		if err := decodeEntryValue(child, value); err != nil {
			return err
		}
		out.SetMapIndex(k, value)
	}
	return nil
}

func decodeEntrySeq(e Entry, out reflect.Value) error {
	var elems []Entry
	switch v := e.(type) {
	case Array:
		elems = v
	case Value:
		if isBracketArray(string(v)) {
			for _, f := range splitFragments(string(v)[1 : len(v)-1]) {
				elems = append(elems, Value(f))
			}
		} else {
			elems = []Entry{v}
		}
	default:
		elems = []Entry{e}
	}
	if out.Kind() == reflect.Array {
		if len(elems) != out.Len() {
			return &ParseEntryError{
				Type:  out.Type().String(),
				Kind:  e.Kind(),
				Value: fmt.Sprintf("%d elements", len(elems)),
			}
		}
		for i, child := range elems {
			if err := decodeEntryValue(child, out.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	sl := reflect.MakeSlice(out.Type(), len(elems), len(elems))
	for i, child := range elems {
		if err := decodeEntryValue(child, sl.Index(i)); err != nil {
			return err
		}
	}
	out.Set(sl)
	return nil
}

// decodeEntryUnion expects a single-key table: the key is the variant
// tag and its entry the payload.
func decodeEntryUnion(e Entry, out reflect.Value, u Union) error {
	t, ok := e.(Table)
	if !ok || len(t) != 1 {
		return entryParseError(e, out)
	}
	variants := u.Variants()
	for tag, child := range t {
		proto, ok := variants[tag]
		if !ok {
			names := make([]string, 0, len(variants))
			for name := range variants {
				names = append(names, name)
			}
			sort.Strings(names)
			return &UnknownVariantError{Variant: tag, Variants: names}
		}
		var payload any
		if proto == nil {
			if s, ok := AsString(child); !ok || s != "" {
				return entryParseError(child, out)
			}
		} else {
			value := reflect.New(reflect.TypeOf(proto)).Elem()
			if err := decodeEntryValue(child, value); err != nil {
				return err
			}
			payload = value.Interface()
		}
		if err := u.SetVariant(tag, payload); err != nil {
			return &ValueError{Err: err}
		}
	}
	return nil
}

func entryToAny(e Entry) any {
	switch v := e.(type) {
	case Table:
		m := make(map[string]any, len(v))
		for name, child := range v {
			m[name] = entryToAny(child)
		}
		return m
	case Array:
		values := make([]any, len(v))
		for i, child := range v {
			values[i] = entryToAny(child)
		}
		return values
	case Value:
		return inferScalar(string(v))
	case Statement:
		return string(v)
	}
	return nil
}
