// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Typed decoding straight off the token stream. The format carries no
// type information of its own, so the target shape drives every
// decision: what token set is acceptable next, whether repeated keys
// fold into a sequence, whether a quoted "[1 2 3]" is one string or
// three numbers.

package libvdf

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Char decodes a single-character token. Plain rune targets cannot be
// told apart from int32, so single characters get their own type.
type Char rune

// Union is implemented by tagged union targets: the source carries a
// variant tag followed by the payload for that variant.
type Union interface {
	// Variants maps every accepted tag to a prototype payload value.
	// A nil prototype marks a unit variant without payload.
	Variants() map[string]any
	// SetVariant stores the decoded payload for tag. The payload has
	// the dynamic type of the tag's prototype, nil for unit variants.
	SetVariant(tag string, payload any) error
}

// Options holds the decoder knobs.
type Options struct {
	// KnownFields makes keys that match no field of a struct target an
	// error instead of being skipped.
	KnownFields bool
}

// Option adjusts Options.
type Option func(*Options)

// WithKnownFields makes unknown struct keys an error.
func WithKnownFields() Option {
	return func(o *Options) { o.KnownFields = true }
}

var stringTokens = []Token{TokenItem, TokenStatement}

var (
	charType            = reflect.TypeOf(Char(0))
	entryType           = reflect.TypeOf((*Entry)(nil)).Elem()
	tableType           = reflect.TypeOf(Table(nil))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Decoder decodes source text into typed Go values.
type Decoder struct {
	tok  *Tokenizer
	opts Options

	// lastKey is the most recently consumed map key. Sequence decoding
	// compares upcoming tokens against it to recognize a repeated key.
	lastKey string
}

// NewDecoder returns a decoder over source.
func NewDecoder(source string, opts ...Option) *Decoder {
	d := &Decoder{tok: NewTokenizer(source)}
	for _, o := range opts {
		o(&d.opts)
	}
	return d
}

func (d *Decoder) source() string {
	return d.tok.Source()
}

// Decode reads one value into out, which must be a non-nil pointer.
func (d *Decoder) Decode(out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("vdf: decode target must be a non-nil pointer")
	}
	return d.decode(rv.Elem())
}

func tokenIn(t Token, set []Token) bool {
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}

// fail attaches the expected token set and the source text to a lexer
// error, which is raised without either.
func (d *Decoder) fail(err error, expected []Token) error {
	if e, ok := err.(*NoValidTokenError); ok {
		e.Expected, e.Source = expected, d.source()
	}
	return err
}

// next consumes the next token, requiring it to be one of expected.
func (d *Decoder) next(expected []Token) (*SpannedToken, error) {
	tok, err := d.tok.Next()
	if err != nil {
		return nil, d.fail(err, expected)
	}
	if tok == nil {
		return nil, &UnexpectedTokenError{Expected: expected, Span: d.tok.End(), Source: d.source()}
	}
	if !tokenIn(tok.Token, expected) {
		found := tok.Token
		return nil, &UnexpectedTokenError{Expected: expected, Found: &found, Span: tok.Span, Source: d.source()}
	}
	return tok, nil
}

// peekExpect is next without consuming.
func (d *Decoder) peekExpect(expected []Token) (*SpannedToken, error) {
	tok, err := d.tok.Peek()
	if err != nil {
		return nil, d.fail(err, expected)
	}
	if tok == nil {
		return nil, &UnexpectedTokenError{Expected: expected, Span: d.tok.End(), Source: d.source()}
	}
	if !tokenIn(tok.Token, expected) {
		found := tok.Token
		return nil, &UnexpectedTokenError{Expected: expected, Found: &found, Span: tok.Span, Source: d.source()}
	}
	return tok, nil
}

func (d *Decoder) decode(out reflect.Value) error {
	if out.Type() == charType {
		return d.decodeChar(out)
	}
	if out.CanAddr() {
		if u, ok := out.Addr().Interface().(Union); ok {
			return d.decodeUnion(u)
		}
	}
	switch out.Type() {
	case entryType:
		return d.decodeDynamic(out)
	case tableType:
		t, err := d.decodeTable()
		if err != nil {
			return err
		}
		out.Set(reflect.ValueOf(t))
		return nil
	}
	if out.Kind() != reflect.Pointer && out.CanAddr() &&
		reflect.PointerTo(out.Type()).Implements(textUnmarshalerType) {
		tok, err := d.next(stringTokens)
		if err != nil {
			return err
		}
		u := out.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(tok.Text(d.source()))); err != nil {
			return &ValueError{Err: err, Span: tok.Span, Source: d.source()}
		}
		return nil
	}
	switch out.Kind() {
	case reflect.Pointer:
		return d.decodeOption(out)
	case reflect.Interface:
		if out.NumMethod() == 0 {
			return d.decodeAny(out)
		}
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return d.decodeScalar(out)
	case reflect.Struct:
		if out.NumField() == 0 {
			return d.decodeUnit(out)
		}
		toplevel, err := d.openGroup()
		if err != nil {
			return err
		}
		return d.decodeStruct(out, toplevel)
	case reflect.Map:
		toplevel, err := d.openGroup()
		if err != nil {
			return err
		}
		return d.decodeMapAssoc(out, toplevel)
	case reflect.Slice, reflect.Array:
		return d.decodeSeq(out)
	}
	return fmt.Errorf("vdf: cannot decode into %s", out.Type())
}

func (d *Decoder) decodeScalar(out reflect.Value) error {
	tok, err := d.next(stringTokens)
	if err != nil {
		return err
	}
	text := tok.Text(d.source())
	if err := parseScalar(text, out); err != nil {
		pe := err.(*ParseStringError)
		return &DecodeError{Type: pe.Type, Value: text, Span: tok.Span, Source: d.source()}
	}
	return nil
}

func (d *Decoder) decodeChar(out reflect.Value) error {
	tok, err := d.next(stringTokens)
	if err != nil {
		return err
	}
	text := tok.Text(d.source())
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 || size != len(text) || (r == utf8.RuneError && size == 1) {
		return &DecodeError{Type: "char", Value: text, Span: tok.Span, Source: d.source()}
	}
	out.SetInt(int64(r))
	return nil
}

// decodeUnit accepts exactly one token that unescapes to the empty
// string, the spelling of the unit value.
func (d *Decoder) decodeUnit(out reflect.Value) error {
	tok, err := d.next(stringTokens)
	if err != nil {
		return err
	}
	if text := tok.Text(d.source()); text != "" {
		return &DecodeError{Type: out.Type().String(), Value: text, Span: tok.Span, Source: d.source()}
	}
	return nil
}

// decodeOption treats the end of input and the empty string as the
// absent value; anything else decodes into a freshly allocated element.
func (d *Decoder) decodeOption(out reflect.Value) error {
	tok, err := d.tok.Peek()
	if err != nil {
		return d.fail(err, validValueTokens)
	}
	if tok == nil {
		out.SetZero()
		return nil
	}
	if tok.IsString() && tok.Text(d.source()) == "" {
		d.tok.Next()
		out.SetZero()
		return nil
	}
	elem := reflect.New(out.Type().Elem())
	if err := d.decode(elem.Elem()); err != nil {
		return err
	}
	out.Set(elem)
	return nil
}

// decodeAny guesses a shape when the target gives none: a group becomes
// map[string]any, an inline array []any, then int64, float64 and
// finally string.
func (d *Decoder) decodeAny(out reflect.Value) error {
	tok, err := d.peekExpect(validValueTokens)
	if err != nil {
		return err
	}
	if tok.Token == TokenGroupStart {
		var m map[string]any
		mv := reflect.ValueOf(&m).Elem()
		toplevel, err := d.openGroup()
		if err != nil {
			return err
		}
		if err := d.decodeMapAssoc(mv, toplevel); err != nil {
			return err
		}
		out.Set(mv)
		return nil
	}
	d.tok.Next()
	out.Set(reflect.ValueOf(inferScalar(tok.Text(d.source()))))
	return nil
}

func inferScalar(text string) any {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	if isBracketArray(text) {
		fragments := splitFragments(text[1 : len(text)-1])
		values := make([]any, len(fragments))
		for i, f := range fragments {
			values[i] = inferScalar(f)
		}
		return values
	}
	return text
}

// openGroup consumes the `{` starting a group. A missing brace is only
// tolerated at the very start of the input, where the whole document is
// an implicit map; the token count tells the two situations apart.
func (d *Decoder) openGroup() (toplevel bool, err error) {
	tok, err := d.tok.Peek()
	if err != nil {
		return false, d.fail(err, []Token{TokenGroupStart})
	}
	if tok == nil {
		if d.tok.Count > 1 {
			return false, &UnexpectedTokenError{Expected: []Token{TokenGroupStart}, Span: d.tok.End(), Source: d.source()}
		}
		return true, nil
	}
	if tok.Token == TokenGroupStart {
		d.tok.Next()
		return false, nil
	}
	if d.tok.Count > 1 {
		found := tok.Token
		return false, &UnexpectedTokenError{Expected: []Token{TokenGroupStart}, Found: &found, Span: tok.Span, Source: d.source()}
	}
	return true, nil
}

// nextKey returns the next key of a group, nil when the group ends. A
// braced group ends at `}`, the implicit top-level one at end of input.
func (d *Decoder) nextKey(toplevel bool) (*SpannedToken, error) {
	expected := validKeyTokens
	if toplevel {
		expected = stringTokens
	}
	tok, err := d.tok.Next()
	if err != nil {
		return nil, d.fail(err, expected)
	}
	if tok == nil {
		if toplevel {
			return nil, nil
		}
		return nil, &UnexpectedTokenError{Expected: expected, Span: d.tok.End(), Source: d.source()}
	}
	if tok.Token == TokenGroupEnd && !toplevel {
		return nil, nil
	}
	if !tok.IsString() {
		found := tok.Token
		return nil, &UnexpectedTokenError{Expected: expected, Found: &found, Span: tok.Span, Source: d.source()}
	}
	return tok, nil
}

func (d *Decoder) decodeStruct(out reflect.Value, toplevel bool) error {
	sinfo, err := getStructInfo(out.Type())
	if err != nil {
		return err
	}
	for {
		key, err := d.nextKey(toplevel)
		if err != nil {
			return err
		}
		if key == nil {
			return nil
		}
		name := key.Text(d.source())
		d.lastKey = name
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
			if err := d.decode(field); err != nil {
				return err
			}
		case sinfo.InlineMap >= 0:
			field := out.Field(sinfo.InlineMap)
			if field.IsNil() {
				field.Set(reflect.MakeMap(field.Type()))
			}
			value := reflect.New(field.Type().Elem()).Elem()
			if err := d.decode(value); err != nil {
				return err
			}
			field.SetMapIndex(reflect.ValueOf(name), value)
		case d.opts.KnownFields:
			return &ValueError{
				Err:    fmt.Errorf("field %q not found in type %s", name, out.Type()),
				Span:   key.Span,
				Source: d.source(),
			}
		default:
			if err := d.skipValue(); err != nil {
				return err
			}
		}
	}
}

func (d *Decoder) decodeMapAssoc(out reflect.Value, toplevel bool) error {
	t := out.Type()
	if out.IsNil() {
		out.Set(reflect.MakeMap(t))
	}
	for {
		key, err := d.nextKey(toplevel)
		if err != nil {
			return err
		}
		if key == nil {
			return nil
		}
		name := key.Text(d.source())
		d.lastKey = name
		k := reflect.New(t.Key()).Elem()
		if err := parseScalar(name, k); err != nil {
			pe := err.(*ParseStringError)
			return &DecodeError{Type: pe.Type, Value: name, Span: key.Span, Source: d.source()}
		}
		value := reflect.New(t.Elem()).Elem()
		if err := d.decode(value); err != nil {
			return err
		}
		out.SetMapIndex(k, value)
	}
}

// skipValue consumes and discards one value: a single string or a whole
// balanced group.
func (d *Decoder) skipValue() error {
	tok, err := d.next(validValueTokens)
	if err != nil {
		return err
	}
	if tok.Token != TokenGroupStart {
		return nil
	}
	all := []Token{TokenItem, TokenStatement, TokenGroupStart, TokenGroupEnd}
	for depth := 1; depth > 0; {
		tok, err := d.next(all)
		if err != nil {
			return err
		}
		switch tok.Token {
		case TokenGroupStart:
			depth++
		case TokenGroupEnd:
			depth--
		}
	}
	return nil
}

func (d *Decoder) decodeSeq(out reflect.Value) error {
	tok, err := d.peekExpect(validValueTokens)
	if err != nil {
		return err
	}
	if tok.IsString() {
		if raw := tok.Raw(d.source()); len(raw) >= 4 && raw[0] == '"' &&
			((raw[1] == '[' && raw[len(raw)-2] == ']') || (raw[1] == '{' && raw[len(raw)-2] == '}')) {
			d.tok.Next()
			return d.decodeInlineSeq(tok, out)
		}
	}
	return d.decodeRepeatedSeq(out)
}

// decodeInlineSeq splits a quoted "[a b c]" on spaces, decoding each
// fragment with its own sub-decoder and mapping fragment errors back to
// their byte range in the enclosing source.
func (d *Decoder) decodeInlineSeq(tok *SpannedToken, out reflect.Value) error {
	raw := tok.Raw(d.source())
	interior := raw[2 : len(raw)-2]
	et := out.Type().Elem()

	var elems []reflect.Value
	pos := tok.Span.Start + 2
	for remaining := interior; remaining != ""; {
		item, rest, _ := strings.Cut(remaining, " ")
		if item != "" {
			elem := reflect.New(et).Elem()
			if err := NewDecoder(item).decode(elem); err != nil {
				return withSourceSpan(err, Span{Start: pos, End: pos + len(item)}, d.source())
			}
			elems = append(elems, elem)
		}
		pos += len(item) + 1
		remaining = rest
	}
	return setSeq(out, elems, tok.Span, d.source())
}

// decodeRepeatedSeq collects sequence elements spread over multiple
// entries. After each element the sequence continues when the next
// token repeats the current key, or when it sits on the same line as
// the previous value; a differing key on a new line, a closing brace or
// the end of input all end it.
func (d *Decoder) decodeRepeatedSeq(out reflect.Value) error {
	et := out.Type().Elem()
	key := d.lastKey

	var elems []reflect.Value
	for first := true; ; first = false {
		if !first {
			tok, err := d.tok.Peek()
			if err != nil {
				return d.fail(err, validKeyTokens)
			}
			if tok == nil || !tok.IsString() {
				break
			}
			if key != "" && tok.Text(d.source()) == key {
				d.tok.Next()
			} else if tok.NewlineBefore {
				break
			}
		}
		elem := reflect.New(et).Elem()
		if err := d.decode(elem); err != nil {
			return err
		}
		elems = append(elems, elem)
	}
	return setSeq(out, elems, Span{}, d.source())
}

func setSeq(out reflect.Value, elems []reflect.Value, span Span, source string) error {
	if out.Kind() == reflect.Array {
		if len(elems) != out.Len() {
			return &DecodeError{
				Type:   out.Type().String(),
				Value:  fmt.Sprintf("%d elements", len(elems)),
				Span:   span,
				Source: source,
			}
		}
		for i, e := range elems {
			out.Index(i).Set(e)
		}
		return nil
	}
	sl := reflect.MakeSlice(out.Type(), len(elems), len(elems))
	for i, e := range elems {
		sl.Index(i).Set(e)
	}
	out.Set(sl)
	return nil
}

// decodeUnion reads a variant tag, then the payload shaped after the
// tag's prototype.
func (d *Decoder) decodeUnion(u Union) error {
	tagTok, err := d.next(stringTokens)
	if err != nil {
		return err
	}
	tag := tagTok.Text(d.source())
	variants := u.Variants()
	proto, ok := variants[tag]
	if !ok {
		names := make([]string, 0, len(variants))
		for name := range variants {
			names = append(names, name)
		}
		sort.Strings(names)
		return &UnknownVariantError{Variant: tag, Variants: names, Span: tagTok.Span, Source: d.source()}
	}
	var payload any
	if proto == nil {
		// unit variant: an empty payload token, or nothing at all
		tok, err := d.tok.Peek()
		if err != nil {
			return d.fail(err, stringTokens)
		}
		if tok != nil && tok.IsString() && tok.Text(d.source()) == "" {
			d.tok.Next()
		}
	} else {
		value := reflect.New(reflect.TypeOf(proto)).Elem()
		if err := d.decode(value); err != nil {
			return err
		}
		payload = value.Interface()
	}
	if err := u.SetVariant(tag, payload); err != nil {
		return &ValueError{
			Err:    err,
			Span:   Span{Start: tagTok.Span.Start, End: d.tok.LastEnd()},
			Source: d.source(),
		}
	}
	return nil
}

// decodeDynamic decodes into an Entry: at the start of the input the
// whole document loads as a table, further in a group loads as a table
// and a plain token as a value.
func (d *Decoder) decodeDynamic(out reflect.Value) error {
	tok, err := d.tok.Peek()
	if err != nil {
		return d.fail(err, validValueTokens)
	}
	if tok != nil && tok.IsString() && d.tok.Count > 1 {
		d.tok.Next()
		out.Set(reflect.ValueOf(d.tokenEntry(tok)))
		return nil
	}
	t, err := d.decodeTable()
	if err != nil {
		return err
	}
	out.Set(reflect.ValueOf(t))
	return nil
}

func (d *Decoder) tokenEntry(tok *SpannedToken) Entry {
	if tok.Token == TokenStatement {
		return Statement(tok.Text(d.source()))
	}
	return Value(tok.Text(d.source()))
}

// decodeTable loads a group into a dynamic Table, promoting repeated
// keys and same-line value runs into arrays.
func (d *Decoder) decodeTable() (Table, error) {
	toplevel, err := d.openGroup()
	if err != nil {
		return nil, err
	}
	return d.decodeTableBody(toplevel)
}

func (d *Decoder) decodeTableBody(toplevel bool) (Table, error) {
	table := Table{}
	for {
		key, err := d.nextKey(toplevel)
		if err != nil {
			return nil, err
		}
		if key == nil {
			return table, nil
		}
		name := key.Text(d.source())
		tok, err := d.next(validValueTokens)
		if err != nil {
			return nil, err
		}
		if tok.Token == TokenGroupStart {
			child, err := d.decodeTableBody(false)
			if err != nil {
				return nil, err
			}
			table.Insert(name, child)
			continue
		}
		table.Insert(name, d.tokenEntry(tok))
		// further values on the same line extend the entry
		for {
			tok, err := d.tok.Peek()
			if err != nil || tok == nil || !tok.IsString() || tok.NewlineBefore {
				break
			}
			d.tok.Next()
			table.Insert(name, d.tokenEntry(tok))
		}
	}
}

// structInfo caches what decoding needs to know about a struct type:
// which key each field answers to, where inlined fields live, and
// whether a catch-all inline map is present.
type structInfo struct {
	FieldsMap  map[string]fieldInfo
	FieldsList []fieldInfo

	// InlineMap is the index of the map field that collects keys
	// matching no other field, -1 when there is none.
	InlineMap int
}

type fieldInfo struct {
	Key string
	Num int

	// Inline holds the field index path for fields reached through
	// ,inline structs.
	Inline []int
}

var structMap sync.Map // reflect.Type -> *structInfo

func getStructInfo(st reflect.Type) (*structInfo, error) {
	if v, ok := structMap.Load(st); ok {
		return v.(*structInfo), nil
	}

	n := st.NumField()
	fieldsMap := make(map[string]fieldInfo)
	fieldsList := make([]fieldInfo, 0, n)
	inlineMap := -1
	for i := 0; i != n; i++ {
		field := st.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue // private field
		}
		tag := field.Tag.Get("vdf")
		if tag == "-" {
			continue
		}

		inline := false
		fields := strings.Split(tag, ",")
		if len(fields) > 1 {
			for _, flag := range fields[1:] {
				switch flag {
				case "inline":
					inline = true
				default:
					return nil, fmt.Errorf("vdf: unsupported flag %q in tag %q of type %s", flag, tag, st)
				}
			}
			tag = fields[0]
		}

		if inline {
			switch field.Type.Kind() {
			case reflect.Map:
				if inlineMap >= 0 {
					return nil, errors.New("vdf: multiple ,inline maps in struct " + st.String())
				}
				if field.Type.Key().Kind() != reflect.String {
					return nil, errors.New("vdf: option ,inline needs a map with string keys in struct " + st.String())
				}
				inlineMap = i
			case reflect.Struct:
				sinfo, err := getStructInfo(field.Type)
				if err != nil {
					return nil, err
				}
				for _, finfo := range sinfo.FieldsList {
					if _, found := fieldsMap[finfo.Key]; found {
						return nil, errors.New("vdf: duplicated key '" + finfo.Key + "' in struct " + st.String())
					}
					if finfo.Inline == nil {
						finfo.Inline = []int{i, finfo.Num}
					} else {
						finfo.Inline = append([]int{i}, finfo.Inline...)
					}
					fieldsMap[finfo.Key] = finfo
					fieldsList = append(fieldsList, finfo)
				}
			default:
				return nil, errors.New("vdf: option ,inline needs a struct or map value in struct " + st.String())
			}
			continue
		}

		info := fieldInfo{Num: i}
		if tag != "" {
			info.Key = tag
		} else {
			info.Key = strings.ToLower(field.Name)
		}
		if _, found := fieldsMap[info.Key]; found {
			return nil, errors.New("vdf: duplicated key '" + info.Key + "' in struct " + st.String())
		}
		fieldsList = append(fieldsList, info)
		fieldsMap[info.Key] = info
	}

	sinfo := &structInfo{
		FieldsMap:  fieldsMap,
		FieldsList: fieldsList,
		InlineMap:  inlineMap,
	}
	structMap.Store(st, sinfo)
	return sinfo, nil
}
