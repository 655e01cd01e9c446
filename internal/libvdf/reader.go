// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Reader pulls structural events out of the token stream: group starts,
// group ends, key/value entries and same-line value continuations.

package libvdf

import "fmt"

// EventKind identifies the kind of a structural event.
type EventKind int

const (
	// EventGroupStart reports that a named group is starting.
	EventGroupStart EventKind = iota
	// EventGroupEnd reports that a group has ended.
	EventGroupEnd
	// EventEntry reports a key/value pair.
	EventEntry
	// EventValueContinuation reports an additional value on the same
	// line as the previous entry, extending it into an array.
	EventValueContinuation

	eventNone EventKind = -1
)

func (k EventKind) String() string {
	switch k {
	case EventGroupStart:
		return "group start"
	case EventGroupEnd:
		return "group end"
	case EventEntry:
		return "entry"
	case EventValueContinuation:
		return "value continuation"
	}
	return "unknown event"
}

// Item is the decoded text of an Item or Statement token together with
// its location.
type Item struct {
	Content   string
	Span      Span
	Statement bool
}

// To converts the item's content to the type pointed to by out.
func (i Item) To(out any) error {
	if err := parseInto(i.Content, out); err != nil {
		if pe, ok := err.(*ParseStringError); ok {
			return &ParseItemError{Type: pe.Type, Item: i}
		}
		return err
	}
	return nil
}

// Event is a structural event. Which fields are meaningful depends on
// Kind: Name for group starts, Key and Value for entries, Value alone
// for value continuations.
type Event struct {
	Kind  EventKind
	Name  Item
	Key   Item
	Value Item
	Span  Span
}

// AsGroupStart returns the group name, or a *WrongEventTypeError if the
// event is not a group start.
func (e *Event) AsGroupStart() (Item, error) {
	if e.Kind != EventGroupStart {
		return Item{}, &WrongEventTypeError{Expected: EventGroupStart, Found: e.Kind, Span: e.Span}
	}
	return e.Name, nil
}

// AsGroupEnd reports a *WrongEventTypeError if the event is not a group
// end.
func (e *Event) AsGroupEnd() error {
	if e.Kind != EventGroupEnd {
		return &WrongEventTypeError{Expected: EventGroupEnd, Found: e.Kind, Span: e.Span}
	}
	return nil
}

// AsEntry returns the key and value, or a *WrongEventTypeError if the
// event is not an entry.
func (e *Event) AsEntry() (key, value Item, err error) {
	if e.Kind != EventEntry {
		return Item{}, Item{}, &WrongEventTypeError{Expected: EventEntry, Found: e.Kind, Span: e.Span}
	}
	return e.Key, e.Value, nil
}

func (e *Event) String() string {
	switch e.Kind {
	case EventGroupStart:
		return fmt.Sprintf("group start %q", e.Name.Content)
	case EventGroupEnd:
		return "group end"
	case EventEntry:
		return fmt.Sprintf("entry %q = %q", e.Key.Content, e.Value.Content)
	case EventValueContinuation:
		return fmt.Sprintf("value continuation %q", e.Value.Content)
	}
	return "unknown event"
}

var (
	validKeyTokens   = []Token{TokenItem, TokenStatement, TokenGroupEnd}
	validValueTokens = []Token{TokenItem, TokenStatement, TokenGroupStart}
)

// Reader reads structural events from source text.
type Reader struct {
	tok       *Tokenizer
	lastEvent EventKind
}

// NewReader returns a reader over source.
func NewReader(source string) *Reader {
	return &Reader{tok: NewTokenizer(source), lastEvent: eventNone}
}

// Source returns the full source text.
func (r *Reader) Source() string {
	return r.tok.Source()
}

func (r *Reader) item(tok *SpannedToken) Item {
	return Item{
		Content:   tok.Text(r.Source()),
		Span:      tok.Span,
		Statement: tok.Token == TokenStatement,
	}
}

// Event returns the next structural event. At end of input both results
// are nil.
func (r *Reader) Event() (*Event, error) {
	ev, err := r.event()
	if ev != nil && err == nil {
		r.lastEvent = ev.Kind
	}
	return ev, err
}

func (r *Reader) event() (*Event, error) {
	tok, err := r.tok.Next()
	if err != nil {
		e := err.(*NoValidTokenError)
		e.Expected, e.Source = validKeyTokens, r.Source()
		return nil, e
	}
	if tok == nil {
		return nil, nil
	}
	if tok.Token == TokenGroupEnd {
		return &Event{Kind: EventGroupEnd, Span: tok.Span}, nil
	}
	if !tok.IsString() {
		found := tok.Token
		return nil, &UnexpectedTokenError{Expected: validKeyTokens, Found: &found, Span: tok.Span, Source: r.Source()}
	}
	key := r.item(tok)

	// a further value on the line of the previous entry extends it
	lastHasValue := r.lastEvent == EventEntry || r.lastEvent == EventValueContinuation
	if lastHasValue && !tok.NewlineBefore {
		return &Event{Kind: EventValueContinuation, Value: key, Span: tok.Span}, nil
	}

	tok, err = r.tok.Next()
	if err != nil {
		e := err.(*NoValidTokenError)
		e.Expected, e.Source = validValueTokens, r.Source()
		return nil, e
	}
	if tok == nil {
		return nil, &UnexpectedTokenError{Expected: validValueTokens, Span: r.tok.End(), Source: r.Source()}
	}
	switch tok.Token {
	case TokenGroupStart:
		return &Event{Kind: EventGroupStart, Name: key, Span: tok.Span}, nil
	case TokenGroupEnd:
		found := tok.Token
		return nil, &UnexpectedTokenError{Expected: validValueTokens, Found: &found, Span: tok.Span, Source: r.Source()}
	}
	value := r.item(tok)
	return &Event{
		Kind:  EventEntry,
		Key:   key,
		Value: value,
		Span:  Span{Start: key.Span.Start, End: value.Span.End},
	}, nil
}
