// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libvdf

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func mustEvent(r *Reader) *Event {
	ev, err := r.Event()
	convey.So(err, convey.ShouldBeNil)
	convey.So(ev, convey.ShouldNotBeNil)
	return ev
}

func TestReaderEvents(t *testing.T) {
	convey.Convey("nested groups produce balanced events", t, func() {
		r := NewReader("\"root\"\n{\n\t\"a\" \"1\"\n\t\"b\"\n\t{\n\t\t\"c\" \"2\"\n\t}\n}\n")

		name, err := mustEvent(r).AsGroupStart()
		convey.So(err, convey.ShouldBeNil)
		convey.So(name.Content, convey.ShouldEqual, "root")

		key, value, err := mustEvent(r).AsEntry()
		convey.So(err, convey.ShouldBeNil)
		convey.So(key.Content, convey.ShouldEqual, "a")
		convey.So(value.Content, convey.ShouldEqual, "1")

		name, err = mustEvent(r).AsGroupStart()
		convey.So(err, convey.ShouldBeNil)
		convey.So(name.Content, convey.ShouldEqual, "b")

		key, value, err = mustEvent(r).AsEntry()
		convey.So(err, convey.ShouldBeNil)
		convey.So(key.Content, convey.ShouldEqual, "c")
		convey.So(value.Content, convey.ShouldEqual, "2")

		convey.So(mustEvent(r).AsGroupEnd(), convey.ShouldBeNil)
		convey.So(mustEvent(r).AsGroupEnd(), convey.ShouldBeNil)

		ev, err := r.Event()
		convey.So(err, convey.ShouldBeNil)
		convey.So(ev, convey.ShouldBeNil)
	})
}

func TestReaderValueContinuation(t *testing.T) {
	convey.Convey("extra same-line values continue the entry", t, func() {
		r := NewReader("a 1 2\nb 3")

		ev := mustEvent(r)
		convey.So(ev.Kind, convey.ShouldEqual, EventEntry)
		convey.So(ev.Key.Content, convey.ShouldEqual, "a")
		convey.So(ev.Value.Content, convey.ShouldEqual, "1")

		ev = mustEvent(r)
		convey.So(ev.Kind, convey.ShouldEqual, EventValueContinuation)
		convey.So(ev.Value.Content, convey.ShouldEqual, "2")

		ev = mustEvent(r)
		convey.So(ev.Kind, convey.ShouldEqual, EventEntry)
		convey.So(ev.Key.Content, convey.ShouldEqual, "b")
		convey.So(ev.Value.Content, convey.ShouldEqual, "3")
	})
}

func TestReaderEventSpans(t *testing.T) {
	convey.Convey("entry spans run from key to value", t, func() {
		src := `"key" "value"`
		r := NewReader(src)
		ev := mustEvent(r)
		convey.So(ev.Span, convey.ShouldResemble, Span{Start: 0, End: 13})
		convey.So(ev.Key.Span, convey.ShouldResemble, Span{Start: 0, End: 5})
		convey.So(ev.Value.Span, convey.ShouldResemble, Span{Start: 6, End: 13})
	})
}

func TestReaderWrongEventType(t *testing.T) {
	convey.Convey("accessors reject the wrong kind", t, func() {
		r := NewReader("a { }")
		ev := mustEvent(r)
		_, _, err := ev.AsEntry()
		convey.So(err, convey.ShouldHaveSameTypeAs, &WrongEventTypeError{})
		convey.So(err.(*WrongEventTypeError).Found, convey.ShouldEqual, EventGroupStart)
	})
}

func TestReaderMissingValue(t *testing.T) {
	convey.Convey("a key without a value fails at end of input", t, func() {
		r := NewReader("orphan")
		_, err := r.Event()
		convey.So(err, convey.ShouldHaveSameTypeAs, &UnexpectedTokenError{})
		e := err.(*UnexpectedTokenError)
		convey.So(e.Found, convey.ShouldBeNil)
		convey.So(e.Span, convey.ShouldResemble, Span{Start: 6, End: 6})
	})
}

func TestItemTo(t *testing.T) {
	convey.Convey("items convert to typed values", t, func() {
		var n int
		convey.So(Item{Content: "42"}.To(&n), convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, 42)

		var b bool
		convey.So(Item{Content: "1"}.To(&b), convey.ShouldBeNil)
		convey.So(b, convey.ShouldBeTrue)

		err := Item{Content: "nope", Span: Span{Start: 3, End: 7}}.To(&n)
		convey.So(err, convey.ShouldHaveSameTypeAs, &ParseItemError{})
		convey.So(err.(*ParseItemError).Item.Span, convey.ShouldResemble, Span{Start: 3, End: 7})
	})
}
