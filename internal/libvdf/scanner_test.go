// Copyright 2025 The go-vdf Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libvdf

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func mustNext(tok *Tokenizer) *SpannedToken {
	st, err := tok.Next()
	convey.So(err, convey.ShouldBeNil)
	convey.So(st, convey.ShouldNotBeNil)
	return st
}

func TestScanBasicTokens(t *testing.T) {
	convey.Convey("braces, bare and quoted items", t, func() {
		src := `"foo" { bar "baz qux" }`
		tok := NewTokenizer(src)

		st := mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenItem)
		convey.So(st.Text(src), convey.ShouldEqual, "foo")
		convey.So(st.Span, convey.ShouldResemble, Span{Start: 0, End: 5})

		st = mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenGroupStart)
		convey.So(st.Span, convey.ShouldResemble, Span{Start: 6, End: 7})

		st = mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenItem)
		convey.So(st.Text(src), convey.ShouldEqual, "bar")
		convey.So(st.Raw(src), convey.ShouldEqual, "bar")

		st = mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenItem)
		convey.So(st.Text(src), convey.ShouldEqual, "baz qux")
		convey.So(st.Span, convey.ShouldResemble, Span{Start: 12, End: 21})

		st = mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenGroupEnd)

		st, err := tok.Next()
		convey.So(err, convey.ShouldBeNil)
		convey.So(st, convey.ShouldBeNil)
	})
}

func TestScanBracesTerminateBareTokens(t *testing.T) {
	convey.Convey("a brace ends a bare run without whitespace", t, func() {
		src := `foo{bar}`
		tok := NewTokenizer(src)
		convey.So(mustNext(tok).Text(src), convey.ShouldEqual, "foo")
		convey.So(mustNext(tok).Token, convey.ShouldEqual, TokenGroupStart)
		convey.So(mustNext(tok).Text(src), convey.ShouldEqual, "bar")
		convey.So(mustNext(tok).Token, convey.ShouldEqual, TokenGroupEnd)
	})
}

func TestScanCommentsAndNewlines(t *testing.T) {
	convey.Convey("comments vanish, line breaks are remembered", t, func() {
		src := "// header\nfoo bar // trailing\nbaz {}"
		tok := NewTokenizer(src)

		st := mustNext(tok)
		convey.So(st.Text(src), convey.ShouldEqual, "foo")
		convey.So(st.NewlineBefore, convey.ShouldBeTrue)

		st = mustNext(tok)
		convey.So(st.Text(src), convey.ShouldEqual, "bar")
		convey.So(st.NewlineBefore, convey.ShouldBeFalse)

		st = mustNext(tok)
		convey.So(st.Text(src), convey.ShouldEqual, "baz")
		convey.So(st.NewlineBefore, convey.ShouldBeTrue)

		st = mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenGroupStart)
		convey.So(st.NewlineBefore, convey.ShouldBeFalse)
	})
}

func TestScanStatements(t *testing.T) {
	convey.Convey("bare and quoted statements keep their marker", t, func() {
		src := "#base \"other.vdf\"\n\"#ServerBrowser\" 1"
		tok := NewTokenizer(src)

		st := mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenStatement)
		convey.So(st.Text(src), convey.ShouldEqual, "#base")

		st = mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenItem)
		convey.So(st.Text(src), convey.ShouldEqual, "other.vdf")

		st = mustNext(tok)
		convey.So(st.Token, convey.ShouldEqual, TokenStatement)
		convey.So(st.Text(src), convey.ShouldEqual, "#ServerBrowser")

		st = mustNext(tok)
		convey.So(st.Text(src), convey.ShouldEqual, "1")
	})

	convey.Convey("a lone # is not a token", t, func() {
		tok := NewTokenizer("# foo")
		_, err := tok.Next()
		convey.So(err, convey.ShouldHaveSameTypeAs, &NoValidTokenError{})
		convey.So(err.(*NoValidTokenError).Span, convey.ShouldResemble, Span{Start: 0, End: 1})

		st := mustNext(tok)
		convey.So(st.Text("# foo"), convey.ShouldEqual, "foo")
	})
}

func TestScanEscapes(t *testing.T) {
	convey.Convey("quote and backslash escapes resolve, others pass through", t, func() {
		src := `"a\"b\\c" "d\ne"`
		tok := NewTokenizer(src)
		convey.So(mustNext(tok).Text(src), convey.ShouldEqual, `a"b\c`)
		convey.So(mustNext(tok).Text(src), convey.ShouldEqual, `d\ne`)
	})
}

func TestScanUnterminatedString(t *testing.T) {
	convey.Convey("an unterminated string fails with its full span", t, func() {
		tok := NewTokenizer(`x "abc`)
		convey.So(mustNext(tok).Text(`x "abc`), convey.ShouldEqual, "x")

		_, err := tok.Next()
		convey.So(err, convey.ShouldHaveSameTypeAs, &NoValidTokenError{})
		convey.So(err.(*NoValidTokenError).Span, convey.ShouldResemble, Span{Start: 2, End: 6})

		st, err := tok.Next()
		convey.So(err, convey.ShouldBeNil)
		convey.So(st, convey.ShouldBeNil)
	})
}

func TestTokenizerLookahead(t *testing.T) {
	convey.Convey("peek and push back do not re-count tokens", t, func() {
		tok := NewTokenizer("a b")

		st, err := tok.Peek()
		convey.So(err, convey.ShouldBeNil)
		convey.So(st.Text("a b"), convey.ShouldEqual, "a")
		convey.So(tok.Count, convey.ShouldEqual, 1)

		st, err = tok.Next()
		convey.So(err, convey.ShouldBeNil)
		convey.So(st.Text("a b"), convey.ShouldEqual, "a")
		convey.So(tok.Count, convey.ShouldEqual, 1)

		tok.PushBack(st)
		st, err = tok.Next()
		convey.So(err, convey.ShouldBeNil)
		convey.So(st.Text("a b"), convey.ShouldEqual, "a")
		convey.So(tok.Count, convey.ShouldEqual, 1)

		st, err = tok.Next()
		convey.So(err, convey.ShouldBeNil)
		convey.So(st.Text("a b"), convey.ShouldEqual, "b")
		convey.So(tok.Count, convey.ShouldEqual, 2)

		convey.So(tok.End(), convey.ShouldResemble, Span{Start: 3, End: 3})
	})
}
