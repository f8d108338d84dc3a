// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reader_test

import (
	"testing"

	. "gopkg.in/check.v1"

	"github.com/SummerRolf/sigil/ast"
	"github.com/SummerRolf/sigil/reader"
)

// Test hooks gocheck into go test, the same dual testify/go-check split the
// teacher keeps between its ordinary packages and cue/parser's grammar
// suite.
func Test(t *testing.T) { TestingT(t) }

type ReaderSuite struct{}

var _ = Suite(&ReaderSuite{})

func (s *ReaderSuite) TestOddLengthMapLiteralErrors(c *C) {
	_, err := reader.ReadOne("t", `{:a 1 :b}`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, ".*even number.*")
}

func (s *ReaderSuite) TestEvenLengthMapLiteralParses(c *C) {
	f, err := reader.ReadOne("t", `{:a 1 :b 2}`)
	c.Assert(err, IsNil)
	m, ok := f.(*ast.Map)
	c.Assert(ok, Equals, true)
	c.Check(m.Items, HasLen, 4)
}

func (s *ReaderSuite) TestEOFInsideStringErrors(c *C) {
	_, err := reader.ReadOne("t", `"unterminated`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, ".*unterminated string.*")
}

func (s *ReaderSuite) TestEOFInsideListErrors(c *C) {
	_, err := reader.ReadOne("t", `(a b`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, `.*unexpected EOF.*`)
}

func (s *ReaderSuite) TestEOFInsideVectorErrors(c *C) {
	_, err := reader.ReadOne("t", `[1 2`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, `.*unexpected EOF.*`)
}

func (s *ReaderSuite) TestEOFInsideMapErrors(c *C) {
	_, err := reader.ReadOne("t", `{:a 1`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, `.*unexpected EOF.*`)
}

func (s *ReaderSuite) TestEOFInsideSetErrors(c *C) {
	_, err := reader.ReadOne("t", `#{1 2`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, `.*unexpected EOF.*`)
}

func (s *ReaderSuite) TestStringEscapes(c *C) {
	f, err := reader.ReadOne("t", `"a\nb\\c\"d"`)
	c.Assert(err, IsNil)
	str, ok := f.(*ast.String)
	c.Assert(ok, Equals, true)
	c.Check(str.Value, Equals, "a\nb\\c\"d")
}

func (s *ReaderSuite) TestStringInvalidEscapeErrors(c *C) {
	_, err := reader.ReadOne("t", `"bad\qescape"`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, `.*invalid escape sequence.*`)
}

func (s *ReaderSuite) TestQuoteSugar(c *C) {
	f, err := reader.ReadOne("t", `'x`)
	c.Assert(err, IsNil)
	c.Check(headSymbol(c, f), Equals, "quote")
}

func (s *ReaderSuite) TestQuasiquoteSugar(c *C) {
	f, err := reader.ReadOne("t", "`x")
	c.Assert(err, IsNil)
	c.Check(headSymbol(c, f), Equals, "quasiquote")
}

func (s *ReaderSuite) TestUnquoteSugar(c *C) {
	f, err := reader.ReadOne("t", `~x`)
	c.Assert(err, IsNil)
	c.Check(headSymbol(c, f), Equals, "unquote")
}

func (s *ReaderSuite) TestSpliceUnquoteSugar(c *C) {
	f, err := reader.ReadOne("t", `~@x`)
	c.Assert(err, IsNil)
	c.Check(headSymbol(c, f), Equals, "splice-unquote")
}

func (s *ReaderSuite) TestDerefSugar(c *C) {
	f, err := reader.ReadOne("t", `@x`)
	c.Assert(err, IsNil)
	c.Check(headSymbol(c, f), Equals, "deref")
}

func (s *ReaderSuite) TestNamespacedKeyword(c *C) {
	f, err := reader.ReadOne("t", `:ns/name`)
	c.Assert(err, IsNil)
	kw, ok := f.(*ast.Keyword)
	c.Assert(ok, Equals, true)
	c.Check(kw.Namespace, Equals, "ns")
	c.Check(kw.Name, Equals, "name")
}

func (s *ReaderSuite) TestUnsupportedReaderMacroErrors(c *C) {
	_, err := reader.ReadOne("t", `#foo`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, `.*unsupported reader macro.*`)
}

func (s *ReaderSuite) TestNumberOverflowErrors(c *C) {
	_, err := reader.ReadOne("t", `99999999999999999999`)
	c.Assert(err, NotNil)
	c.Check(err, ErrorMatches, `.*overflows.*`)
}

func (s *ReaderSuite) TestDivisionSymbolIsNotANamespaceSeparator(c *C) {
	f, err := reader.ReadOne("t", `/`)
	c.Assert(err, IsNil)
	sym, ok := f.(*ast.Symbol)
	c.Assert(ok, Equals, true)
	c.Check(sym.Namespace, Equals, "")
	c.Check(sym.Name, Equals, "/")
}

// headSymbol extracts the Name of the symbol heading a List, the shape
// every reader-sugar form expands to.
func headSymbol(c *C, f ast.Form) string {
	l, ok := f.(*ast.List)
	c.Assert(ok, Equals, true)
	c.Assert(l.Items, HasLen, 2)
	sym, ok := l.Items[0].(*ast.Symbol)
	c.Assert(ok, Equals, true)
	return sym.Name
}
