// Copyright (C) 2025 Brigham Skarda

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package uci

import (
	"bytes"
	"strconv"
	"strings"
)

// fieldCursor walks the whitespace-separated fields of one engine-output
// line. The command parsers in this package all follow the same shape:
// scan forward for a recognized keyword, consume however many following
// fields that keyword takes, repeat. fieldCursor carries the scan
// position so a parser never has to juggle a token slice and a manual
// index together.
type fieldCursor struct {
	fields [][]byte
	pos    int
}

func newFieldCursor(line []byte) *fieldCursor {
	return &fieldCursor{fields: bytes.Fields(line)}
}

// seek advances the cursor to just past the first remaining field that
// case-insensitively matches key, reporting whether it found one.
func (c *fieldCursor) seek(key string) bool {
	for ; c.pos < len(c.fields); c.pos++ {
		if bytes.EqualFold(c.fields[c.pos], []byte(key)) {
			c.pos++
			return true
		}
	}
	return false
}

func (c *fieldCursor) done() bool {
	return c.pos >= len(c.fields)
}

// peek returns the field at the cursor without consuming it, or nil past
// the end.
func (c *fieldCursor) peek() []byte {
	if c.done() {
		return nil
	}
	return c.fields[c.pos]
}

// next consumes and returns the field at the cursor, or nil past the
// end.
func (c *fieldCursor) next() []byte {
	if c.done() {
		return nil
	}
	f := c.fields[c.pos]
	c.pos++
	return f
}

// keywordSet is a case-insensitive membership test for the keywords that
// terminate a run of takeUntilKeyword.
type keywordSet map[string]struct{}

func newKeywordSet(words ...string) keywordSet {
	s := make(keywordSet, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

func (s keywordSet) has(field []byte) bool {
	_, ok := s[strings.ToLower(string(field))]
	return ok
}

// takeUntilKeyword consumes fields from the cursor up to (but not
// including) the next one in stop, and returns them rejoined with single
// spaces. Used for the multi-word values the UCI protocol allows inside
// an option line (a name, a non-string default, a var entry), which run
// until whatever keyword comes next.
func (c *fieldCursor) takeUntilKeyword(stop keywordSet) string {
	start := c.pos
	for !c.done() && !stop.has(c.fields[c.pos]) {
		c.pos++
	}
	return string(bytes.Join(c.fields[start:c.pos], []byte(" ")))
}

// rest consumes and returns every remaining field, rejoined with single
// spaces. Used for values that run to the end of the line regardless of
// what they contain, such as a string-typed option's default or an
// "info string" payload.
func (c *fieldCursor) rest() string {
	s := string(bytes.Join(c.fields[c.pos:], []byte(" ")))
	c.pos = len(c.fields)
	return s
}

// parseUintField parses f as a non-negative base-10 integer. ok is false
// if f is nil or not a valid number.
func parseUintField(f []byte) (v uint, ok bool) {
	if f == nil {
		return 0, false
	}
	n, err := strconv.ParseUint(string(f), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// parseIntField parses f as a signed base-10 integer. ok is false if f is
// nil or not a valid number.
func parseIntField(f []byte) (v int, ok bool) {
	if f == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(string(f), 10, 0)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
