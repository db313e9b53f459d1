// SPDX-License-Identifier: MIT
package ast

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// Literal is a typed attribute value: Number, String, List or Range.
	Literal interface {
		literal()
		String() string
	}

	// Number is an unsigned 32-bit integer literal.
	Number uint32

	// String is a double-quoted string literal, without the quotes.
	String string

	// List is a bracketed sequence of literals, possibly nested.
	List []Literal

	// Range is a numeric interval; a nil End marks an open-ended range.
	Range struct {
		Start uint32
		End   *uint32
	}
)

func (Number) literal() {}
func (String) literal() {}
func (List) literal()   {}
func (Range) literal()  {}

// ClosedRange instantiates a Range with both endpoints.
func ClosedRange(start, end uint32) Range { return Range{Start: start, End: &end} }

// OpenRange instantiates a Range without an end.
func OpenRange(start uint32) Range { return Range{Start: start} }

func (n Number) String() string { return strconv.FormatUint(uint64(n), 10) }

func (s String) String() string { return string(s) }

func (l List) String() string {
	var buffer strings.Builder

	buffer.WriteByte('[')
	for index, item := range l {
		if index > 0 {
			buffer.WriteString(", ")
		}
		buffer.WriteString(item.String())
	}
	buffer.WriteByte(']')

	return buffer.String()
}

func (r Range) String() string {
	start := strconv.FormatUint(uint64(r.Start), 10)
	if r.End == nil {
		return start + ".."
	}

	return start + ".." + strconv.FormatUint(uint64(*r.End), 10)
}

// IsOpen reports whether the Range lacks an end.
func (r Range) IsOpen() bool { return r.End == nil }

// Contains reports whether n lies within the Range, both endpoints are inclusive.
func (r Range) Contains(n uint32) bool {
	return n >= r.Start && (r.End == nil || n <= *r.End)
}

// Expand lists the Range's values in ascending order.
//
// Values above limit are omitted; open ranges stop at limit.
func (r Range) Expand(limit uint32) (values []uint32) {
	end := limit
	if r.End != nil && *r.End < limit {
		end = *r.End
	}
	if r.Start > end {
		return
	}

	values = make([]uint32, 0, end-r.Start+1)
	for n := r.Start; ; n++ {
		values = append(values, n)
		if n == end {
			break
		}
	}

	return
}

// EqualLiteral reports whether two literals are structurally equal.
func EqualLiteral(a, b Literal) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case List:
		y, ok := b.(List)
		return ok && slices.EqualFunc(x, y, EqualLiteral)
	case Range:
		y, ok := b.(Range)
		if !ok || x.Start != y.Start || x.IsOpen() != y.IsOpen() {
			return false
		}
		return x.IsOpen() || *x.End == *y.End
	default:
		return a == nil && b == nil
	}
}
