// SPDX-License-Identifier: NONE
package types

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type (
	// Slice is a sortable slice of ordered values.
	Slice[T constraints.Ordered] []T
)

// Locate the index of val in the Slice, -1 if absent.
func (sl *Slice[T]) Locate(val T) (resl int) { return slices.Index(*sl, val) }

// Sort the Slice in ascending order.
func (sl *Slice[T]) Sort() { slices.Sort(*sl) }

// Compact sorts the Slice & removes duplicate values.
func (sl *Slice[T]) Compact() {
	sl.Sort()
	*sl = slices.Compact(*sl)
}

// UniqueAppend to the Slice, skipping values already present.
func (sl *Slice[T]) UniqueAppend(values ...T) {
	for index := range values {
		if sl.Locate(values[index]) > -1 {
			continue
		}

		*sl = append(*sl, values[index])
	}
}

// Join formats the Slice's values separated by sep.
func (sl *Slice[T]) Join(sep string) string {
	var buffer strings.Builder
	for index := range *sl {
		if index > 0 {
			buffer.WriteString(sep)
		}
		fmt.Fprint(&buffer, (*sl)[index])
	}

	return buffer.String()
}

// String is the fmt.Stringer interface implementation for Slice.
func (sl *Slice[T]) String() string { return "[" + sl.Join(",") + "]" }
