package addr

import (
	"fmt"
	"strings"
)

// CellRange is a normalized rectangular range: Start <= End in (row, col)
// lexicographic order (spec.md §3 "CellRange").
type CellRange struct {
	Start ARef
	End   ARef
}

// NewCellRange builds a normalized range from two (possibly unordered)
// corners, so "C5:A2" and "A2:C5" construct the identical value.
func NewCellRange(a, b ARef) CellRange {
	c1, r1 := a.Column(), a.Row()
	c2, r2 := b.Column(), b.Row()
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return CellRange{Start: NewARef(c1, r1), End: NewARef(c2, r2)}
}

// ParseCellRange parses "A1:B3" or a single reference "A1" (which parses as
// "A1:A1"). The result is always normalized.
func ParseCellRange(s string) (CellRange, error) {
	parts := strings.SplitN(s, ":", 2)
	start, err := ParseARef(parts[0])
	if err != nil {
		return CellRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	if len(parts) == 1 {
		return CellRange{Start: start, End: start}, nil
	}
	end, err := ParseARef(parts[1])
	if err != nil {
		return CellRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	return NewCellRange(start, end), nil
}

// String renders the range as "A1:C5", or just "A1" when it is a single
// cell (Print is the total inverse of ParseCellRange up to that
// single-cell/degenerate-range ambiguity, which is intentional — both forms
// round-trip to the same normalized CellRange).
func (r CellRange) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}

// Contains reports whether ref lies within the range, inclusive.
func (r CellRange) Contains(ref ARef) bool {
	c, row := ref.Column(), ref.Row()
	return c >= r.Start.Column() && c <= r.End.Column() &&
		row >= r.Start.Row() && row <= r.End.Row()
}

// Intersects reports whether the two ranges share at least one cell.
func (r CellRange) Intersects(o CellRange) bool {
	if r.End.Column() < o.Start.Column() || r.Start.Column() > o.End.Column() {
		return false
	}
	if r.End.Row() < o.Start.Row() || r.Start.Row() > o.End.Row() {
		return false
	}
	return true
}

// Normalize is idempotent: renormalizing an already-normalized range is a
// no-op (spec.md §8 "Range normalization").
func (r CellRange) Normalize() CellRange {
	return NewCellRange(r.Start, r.End)
}

// Width returns the number of columns spanned.
func (r CellRange) Width() int {
	return int(r.End.Column()) - int(r.Start.Column()) + 1
}

// Height returns the number of rows spanned.
func (r CellRange) Height() int {
	return int(r.End.Row()) - int(r.Start.Row()) + 1
}
