package addr

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// MaxColumn is the highest valid 0-based column index (Excel's XFD, 16384
// columns).
const MaxColumn = 16383

// Column is a 0-based column index. Column 0 prints as "A" in A1 notation.
type Column int

// ParseColumn parses the letter portion of an A1 reference (e.g. "BC") into
// a 0-based Column. Parsing is case-insensitive; printing is always
// uppercase. An empty string, a non-letter rune, or an index beyond
// MaxColumn is rejected.
func ParseColumn(s string) (Column, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty column", ErrInvalidColumn)
	}
	acc := 0
	for _, r := range s {
		var v int
		switch {
		case r >= 'A' && r <= 'Z':
			v = int(r-'A') + 1
		case r >= 'a' && r <= 'z':
			v = int(r-'a') + 1
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, s)
		}
		acc = acc*26 + v
		if acc-1 > MaxColumn {
			return 0, fmt.Errorf("%w: %q exceeds maximum column", ErrInvalidColumn, s)
		}
	}
	return Column(acc - 1), nil
}

// String renders the column as uppercase A1 letters ("A", "Z", "AA", ...).
func (c Column) String() string {
	n := int(c) + 1
	if n < 1 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// Valid reports whether the column lies within [0, MaxColumn].
func (c Column) Valid() bool {
	return c >= 0 && c <= MaxColumn
}

// clampRange clamps v into [lo, hi], generic over any ordered integer type.
// Grounded on adnsv-go-xl's use of golang.org/x/exp/constraints for small
// generic numeric helpers.
func clampRange[T constraints.Integer](v, lo, hi T) T {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Clamp returns c restricted to [0, MaxColumn].
func (c Column) Clamp() Column {
	return clampRange(c, 0, Column(MaxColumn))
}

