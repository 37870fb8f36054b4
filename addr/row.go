package addr

import (
	"fmt"
	"strconv"
)

// MaxRow is the highest valid 0-based row index (Excel's 1,048,576 rows).
const MaxRow = 1_048_575

// Row is a 0-based row index. Row 0 prints as "1" in A1 notation.
type Row int

// ParseRow parses the digit portion of an A1 reference (e.g. "23") into a
// 0-based Row. Rejects empty strings, non-digit characters, "0" (A1 rows
// start at 1), and values beyond MaxRow.
func ParseRow(s string) (Row, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty row", ErrInvalidRow)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRow, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidRow, s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: row must start at 1", ErrInvalidRow)
	}
	if n-1 > MaxRow {
		return 0, fmt.Errorf("%w: %q exceeds maximum row", ErrInvalidRow, s)
	}
	return Row(n - 1), nil
}

// String renders the row as its 1-based decimal form.
func (r Row) String() string {
	return strconv.Itoa(int(r) + 1)
}

// Valid reports whether the row lies within [0, MaxRow].
func (r Row) Valid() bool {
	return r >= 0 && r <= MaxRow
}

// Clamp returns r restricted to [0, MaxRow].
func (r Row) Clamp() Row {
	return clampRange(r, 0, Row(MaxRow))
}
