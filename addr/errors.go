// Package addr implements the addressing layer: columns, rows, absolute cell
// references, cell ranges, and sheet names, with A1-notation parsing and
// printing. Every function here is pure and total — parsing never panics,
// it returns one of the error values below.
package addr

import "errors"

// Parse error taxonomy (spec.md §4.1 / §7).
var (
	ErrInvalidColumn     = errors.New("addr: invalid column")
	ErrInvalidRow        = errors.New("addr: invalid row")
	ErrInvalidCellRef    = errors.New("addr: invalid cell reference")
	ErrInvalidRange      = errors.New("addr: invalid cell range")
	ErrInvalidSheetName  = errors.New("addr: invalid sheet name")
	ErrOutOfBounds       = errors.New("addr: value out of bounds")
)
