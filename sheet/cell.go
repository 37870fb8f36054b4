// Package sheet holds the in-memory Workbook/Sheet/Cell model patches are
// applied to, independent of any on-disk encoding.
package sheet

import (
	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/value"
)

// Cell pairs a value with its optional style, comment, and hyperlink
// (spec.md §3). A Cell is never stored for an Empty, unstyled, commentless,
// linkless key — the sheet's cell map is sparse and an absent key reads
// back as Empty.
type Cell struct {
	Ref       addr.ARef
	Value     value.CellValue
	StyleId   style.StyleId
	HasStyle  bool
	Comment   string
	Hyperlink string
}

// IsEmpty reports whether the cell carries no value, style, comment, or
// hyperlink — i.e. it is indistinguishable from an absent key and need not
// be stored.
func (c Cell) IsEmpty() bool {
	if c.HasStyle || c.Comment != "" || c.Hyperlink != "" {
		return false
	}
	_, isEmptyValue := c.Value.(value.Empty)
	return c.Value == nil || isEmptyValue
}
