// Package worksheet implements the xl/worksheets/sheet#.xml codec: encoding
// a sheet.Sheet to its ECMA-376 worksheet XML and decoding that XML back
// (spec.md §4.6), in both an in-memory, whole-document form and a
// constant-memory streaming form (spec.md §4.7/§9 "streams instead of
// generators").
//
// Grounded on the teacher's worksheet.go, whose Worksheet.Rows(sparse
// bool) func(yield func([]Cell) bool) is the range-over-func streaming
// shape this package's StreamRows reuses; the teacher never wrote
// worksheets (pyxlsb/go-xlsb is read-only), so the write path (in-memory
// and streaming) is new, grounded on the cell-type XML shapes
// adnsv-go-xl/xl/writer.go's writeSheet emits and the dispatch-by-kind
// enumeration implicit in the teacher's own parseCellRecord/errStrings.
package worksheet

import (
	"errors"
	"fmt"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/numfmt"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/value"
)

// ErrUnknownCellType is recorded as a warning (spec.md §4.6 read contract:
// "unknown t tokens produce a ParseError that surfaces but does not abort
// the entire read") — the affected cell decodes to value.Error(#REF!)
// instead of failing the sheet.
var ErrUnknownCellType = errors.New("worksheet: unknown cell type token")

// Warning is a recoverable per-cell issue encountered while decoding a
// worksheet part; the cell itself still decodes (to Error(#REF!)) and the
// rest of the sheet parses normally (spec.md §7 propagation policy).
type Warning struct {
	Ref addr.ARef
	Err error
}

func (w Warning) Error() string {
	return fmt.Sprintf("worksheet: %s: %v", w.Ref, w.Err)
}

// CollectHyperlinks scans sh for cells carrying a non-empty Hyperlink
// target, for the caller to assign relationship ids to before calling
// Write (spec.md §12 "Hyperlinks").
func CollectHyperlinks(sh *sheet.Sheet) map[addr.ARef]string {
	out := make(map[addr.ARef]string)
	for ref, c := range sh.Range(addr.CellRange{Start: addr.NewARef(0, 0), End: addr.NewARef(addr.MaxColumn, addr.MaxRow)}) {
		if c.Hyperlink != "" {
			out[ref] = c.Hyperlink
		}
	}
	return out
}

// WriteConfig controls cell-level write behavior (spec.md §6 writer
// configuration options, the subset that worksheet-level emission needs).
type WriteConfig struct {
	// SST, when non-nil, is used for every Text/RichText cell (t="s");
	// when nil, all strings are written inline (t="inlineStr").
	SST *sst.Table
	// StrictFormulaGuard, when true, prefixes a leading single quote onto
	// any Text cell whose content starts with '=', '+', '-', or '@'
	// (spec.md §4.6 "Formula-injection guardrail (opt-in)").
	StrictFormulaGuard bool
	// Date1904 selects which epoch DateTime values serialize against
	// (spec.md §9 "1904 date system").
	Date1904 bool
	// Pretty, when true, indents the emitted XML (spec.md §6
	// pretty_print).
	Pretty bool
	// HyperlinkRIDs maps each hyperlinked cell to the relationship id the
	// caller (container) has already assigned it in the worksheet's
	// accompanying .rels part. Write emits a <hyperlinks> entry for every
	// key present here; a sheet with hyperlinked cells but a nil map here
	// silently drops them, so the caller must populate it whenever
	// sheet.Cell.Hyperlink is set anywhere in the sheet.
	HyperlinkRIDs map[addr.ARef]string
}

// Decoded is the result of parsing one worksheet part: its cells, merges,
// and row/column properties, ready to be folded into a sheet.Sheet by the
// caller (container), which already owns sheet construction and the
// shared StyleRegistry.
type Decoded struct {
	Cells      []sheet.Cell
	Merges     []addr.CellRange
	RowProps   map[addr.Row]sheet.RowProps
	ColProps   map[addr.Column]sheet.ColProps
	Hyperlinks map[addr.ARef]string // ARef -> relationship id, resolved by the container layer
	Warnings   []Warning
}

// dateChecker resolves, for a given style.StyleId, whether that style's
// number format is a date/time format — the read path needs this to
// decide whether a t="n" cell's float decodes to value.Number or
// value.DateTime (spec.md §3's CellValue keeps them distinct even though
// OOXML itself stores both as a plain number plus a display format).
type dateChecker struct {
	reg *style.StyleRegistry
}

func (d dateChecker) isDate(id style.StyleId) bool {
	if d.reg == nil {
		return false
	}
	cs, ok := d.reg.Get(id)
	if !ok {
		return false
	}
	switch cs.NumFmt.Kind {
	case style.NumFmtBuiltIn:
		numFmtID := cs.NumFmt.ID
		if cs.NumFmtID != nil {
			numFmtID = *cs.NumFmtID
		}
		return numfmt.IsDateFormat(numFmtID, "")
	case style.NumFmtCustom:
		id := 0
		if cs.NumFmtID != nil {
			id = *cs.NumFmtID
		}
		return numfmt.IsDateFormat(id, cs.NumFmt.Code)
	}
	return false
}
