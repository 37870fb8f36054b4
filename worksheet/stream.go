package worksheet

import (
	"encoding/xml"
	"io"

	srwxml "github.com/adnsv/srw/xml"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/internal/xmlguard"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
	"github.com/sheetform/xlcore/style"
)

// Row is one decoded <row>, yielded by StreamRows a row at a time rather
// than collected into a Decoded (spec.md §4.7/§9 "streaming mode: constant
// memory with respect to sheet size").
type Row struct {
	Index    addr.Row
	Cells    []sheet.Cell
	Props    sheet.RowProps
	HasProps bool
}

// StreamRows returns a range-over-func iterator pulling <row> elements one
// at a time out of r, decoding each through the same decodeCell/decodeScalar
// helpers Read uses so a streamed read matches Read's results cell for
// cell. A decode error for the whole document, or a recoverable per-cell
// Warning, is delivered through the same yield with a zero Row; returning
// false from yield stops the scan early (the caller closed its result
// early, e.g. after finding what it needed).
//
// Grounded on the teacher's Worksheet.Rows(sparse bool) func(yield
// func([]Cell) bool): this reuses that range-over-func streaming shape,
// generalized from BIFF12 record scanning to XML token scanning, since the
// teacher's binary format has no direct analogue to decoding one XML
// subtree at a time.
//
// <cols>, <mergeCells>, and <hyperlinks> are small, whole-sheet elements
// rather than ones that scale with row count, so they are not part of the
// streaming contract; a caller needing them uses Read.
func StreamRows(r io.Reader, st *sst.Table, reg *style.StyleRegistry, date1904 bool) func(yield func(Row, error) bool) {
	return func(yield func(Row, error) bool) {
		dec, err := xmlguard.NewStreamDecoder(r)
		if err != nil {
			yield(Row{}, err)
			return
		}
		dc := dateChecker{reg: reg}
		for {
			tok, terr := dec.Token()
			if terr == io.EOF {
				return
			}
			if terr != nil {
				yield(Row{}, terr)
				return
			}
			se, ok := tok.(xml.StartElement)
			if !ok || se.Name.Local != "row" {
				continue
			}
			var xr xmlRow
			if derr := dec.DecodeElement(&xr, &se); derr != nil {
				if !yield(Row{}, derr) {
					return
				}
				continue
			}
			if !yieldRow(xr, st, dc, date1904, yield) {
				return
			}
		}
	}
}

func yieldRow(xr xmlRow, st *sst.Table, dc dateChecker, date1904 bool, yield func(Row, error) bool) bool {
	row := Row{Index: addr.Row(xr.R - 1)}
	if xr.Ht > 0 || xr.CustomHeight != "" || xr.Hidden != "" || xr.OutlineLevel > 0 || xr.Collapsed != "" {
		row.HasProps = true
		row.Props = sheet.RowProps{
			Height:       xr.Ht,
			CustomHeight: isTrue(xr.CustomHeight),
			Hidden:       isTrue(xr.Hidden),
			OutlineLevel: xr.OutlineLevel,
			Collapsed:    isTrue(xr.Collapsed),
		}
	}
	for _, xc := range xr.C {
		cell, warn := decodeCell(xc, st, dc, date1904)
		row.Cells = append(row.Cells, cell)
		if warn != nil {
			if !yield(Row{}, *warn) {
				return false
			}
		}
	}
	return yield(row, nil)
}

// StreamWriter emits an xl/worksheets/sheet#.xml part incrementally, one
// row at a time, so a caller pulling rows from e.g. a database cursor or a
// patch-replay never holds more than one row in memory (spec.md §4.7/§9
// streaming write). Grounded on adnsv-go-xl/xl/writer.go's writeSheet,
// split into Open/WriteRow/Close so the <sheetData> body can be fed
// incrementally instead of built from a fully materialized Sheet.
type StreamWriter struct {
	x    *srwxml.Writer
	w    io.Writer
	cfg  WriteConfig
	sh   *sheet.Sheet
	open bool
}

// NewStreamWriter opens the worksheet element, <dimension>, <sheetViews>,
// <sheetFormatPr>, and <cols> (all whole-sheet, bounded-size sections),
// then the <sheetData> open tag, and returns a StreamWriter ready for
// WriteRow calls. sh supplies dimension, column, row-property, and merge
// metadata; its Rows are not consulted — callers stream cells through
// WriteRow instead.
func NewStreamWriter(w io.Writer, sh *sheet.Sheet, cfg WriteConfig) *StreamWriter {
	x := srwxml.NewWriter(w, indentFor(cfg))
	x.XmlStandaloneDecl()

	x.OTag("worksheet")
	x.Attr("xmlns", worksheetNamespace)
	x.Attr("xmlns:r", relsNamespace)

	if dim, ok := sh.Dimension(); ok {
		x.OTag("+dimension").Attr("ref", dim.String()).CTag()
	}

	x.OTag("+sheetViews")
	x.OTag("+sheetView").Attr("workbookViewId", 0).CTag()
	x.CTag()

	x.OTag("+sheetFormatPr").Attr("defaultRowHeight", defaultOr(sh.DefaultRowHeight, 15)).CTag()

	writeCols(x, sh)
	x.OTag("+sheetData")

	return &StreamWriter{x: x, w: w, cfg: cfg, sh: sh, open: true}
}

// WriteRow emits one <row>. Rows must arrive in ascending row order;
// StreamWriter does not buffer or reorder them, matching the non-streaming
// Write's row-then-column emission order.
func (sw *StreamWriter) WriteRow(r addr.Row, cells []sheet.Cell) {
	writeRow(sw.x, sw.w, r, cells, sw.sh, sw.cfg)
}

// Close finishes </sheetData>, emits <mergeCells> from sh, and closes
// </worksheet>. Calling Close more than once is a no-op.
func (sw *StreamWriter) Close() error {
	if !sw.open {
		return nil
	}
	sw.x.CTag() // sheetData
	writeMergeCells(sw.x, sw.sh)
	sw.x.CTag() // worksheet
	sw.open = false
	return nil
}
