package worksheet

import (
	"bytes"
	"io"
	"sort"
	"strconv"

	"github.com/adnsv/srw/xml"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/numfmt"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
	"github.com/sheetform/xlcore/value"
)

const worksheetNamespace = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
const relsNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// Write renders sh as an xl/worksheets/sheet#.xml part (spec.md §4.6):
// <dimension>, minimal <sheetViews>, <sheetFormatPr>, optional <cols>,
// <sheetData>, optional <mergeCells>. Cells are pre-sorted once by (row,
// col) rather than re-sorted per row, per spec.md §4.6's "avoid O(n log n)
// per-row re-sorts" guidance — sh.Rows() already returns cells in that
// order a row at a time, so Write just walks it.
//
// Grounded on adnsv-go-xl/xl/writer.go's writeSheet, generalized from a
// single default style + no-merge-cells sheet to the full cell-type
// dispatch, <cols> span grouping, and merge emission spec.md §4.6
// requires.
func Write(sh *sheet.Sheet, cfg WriteConfig) []byte {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, indentFor(cfg))
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
	writeSheetData(x, &bb, sh, cfg)
	writeMergeCells(x, sh)
	writeHyperlinks(x, cfg)

	x.CTag() // worksheet
	return bb.Bytes()
}

// writeHyperlinks emits <hyperlinks>, each entry referencing the
// relationship id the container layer already assigned and wrote into the
// worksheet's .rels part (spec.md §12 "Hyperlinks"). Refs are sorted so
// output does not depend on map iteration order.
func writeHyperlinks(x *xml.Writer, cfg WriteConfig) {
	if len(cfg.HyperlinkRIDs) == 0 {
		return
	}
	refs := make([]addr.ARef, 0, len(cfg.HyperlinkRIDs))
	for ref := range cfg.HyperlinkRIDs {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })

	x.OTag("+hyperlinks")
	for _, ref := range refs {
		x.OTag("+hyperlink").Attr("ref", ref.String()).Attr("r:id", cfg.HyperlinkRIDs[ref]).CTag()
	}
	x.CTag()
}

func indentFor(cfg WriteConfig) xml.WriterConfig {
	if cfg.Pretty {
		return xml.WriterConfig{Indent: xml.Indent2Spaces}
	}
	return xml.WriterConfig{}
}

func defaultOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// writeCols groups contiguous columns sharing identical properties into
// <col min=.. max=..> spans (spec.md §4.6 "<cols> groups contiguous
// columns sharing identical properties").
func writeCols(x *xml.Writer, sh *sheet.Sheet) {
	cols := definedColumns(sh)
	if len(cols) == 0 {
		return
	}
	x.OTag("+cols")
	i := 0
	for i < len(cols) {
		j := i + 1
		for j < len(cols) && cols[j].col == cols[i].col+addr.Column(j-i) && cols[j].props == cols[i].props {
			j++
		}
		p := cols[i].props
		x.OTag("+col")
		x.Attr("min", int(cols[i].col)+1)
		x.Attr("max", int(cols[j-1].col)+1)
		if p.Width > 0 {
			x.Attr("width", p.Width)
		}
		if p.CustomWidth {
			x.Attr("customWidth", 1)
		}
		if p.Hidden {
			x.Attr("hidden", 1)
		}
		if p.OutlineLevel > 0 {
			x.Attr("outlineLevel", p.OutlineLevel)
		}
		if p.Collapsed {
			x.Attr("collapsed", 1)
		}
		x.CTag()
		i = j
	}
	x.CTag()
}

type colEntry struct {
	col   addr.Column
	props sheet.ColProps
}

func definedColumns(sh *sheet.Sheet) []colEntry {
	var cols []colEntry
	for c := addr.Column(0); c <= addr.MaxColumn; c++ {
		if p, ok := sh.ColProps(c); ok {
			cols = append(cols, colEntry{col: c, props: p})
		}
	}
	return cols
}

// writeSheetData emits <sheetData>, one <row> per row carrying a cell or
// explicit RowProps (spec.md §4.6 "rows present only in rowProperties ...
// are still emitted"), cells ascending by column within each row.
func writeSheetData(x *xml.Writer, w io.Writer, sh *sheet.Sheet, cfg WriteConfig) {
	x.OTag("+sheetData")

	rowSet := map[addr.Row]bool{}
	for r := range sh.Rows() {
		rowSet[r] = true
	}
	// collect rows that carry explicit RowProps but no cells too.
	allRows := make([]addr.Row, 0, len(rowSet))
	for r := range rowSet {
		allRows = append(allRows, r)
	}
	extraRows := extraPropRows(sh, rowSet)
	allRows = append(allRows, extraRows...)
	sort.Slice(allRows, func(i, j int) bool { return allRows[i] < allRows[j] })

	rowCells := map[addr.Row][]sheet.Cell{}
	for r, cells := range sh.Rows() {
		rowCells[r] = cells
	}

	for _, r := range allRows {
		cells := rowCells[r]
		writeRow(x, w, r, cells, sh, cfg)
	}
	x.CTag()
}

func extraPropRows(sh *sheet.Sheet, have map[addr.Row]bool) []addr.Row {
	var out []addr.Row
	// RowProps is only queryable by key, not enumerable directly, so every
	// valid row index is probed, the same way definedColumns probes every
	// column.
	for r := addr.Row(0); r <= addr.MaxRow; r++ {
		if have[r] {
			continue
		}
		if _, ok := sh.RowProps(r); ok {
			out = append(out, r)
			have[r] = true
		}
	}
	return out
}

func writeRow(x *xml.Writer, w io.Writer, r addr.Row, cells []sheet.Cell, sh *sheet.Sheet, cfg WriteConfig) {
	x.OTag("+row")
	x.Attr("r", int(r)+1)
	if len(cells) > 0 {
		x.Attr("spans", spansAttr(cells))
	}
	if p, ok := sh.RowProps(r); ok {
		if p.Height > 0 {
			x.Attr("ht", p.Height)
		}
		if p.CustomHeight {
			x.Attr("customHeight", 1)
		}
		if p.Hidden {
			x.Attr("hidden", 1)
		}
		if p.OutlineLevel > 0 {
			x.Attr("outlineLevel", p.OutlineLevel)
		}
		if p.Collapsed {
			x.Attr("collapsed", 1)
		}
	}
	for _, c := range cells {
		writeCell(x, w, c, sh, cfg)
	}
	x.CTag()
}

func spansAttr(cells []sheet.Cell) string {
	min, max := cells[0].Ref.Column(), cells[0].Ref.Column()
	for _, c := range cells[1:] {
		if c.Ref.Column() < min {
			min = c.Ref.Column()
		}
		if c.Ref.Column() > max {
			max = c.Ref.Column()
		}
	}
	return strconv.Itoa(int(min)+1) + ":" + strconv.Itoa(int(max)+1)
}

func writeCell(x *xml.Writer, w io.Writer, c sheet.Cell, sh *sheet.Sheet, cfg WriteConfig) {
	_, isEmpty := c.Value.(value.Empty)
	if c.Value == nil {
		isEmpty = true
	}
	if isEmpty && !c.HasStyle {
		return
	}

	o := x.OTag("+c")
	o.Attr("r", c.Ref.String())
	if c.HasStyle {
		o.Attr("s", int(c.StyleId))
	}

	if isEmpty {
		x.CTag()
		return
	}

	switch v := c.Value.(type) {
	case value.Text:
		writeTextCell(x, v, cfg)
	case value.RichText:
		writeRichTextCell(x, w, v, cfg)
	case value.Number:
		x.Attr("t", "n")
		x.OTag("v").Write(numberText(v)).CTag()
	case value.DateTime:
		x.Attr("t", "n")
		serial := numfmt.Serial(v.Value, cfg.Date1904)
		x.OTag("v").Write(formatFloat(serial)).CTag()
	case value.Bool:
		x.Attr("t", "b")
		x.OTag("v").Write(boolText(v.Value)).CTag()
	case value.Formula:
		x.OTag("f").Write(v.Expr).CTag()
		if v.Cached != nil {
			if _, empty := v.Cached.(value.Empty); !empty {
				x.Attr("t", formulaCachedToken(v.Cached))
				x.OTag("v").Write(cachedValueText(v.Cached)).CTag()
			}
		}
	case value.Error:
		x.Attr("t", "e")
		x.OTag("v").Write(v.Code.String()).CTag()
	}
	x.CTag() // c
}

func cachedValueText(v value.CellValue) string {
	switch x := v.(type) {
	case value.Number:
		return numberText(x)
	case value.Bool:
		return boolText(x.Value)
	case value.Error:
		return x.Code.String()
	case value.Text:
		return x.Value
	case value.RichText:
		return plainTextOf(x)
	default:
		return ""
	}
}

func plainTextOf(rt value.RichText) string {
	var b bytes.Buffer
	for _, r := range rt.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func writeTextCell(x *xml.Writer, v value.Text, cfg WriteConfig) {
	text := guardText(v.Value, cfg)
	if sstOrInline(cfg) {
		x.Attr("t", "s")
		idx := internSST(cfg, value.Text{Value: text})
		x.OTag("v").Write(idx).CTag()
		return
	}
	x.Attr("t", "inlineStr")
	x.OTag("+is")
	writeInlineText(x, "t", text)
	x.CTag()
}

// writeRichTextCell writes a RichText value either as an SST reference or,
// on the inline <is> path, as the same <r>/<rPr>/<t> shape the shared
// strings table emits — including the RawProps-verbatim and full-Font
// rules spec.md §4.4 states generally for rich-text runs, not just for SST
// entries (spec.md §4.6 treats the SST-reference and inline renderings as
// equivalent views of the same RichText value). Delegates to
// [sst.WriteRun] so both emission sites share one implementation instead
// of the inline path re-deriving a partial (Bold/Italic-only, RawProps-
// blind) rPr of its own.
func writeRichTextCell(x *xml.Writer, w io.Writer, v value.RichText, cfg WriteConfig) {
	if sstOrInline(cfg) {
		x.Attr("t", "s")
		idx := internSST(cfg, v)
		x.OTag("v").Write(idx).CTag()
		return
	}
	x.Attr("t", "inlineStr")
	x.OTag("+is")
	for _, run := range v.Runs {
		sst.WriteRun(x, w, run)
	}
	x.CTag()
}

func writeInlineText(x *xml.Writer, tag, text string) {
	o := x.OTag(tag)
	if needsPreserveSpace(text) {
		o.Attr("xml:space", "preserve")
	}
	o.Write(text).CTag()
}

func needsPreserveSpace(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == ' ' || s[0] == '\t' || s[len(s)-1] == ' ' || s[len(s)-1] == '\t' {
		return true
	}
	for i := 0; i+1 < len(s); i++ {
		if s[i] == ' ' && s[i+1] == ' ' {
			return true
		}
	}
	return false
}

// writeMergeCells enumerates merges in row-then-column order (spec.md
// §4.6 "<mergeCells> enumerates ranges in row-then-column order").
func writeMergeCells(x *xml.Writer, sh *sheet.Sheet) {
	merges := append([]addr.CellRange(nil), sh.Merges()...)
	if len(merges) == 0 {
		return
	}
	sort.Slice(merges, func(i, j int) bool { return merges[i].Start.Less(merges[j].Start) })
	x.OTag("+mergeCells").Attr("count", len(merges))
	for _, m := range merges {
		x.OTag("+mergeCell").Attr("ref", m.String()).CTag()
	}
	x.CTag()
}
