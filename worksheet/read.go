package worksheet

import (
	"fmt"
	"strconv"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/internal/xmlguard"
	"github.com/sheetform/xlcore/numfmt"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/value"
)

// xmlWorksheet and friends mirror the element shapes spec.md §4.6/§6
// names, decoded straight into Decoded rather than an intermediate
// excelize-style tree.
type xmlWorksheet struct {
	Cols struct {
		Col []xmlCol `xml:"col"`
	} `xml:"cols"`
	SheetData struct {
		Row []xmlRow `xml:"row"`
	} `xml:"sheetData"`
	MergeCells struct {
		MergeCell []xmlMergeCell `xml:"mergeCell"`
	} `xml:"mergeCells"`
	Hyperlinks struct {
		Hyperlink []xmlHyperlink `xml:"hyperlink"`
	} `xml:"hyperlinks"`
}

type xmlCol struct {
	Min          int     `xml:"min,attr"`
	Max          int     `xml:"max,attr"`
	Width        float64 `xml:"width,attr"`
	CustomWidth  string  `xml:"customWidth,attr"`
	Hidden       string  `xml:"hidden,attr"`
	OutlineLevel int     `xml:"outlineLevel,attr"`
	Collapsed    string  `xml:"collapsed,attr"`
}

type xmlRow struct {
	R            int       `xml:"r,attr"`
	Ht           float64   `xml:"ht,attr"`
	CustomHeight string    `xml:"customHeight,attr"`
	Hidden       string    `xml:"hidden,attr"`
	OutlineLevel int       `xml:"outlineLevel,attr"`
	Collapsed    string    `xml:"collapsed,attr"`
	C            []xmlCell `xml:"c"`
}

type xmlCell struct {
	R string   `xml:"r,attr"`
	S int      `xml:"s,attr"`
	T string   `xml:"t,attr"`
	V string   `xml:"v"`
	F string   `xml:"f"`
	Is *xmlIs  `xml:"is"`
}

type xmlIs struct {
	T *xmlSpacedText `xml:"t"`
	R []xmlIsRun     `xml:"r"`
}

type xmlSpacedText struct {
	Value string `xml:",chardata"`
}

type xmlIsRun struct {
	RPr *struct {
		B *struct{} `xml:"b"`
		I *struct{} `xml:"i"`
	} `xml:"rPr"`
	T xmlSpacedText `xml:"t"`
}

type xmlMergeCell struct {
	Ref string `xml:"ref,attr"`
}

type xmlHyperlink struct {
	Ref string `xml:"ref,attr"`
	Id  string `xml:"id,attr"`
}

func isTrue(s string) bool { return s == "1" || s == "true" }

// Read decodes an xl/worksheets/sheet#.xml part. reg (the workbook's
// StyleRegistry) and st (the shared strings table, nil if the workbook
// has none) are needed to resolve t="s" cells and date-vs-number
// disambiguation for t="n" cells (spec.md §4.6 read contract).
func Read(data []byte, st *sst.Table, reg *style.StyleRegistry, date1904 bool) (*Decoded, error) {
	var doc xmlWorksheet
	if err := xmlguard.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("worksheet: decode: %w", err)
	}

	dc := dateChecker{reg: reg}
	out := &Decoded{
		RowProps:   make(map[addr.Row]sheet.RowProps),
		ColProps:   make(map[addr.Column]sheet.ColProps),
		Hyperlinks: make(map[addr.ARef]string),
	}

	for _, col := range doc.Cols.Col {
		p := sheet.ColProps{
			Width:        col.Width,
			CustomWidth:  isTrue(col.CustomWidth),
			Hidden:       isTrue(col.Hidden),
			OutlineLevel: col.OutlineLevel,
			Collapsed:    isTrue(col.Collapsed),
		}
		for c := col.Min; c <= col.Max; c++ {
			out.ColProps[addr.Column(c-1)] = p
		}
	}

	for _, row := range doc.SheetData.Row {
		r := addr.Row(row.R - 1)
		if row.Ht > 0 || row.CustomHeight != "" || row.Hidden != "" || row.OutlineLevel > 0 || row.Collapsed != "" {
			out.RowProps[r] = sheet.RowProps{
				Height:       row.Ht,
				CustomHeight: isTrue(row.CustomHeight),
				Hidden:       isTrue(row.Hidden),
				OutlineLevel: row.OutlineLevel,
				Collapsed:    isTrue(row.Collapsed),
			}
		}
		for _, xc := range row.C {
			cell, warn := decodeCell(xc, st, dc, date1904)
			out.Cells = append(out.Cells, cell)
			if warn != nil {
				out.Warnings = append(out.Warnings, *warn)
			}
		}
	}

	for _, mc := range doc.MergeCells.MergeCell {
		rng, err := addr.ParseCellRange(mc.Ref)
		if err != nil {
			continue
		}
		out.Merges = append(out.Merges, rng)
	}

	for _, hl := range doc.Hyperlinks.Hyperlink {
		ref, err := addr.ParseARef(hl.Ref)
		if err != nil {
			continue
		}
		out.Hyperlinks[ref] = hl.Id
	}

	return out, nil
}

// decodeCell inverts the write-side cell-type token mapping (spec.md
// §4.6). An unrecognized t token downgrades the cell to Error(#REF!) with
// a Warning rather than aborting the read (spec.md §7).
func decodeCell(xc xmlCell, st *sst.Table, dc dateChecker, date1904 bool) (sheet.Cell, *Warning) {
	ref, err := addr.ParseARef(xc.R)
	if err != nil {
		return sheet.Cell{}, nil
	}
	c := sheet.Cell{Ref: ref}
	if xc.S != 0 {
		c.StyleId = style.StyleId(xc.S)
		c.HasStyle = true
	}

	if xc.F != "" {
		c.Value = value.Formula{Expr: xc.F, Cached: decodeScalar(xc.T, xc.V, st, dc, c.StyleId, date1904)}
		return c, nil
	}

	switch xc.T {
	case "", "n":
		if xc.V == "" {
			c.Value = value.Empty{}
			return c, nil
		}
		f, perr := strconv.ParseFloat(xc.V, 64)
		if perr != nil {
			c.Value = value.Error{Code: value.ErrRef}
			return c, warningFor(ref, fmt.Errorf("%w: invalid numeric value %q", ErrUnknownCellType, xc.V))
		}
		if dc.isDate(c.StyleId) {
			t, terr := numfmt.Time(f, date1904)
			if terr == nil {
				c.Value = value.DateTime{Value: t}
				return c, nil
			}
		}
		c.Value = value.Number{Value: f, OriginalText: xc.V}
	case "s":
		idx, perr := strconv.Atoi(xc.V)
		if perr != nil || st == nil {
			c.Value = value.Error{Code: value.ErrRef}
			return c, warningFor(ref, fmt.Errorf("%w: bad shared string index %q", ErrUnknownCellType, xc.V))
		}
		entry, ok := st.Get(idx)
		if !ok {
			c.Value = value.Error{Code: value.ErrRef}
			return c, warningFor(ref, fmt.Errorf("%w: shared string index %d out of range", ErrUnknownCellType, idx))
		}
		c.Value = entry
	case "inlineStr":
		c.Value = decodeInlineString(xc.Is)
	case "b":
		c.Value = value.Bool{Value: xc.V == "1"}
	case "e":
		ec, ok := value.ParseCellError(xc.V)
		if !ok {
			c.Value = value.Error{Code: value.ErrRef}
			return c, warningFor(ref, fmt.Errorf("%w: %q", ErrUnknownCellType, xc.V))
		}
		c.Value = value.Error{Code: ec}
	case "str":
		c.Value = value.Text{Value: xc.V}
	default:
		c.Value = value.Error{Code: value.ErrRef}
		return c, warningFor(ref, fmt.Errorf("%w: %q", ErrUnknownCellType, xc.T))
	}
	return c, nil
}

func warningFor(ref addr.ARef, err error) *Warning {
	return &Warning{Ref: ref, Err: err}
}

// decodeScalar decodes a Formula's cached <v> per its t token (spec.md
// §4.6 "t follows the cached value's type").
func decodeScalar(t, v string, st *sst.Table, dc dateChecker, styleID style.StyleId, date1904 bool) value.CellValue {
	if v == "" {
		return nil
	}
	switch t {
	case "b":
		return value.Bool{Value: v == "1"}
	case "e":
		if ec, ok := value.ParseCellError(v); ok {
			return value.Error{Code: ec}
		}
		return value.Error{Code: value.ErrNA}
	case "str":
		return value.Text{Value: v}
	default:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		if dc.isDate(styleID) {
			if tm, terr := numfmt.Time(f, date1904); terr == nil {
				return value.DateTime{Value: tm}
			}
		}
		return value.Number{Value: f, OriginalText: v}
	}
}

func decodeInlineString(is *xmlIs) value.CellValue {
	if is == nil {
		return value.Text{Value: ""}
	}
	if len(is.R) == 0 {
		if is.T == nil {
			return value.Text{Value: ""}
		}
		return value.Text{Value: is.T.Value}
	}
	runs := make([]value.TextRun, 0, len(is.R))
	for _, r := range is.R {
		run := value.TextRun{Text: r.T.Value}
		if r.RPr != nil {
			run.Font = &value.RunFont{Bold: r.RPr.B != nil, Italic: r.RPr.I != nil}
		}
		runs = append(runs, run)
	}
	return value.RichText{Runs: runs}
}
