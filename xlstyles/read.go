package xlstyles

import (
	"fmt"
	"strconv"

	"github.com/sheetform/xlcore/internal/xmlguard"
	"github.com/sheetform/xlcore/numfmt"
	"github.com/sheetform/xlcore/style"
)

// xmlStyleSheet and friends mirror mochen302-excelize/xmlStyles.go's
// xlsxStyleSheet/xlsxFont/xlsxFill/xlsxBorder/xlsxColor/xlsxAlignment
// shapes, decoded straight into this package's own struct tree rather than
// an intermediate excelize type, and re-expressed over a hardened decoder
// (internal/xmlguard) per spec.md §4.7.
type xmlStyleSheet struct {
	NumFmts struct {
		NumFmt []xmlNumFmt `xml:"numFmt"`
	} `xml:"numFmts"`
	Fonts struct {
		Font []xmlFont `xml:"font"`
	} `xml:"fonts"`
	Fills struct {
		Fill []xmlFill `xml:"fill"`
	} `xml:"fills"`
	Borders struct {
		Border []xmlBorder `xml:"border"`
	} `xml:"borders"`
	CellXfs struct {
		Xf []xmlXf `xml:"xf"`
	} `xml:"cellXfs"`
}

type xmlNumFmt struct {
	NumFmtId   int    `xml:"numFmtId,attr"`
	FormatCode string `xml:"formatCode,attr"`
}

type xmlFont struct {
	B     *struct{}  `xml:"b"`
	I     *struct{}  `xml:"i"`
	U     *struct{}  `xml:"u"`
	Sz    *xmlValF   `xml:"sz"`
	Color *xmlColor  `xml:"color"`
	Name  *xmlValS   `xml:"name"`
}

type xmlValF struct {
	Val float64 `xml:"val,attr"`
}

type xmlValS struct {
	Val string `xml:"val,attr"`
}

type xmlColor struct {
	RGB   string  `xml:"rgb,attr"`
	Theme *int    `xml:"theme,attr"`
	Tint  float64 `xml:"tint,attr"`
}

type xmlFill struct {
	PatternFill struct {
		PatternType string    `xml:"patternType,attr"`
		FgColor     *xmlColor `xml:"fgColor"`
		BgColor     *xmlColor `xml:"bgColor"`
	} `xml:"patternFill"`
}

type xmlBorder struct {
	Left   xmlBorderSide `xml:"left"`
	Right  xmlBorderSide `xml:"right"`
	Top    xmlBorderSide `xml:"top"`
	Bottom xmlBorderSide `xml:"bottom"`
}

type xmlBorderSide struct {
	Style string    `xml:"style,attr"`
	Color *xmlColor `xml:"color"`
}

type xmlXf struct {
	NumFmtId       int             `xml:"numFmtId,attr"`
	FontId         int             `xml:"fontId,attr"`
	FillId         int             `xml:"fillId,attr"`
	BorderId       int             `xml:"borderId,attr"`
	ApplyAlignment string          `xml:"applyAlignment,attr"`
	Alignment      *xmlAlignment   `xml:"alignment"`
}

type xmlAlignment struct {
	Horizontal string `xml:"horizontal,attr"`
	Vertical   string `xml:"vertical,attr"`
	WrapText   string `xml:"wrapText,attr"`
	Indent     string `xml:"indent,attr"`
}

// Read decodes an xl/styles.xml part into a fresh style.StyleRegistry,
// reproducing spec.md §4.5's read contract: each <xf> resolves its numFmt
// by id against the union of the part's own <numFmts> and numfmt.BuiltIn;
// an id outside both falls back to style.General but the original id is
// retained in CellStyle.NumFmtID so a later write reproduces it
// byte-for-byte (spec.md §4.5 "retain the original id... write will
// reproduce it byte-for-byte").
//
// Grounded on workbook/workbook.go's parseStyleTable (BrtFmt/BrtXF
// walking, the inCellXfs-vs-cellStyleXfs distinction), re-expressed over
// encoding/xml tokens instead of BIFF12 records; element shapes are
// grounded on mochen302-excelize/xmlStyles.go.
func Read(data []byte) (*style.StyleRegistry, error) {
	var doc xmlStyleSheet
	if err := xmlguard.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("xlstyles: decode: %w", err)
	}

	customByID := make(map[int]string, len(doc.NumFmts.NumFmt))
	for _, nf := range doc.NumFmts.NumFmt {
		customByID[nf.NumFmtId] = nf.FormatCode
	}

	fonts := make([]style.Font, 0, len(doc.Fonts.Font))
	for _, f := range doc.Fonts.Font {
		fonts = append(fonts, decodeFont(f))
	}
	fills := make([]style.Fill, 0, len(doc.Fills.Fill))
	for _, f := range doc.Fills.Fill {
		fills = append(fills, decodeFill(f))
	}
	borders := make([]style.Border, 0, len(doc.Borders.Border))
	for _, b := range doc.Borders.Border {
		borders = append(borders, decodeBorder(b))
	}

	reg := style.NewRegistry()
	for _, xf := range doc.CellXfs.Xf {
		cs := style.CellStyle{}
		if xf.FontId >= 0 && xf.FontId < len(fonts) {
			cs.Font = fonts[xf.FontId]
		}
		if xf.FillId >= 0 && xf.FillId < len(fills) {
			cs.Fill = fills[xf.FillId]
		}
		if xf.BorderId >= 0 && xf.BorderId < len(borders) {
			cs.Border = borders[xf.BorderId]
		}
		cs.NumFmt, cs.NumFmtID = decodeNumFmt(xf.NumFmtId, customByID)
		if xf.Alignment != nil {
			cs.Alignment = decodeAlignment(*xf.Alignment)
		}
		reg.Intern(cs)
	}
	return reg, nil
}

// decodeNumFmt resolves a raw numFmtId per spec.md §4.5's read contract
// and always returns the id itself in the second return value, since the
// read side must retain it regardless of whether it resolved to a known
// format (for byte-exact write-back).
func decodeNumFmt(id int, custom map[int]string) (style.NumFmt, *int) {
	rawID := id
	if code, ok := custom[id]; ok {
		return style.Custom(code), &rawID
	}
	if code, ok := numfmt.BuiltIn[id]; ok {
		if code == "" {
			return style.General, &rawID
		}
		return style.BuiltIn(id), &rawID
	}
	return style.General, &rawID
}

func decodeFont(f xmlFont) style.Font {
	var out style.Font
	out.Bold = f.B != nil
	out.Italic = f.I != nil
	out.Underline = f.U != nil
	if f.Sz != nil {
		out.Size = f.Sz.Val
	}
	if f.Name != nil {
		out.Name = f.Name.Val
	}
	if f.Color != nil {
		c := decodeColor(f.Color)
		out.Color = &c
	}
	return out
}

func decodeFill(f xmlFill) style.Fill {
	pf := f.PatternFill
	switch pf.PatternType {
	case "", "none":
		return style.Fill{Kind: style.FillNone}
	case "solid":
		out := style.Fill{Kind: style.FillSolid}
		if pf.FgColor != nil {
			out.Solid = decodeColor(pf.FgColor)
		}
		return out
	default:
		out := style.Fill{Kind: style.FillPattern, Pattern: style.PatternType(pf.PatternType)}
		if pf.FgColor != nil {
			out.FG = decodeColor(pf.FgColor)
		}
		if pf.BgColor != nil {
			out.BG = decodeColor(pf.BgColor)
		}
		return out
	}
}

func decodeBorder(b xmlBorder) style.Border {
	return style.Border{
		Left:   decodeBorderSide(b.Left),
		Right:  decodeBorderSide(b.Right),
		Top:    decodeBorderSide(b.Top),
		Bottom: decodeBorderSide(b.Bottom),
	}
}

func decodeBorderSide(s xmlBorderSide) style.BorderSide {
	side := style.BorderSide{Style: parseBorderStyle(s.Style)}
	if s.Color != nil {
		c := decodeColor(s.Color)
		side.Color = &c
	}
	return side
}

func decodeColor(c *xmlColor) style.Color {
	if c.Theme != nil {
		return style.Theme(*c.Theme, c.Tint)
	}
	var argb uint32
	if c.RGB != "" {
		if v, err := strconv.ParseUint(c.RGB, 16, 32); err == nil {
			argb = uint32(v)
		}
	}
	return style.RGB(argb)
}

func decodeAlignment(a xmlAlignment) style.Alignment {
	out := style.Alignment{
		Horizontal: style.HorizontalAlign(a.Horizontal),
		Vertical:   style.VerticalAlign(a.Vertical),
	}
	if a.WrapText == "1" || a.WrapText == "true" {
		out.WrapText = true
	}
	if a.Indent != "" {
		if v, err := strconv.Atoi(a.Indent); err == nil {
			out.Indent = v
		}
	}
	return out
}
