package xlstyles

import (
	"bytes"
	"fmt"

	"github.com/adnsv/srw/xml"

	"github.com/sheetform/xlcore/style"
)

// Write renders reg as an xl/styles.xml part, in the element order Excel
// readers require (spec.md §4.5): numFmts (custom only), fonts, fills,
// borders, cellStyleXfs, cellXfs, cellStyles, dxfs, tableStyles. Grounded on
// adnsv-go-xl/xl/writer.go's writeStyles, generalized from a single fixed
// default xf to full multi-style registry emission.
func Write(reg *style.StyleRegistry) []byte {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("styleSheet")
	x.Attr("xmlns", styleSheetNamespace)

	writeNumFmts(x, reg)
	writeFonts(x, reg)
	writeFills(x, reg)
	writeBorders(x, reg)
	writeCellStyleXfs(x)
	writeCellXfs(x, reg)
	writeCellStyles(x)
	writeDxfs(x)
	writeTableStyles(x)

	x.CTag()
	return bb.Bytes()
}

func writeNumFmts(x *xml.Writer, reg *style.StyleRegistry) {
	custom := reg.CustomNumFmts()
	if len(custom) == 0 {
		return
	}
	x.OTag("+numFmts").Attr("count", len(custom))
	for i, nf := range custom {
		x.OTag("+numFmt")
		x.Attr("numFmtId", reg.CustomNumFmtID(i))
		x.Attr("formatCode", nf.Code)
		x.CTag()
	}
	x.CTag()
}

func writeFonts(x *xml.Writer, reg *style.StyleRegistry) {
	fonts := reg.Fonts()
	x.OTag("+fonts").Attr("count", len(fonts))
	for _, f := range fonts {
		x.OTag("+font")
		if f.Bold {
			x.OTag("b").CTag()
		}
		if f.Italic {
			x.OTag("i").CTag()
		}
		if f.Underline {
			x.OTag("u").CTag()
		}
		size := f.Size
		if size == 0 {
			size = 11
		}
		x.OTag("sz").Attr("val", size).CTag()
		if f.Color != nil {
			writeColor(x, "color", f.Color)
		}
		name := f.Name
		if name == "" {
			name = "Calibri"
		}
		x.OTag("name").Attr("val", name).CTag()
		x.CTag()
	}
	x.CTag()
}

func writeFills(x *xml.Writer, reg *style.StyleRegistry) {
	fills := reg.Fills()
	x.OTag("+fills").Attr("count", len(fills))
	for _, f := range fills {
		x.OTag("+fill")
		x.OTag("patternFill")
		switch f.Kind {
		case style.FillNone:
			x.Attr("patternType", "none")
		case style.FillSolid:
			x.Attr("patternType", "solid")
			writeColor(x, "fgColor", &f.Solid)
		case style.FillPattern:
			x.Attr("patternType", string(f.Pattern))
			writeColor(x, "fgColor", &f.FG)
			writeColor(x, "bgColor", &f.BG)
		}
		x.CTag() // patternFill
		x.CTag() // fill
	}
	x.CTag()
}

func writeBorders(x *xml.Writer, reg *style.StyleRegistry) {
	borders := reg.Borders()
	x.OTag("+borders").Attr("count", len(borders))
	for _, b := range borders {
		x.OTag("+border")
		writeBorderSide(x, "left", b.Left)
		writeBorderSide(x, "right", b.Right)
		writeBorderSide(x, "top", b.Top)
		writeBorderSide(x, "bottom", b.Bottom)
		x.OTag("+diagonal").CTag()
		x.CTag()
	}
	x.CTag()
}

func writeBorderSide(x *xml.Writer, tag string, side style.BorderSide) {
	if side.Style == style.BorderNone {
		x.OTag("+" + tag).CTag()
		return
	}
	x.OTag("+" + tag)
	x.Attr("style", borderStyleNames[side.Style])
	if side.Color != nil {
		writeColor(x, "color", side.Color)
	}
	x.CTag()
}

func writeColor(x *xml.Writer, tag string, c *style.Color) {
	o := x.OTag(tag)
	if c.Kind == style.ColorTheme {
		o.Attr("theme", c.ThemeSlot)
		if c.Tint != 0 {
			o.Attr("tint", c.Tint)
		}
	} else {
		o.Attr("rgb", fmt.Sprintf("%08X", c.ARGB))
	}
	o.CTag()
}

// writeCellStyleXfs emits the single master xf every workbook carries at
// cellStyleXfs index 0, matching adnsv-go-xl/xl/writer.go's writeStyles.
func writeCellStyleXfs(x *xml.Writer) {
	x.OTag("+cellStyleXfs").Attr("count", 1)
	x.OTag("+xf")
	x.Attr("numFmtId", 0)
	x.Attr("fontId", 0)
	x.Attr("fillId", 0)
	x.Attr("borderId", 0)
	x.CTag()
	x.CTag()
}

func writeCellXfs(x *xml.Writer, reg *style.StyleRegistry) {
	styles := reg.Styles()
	x.OTag("+cellXfs").Attr("count", len(styles))
	for _, s := range styles {
		x.OTag("+xf")
		x.Attr("numFmtId", numFmtIDFor(reg, s))
		x.Attr("fontId", reg.FontIndex(s.Font))
		x.Attr("fillId", reg.FillIndex(s.Fill))
		x.Attr("borderId", reg.BorderIndex(s.Border))
		x.Attr("xfId", 0)
		if !s.Alignment.IsDefault() {
			x.Attr("applyAlignment", 1)
			x.OTag("alignment")
			if s.Alignment.Horizontal != style.HAlignDefault {
				x.Attr("horizontal", string(s.Alignment.Horizontal))
			}
			if s.Alignment.Vertical != style.VAlignDefault {
				x.Attr("vertical", string(s.Alignment.Vertical))
			}
			if s.Alignment.WrapText {
				x.Attr("wrapText", 1)
			}
			if s.Alignment.Indent != 0 {
				x.Attr("indent", s.Alignment.Indent)
			}
			x.CTag()
		}
		x.CTag()
	}
	x.CTag()
}

// numFmtIDFor picks the numFmtId written for s's xf, in the priority order
// spec.md §4.5 mandates: a preserved raw id first, then the built-in id for
// s.NumFmt, then the id the registry assigned s's custom format code.
func numFmtIDFor(reg *style.StyleRegistry, s style.CellStyle) int {
	if s.NumFmtID != nil {
		return *s.NumFmtID
	}
	switch s.NumFmt.Kind {
	case style.NumFmtBuiltIn:
		return s.NumFmt.ID
	case style.NumFmtCustom:
		for i, nf := range reg.CustomNumFmts() {
			if nf.Code == s.NumFmt.Code {
				return reg.CustomNumFmtID(i)
			}
		}
	}
	return 0
}

// writeCellStyles emits the single "Normal" named style every workbook
// carries, referencing cellStyleXfs index 0.
func writeCellStyles(x *xml.Writer) {
	x.OTag("+cellStyles").Attr("count", 1)
	x.OTag("+cellStyle")
	x.Attr("name", "Normal")
	x.Attr("xfId", 0)
	x.Attr("builtinId", 0)
	x.CTag()
	x.CTag()
}

func writeDxfs(x *xml.Writer) {
	x.OTag("+dxfs").Attr("count", 0)
	x.CTag()
}

func writeTableStyles(x *xml.Writer) {
	x.OTag("+tableStyles")
	x.Attr("count", 0)
	x.Attr("defaultTableStyle", "TableStyleMedium9")
	x.Attr("defaultPivotStyle", "PivotStyleLight16")
	x.CTag()
}
