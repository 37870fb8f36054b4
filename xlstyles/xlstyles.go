// Package xlstyles implements the xl/styles.xml codec: encoding a
// style.StyleRegistry to its ECMA-376 styleSheet XML and decoding that XML
// back into a registry (spec.md §4.5). Struct shapes for the underlying
// elements are grounded on mochen302-excelize/xmlStyles.go
// (xlsxStyleSheet/xlsxFont/xlsxFill/xlsxBorder/...); the write order and
// numFmtId selection rule are grounded on the teacher's
// workbook.parseStyleTable/styles.BuiltInNumFmt pairing, generalized from a
// read-only BIFF12 walk to a full read+write XML codec.
package xlstyles

import "github.com/sheetform/xlcore/style"

const styleSheetNamespace = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// borderStyleNames maps style.BorderStyle to the OOXML style= token used on
// <left>/<right>/<top>/<bottom>. Grounded on mochen302-excelize/xmlStyles.go's
// xlsxLine.Style field and ECMA-376 §18.18.3's enumeration; this model only
// distinguishes the subset style.BorderStyle names.
var borderStyleNames = map[style.BorderStyle]string{
	style.BorderThin:   "thin",
	style.BorderMedium: "medium",
	style.BorderThick:  "thick",
	style.BorderDashed: "dashed",
	style.BorderDotted: "dotted",
	style.BorderDouble: "double",
}

var borderStyleValues = func() map[string]style.BorderStyle {
	m := make(map[string]style.BorderStyle, len(borderStyleNames))
	for k, v := range borderStyleNames {
		m[v] = k
	}
	return m
}()

// parseBorderStyle maps an OOXML style= token back to style.BorderStyle.
// Tokens this model does not distinguish (hair, mediumDashed, slantDashDot,
// ...) fall back to BorderThin, the closest visible approximation, since
// style.Border has no slot to preserve the original token.
func parseBorderStyle(s string) style.BorderStyle {
	if s == "" {
		return style.BorderNone
	}
	if bs, ok := borderStyleValues[s]; ok {
		return bs
	}
	return style.BorderThin
}
