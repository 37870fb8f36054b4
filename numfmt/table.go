// Package numfmt owns the built-in numFmtId table, date-format detection,
// and the Excel-serial/time.Time conversion pair that the styles and
// worksheet codecs need to preserve and interpret numFmtId/format-code
// values on read and write. It does not render display strings; turning a
// cell's value and format into the text a spreadsheet application would
// show is a consuming application's concern (spec.md §8 example 3), not
// something any SPEC_FULL.md operation calls for.
package numfmt

// BuiltIn maps built-in numFmtId values (0–49) to their canonical format
// strings as defined by ECMA-376 §18.8.30. IDs not present in this map are
// built-in IDs whose format string is locale-dependent or otherwise not
// representable as a static string. Sourced verbatim from the teacher's
// styles.BuiltInNumFmt table (styles/styles.go).
var BuiltIn = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `($#,##0_);($#,##0)`,
	6:  `($#,##0_);[Red]($#,##0)`,
	7:  `($#,##0.00_);($#,##0.00)`,
	8:  `($#,##0.00_);[Red]($#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "MM-DD-YY",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: `(#,##0_);(#,##0)`,
	38: `(#,##0_);[Red](#,##0)`,
	39: `(#,##0.00_);(#,##0.00)`,
	40: `(#,##0.00_);[Red](#,##0.00)`,
	41: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	42: `_($* #,##0_);_($* (#,##0);_($* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	44: `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

// FirstCustomID is the lowest numFmtId available for custom formats; every
// id below it is either a built-in ECMA-376 format or reserved.
const FirstCustomID = 164
