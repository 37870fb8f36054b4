package style

import "fmt"

// StyleId is an opaque index into a workbook's StyleRegistry. Id 0 is
// always the workbook default style (spec.md §3).
type StyleId int

// DefaultStyleId is reserved for the workbook's default, unstyled cell.
const DefaultStyleId StyleId = 0

// CellStyle is the fully resolved formatting for one cell (spec.md §3).
// NumFmtID, when non-nil, is the raw OOXML numFmtId read from source and
// takes priority on write for byte-exact preservation; it is cleared by
// SetNumFmt.
type CellStyle struct {
	Font      Font
	Fill      Fill
	Border    Border
	NumFmt    NumFmt
	NumFmtID  *int
	Alignment Alignment
}

// SetNumFmt replaces NumFmt and clears any preserved raw NumFmtID, per
// spec.md §3's invariant that "changing numFmt via the normal setter
// clears numFmtId".
func (s CellStyle) SetNumFmt(nf NumFmt) CellStyle {
	s.NumFmt = nf
	s.NumFmtID = nil
	return s
}

// canonicalKey returns the deduplication key for s. It deliberately omits
// NumFmtID (spec.md §3: "the canonical key of a style does not include
// numFmtId; two styles visually equivalent under different format ids
// deduplicate to one entry"). fmt.Sprintf("%#v", ...) gives a stable,
// field-order-deterministic string for any Go value here since every field
// reachable from CellStyle is a plain value or pointer-to-plain-value, not
// a map — the one case (comparing *Color/*int contents rather than
// pointer identity) is why we dereference before formatting.
func (s CellStyle) canonicalKey() string {
	font := s.Font
	font.Color = nil
	fontColor := derefColor(s.Font.Color)

	fill := s.Fill
	fillFG := derefColor(&s.Fill.FG)
	fillBG := derefColor(&s.Fill.BG)
	fillSolid := derefColor(&s.Fill.Solid)

	return fmt.Sprintf(
		"font:%#v,%v|fill:%#v,%v,%v,%v|border:%s|numfmt:%#v|align:%#v",
		font, fontColor,
		fill, fillFG, fillBG, fillSolid,
		s.Border.key(),
		s.NumFmt,
		s.Alignment,
	)
}

func derefColor(c *Color) Color {
	if c == nil {
		return Color{}
	}
	return *c
}

// key returns a value-equality key for f, since Font embeds *Color and Go's
// struct equality on a pointer field compares identity, not the pointee —
// wrong for dedup purposes.
func (f Font) key() string {
	return fmt.Sprintf("%s|%v|%v|%v|%v|%v", f.Name, f.Size, f.Bold, f.Italic, f.Underline, derefColor(f.Color))
}

// key returns a value-equality key for fl, for the same reason Font.key
// exists (Fill embeds Color values directly, but FG/BG/Solid comparisons
// should be by value regardless, and keeping a single string-keyed dedup
// path across Font/Fill/Border keeps the registry's intern logic uniform).
func (fl Fill) key() string {
	return fmt.Sprintf("%v|%v|%v|%v|%v", fl.Kind, fl.Solid, fl.Pattern, fl.FG, fl.BG)
}

// key returns a value-equality key for b, since BorderSide embeds *Color.
func (b Border) key() string {
	return fmt.Sprintf("%v,%v|%v,%v|%v,%v|%v,%v",
		b.Left.Style, derefColor(b.Left.Color),
		b.Right.Style, derefColor(b.Right.Color),
		b.Top.Style, derefColor(b.Top.Color),
		b.Bottom.Style, derefColor(b.Bottom.Color))
}
