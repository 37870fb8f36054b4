package style

// HorizontalAlign enumerates the horizontal alignment values OOXML's
// <alignment horizontal="..."> attribute can take.
type HorizontalAlign string

const (
	HAlignDefault HorizontalAlign = ""
	HAlignLeft    HorizontalAlign = "left"
	HAlignCenter  HorizontalAlign = "center"
	HAlignRight   HorizontalAlign = "right"
	HAlignFill    HorizontalAlign = "fill"
	HAlignJustify HorizontalAlign = "justify"
)

// VerticalAlign enumerates the vertical alignment values OOXML's
// <alignment vertical="..."> attribute can take.
type VerticalAlign string

const (
	VAlignDefault VerticalAlign = ""
	VAlignTop     VerticalAlign = "top"
	VAlignCenter  VerticalAlign = "center"
	VAlignBottom  VerticalAlign = "bottom"
)

// Alignment is the subset of cell alignment spec.md §3 models: horizontal,
// vertical, wrapText, indent. The zero value means "no alignment override",
// which xlstyles omits entirely from the written <xf> (no <alignment>
// child and no applyAlignment attribute), mirroring mochen302-excelize's
// xlsxAlignment "omitempty" field tags.
type Alignment struct {
	Horizontal HorizontalAlign
	Vertical   VerticalAlign
	WrapText   bool
	Indent     int
}

// IsDefault reports whether a has no alignment override set.
func (a Alignment) IsDefault() bool {
	return a.Horizontal == HAlignDefault && a.Vertical == VAlignDefault && !a.WrapText && a.Indent == 0
}
