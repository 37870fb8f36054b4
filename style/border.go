package style

// BorderStyle enumerates the line styles a border side can take
// (spec.md §3).
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderThick
	BorderDashed
	BorderDotted
	BorderDouble
)

// BorderSide is one edge of a cell border: a style plus an optional color.
type BorderSide struct {
	Style BorderStyle
	Color *Color
}

// Border is the four-sided cell border (spec.md §3). The zero value is no
// border on any side, matching the default empty <border> element
// adnsv-go-xl/xl/writer.go's writeStyles emits at border index 0.
type Border struct {
	Left, Right, Top, Bottom BorderSide
}

// IsDefault reports whether b has every side set to BorderNone.
func (b Border) IsDefault() bool {
	return b.Left.Style == BorderNone && b.Right.Style == BorderNone &&
		b.Top.Style == BorderNone && b.Bottom.Style == BorderNone
}
