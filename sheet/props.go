package sheet

// RowProps holds the per-row properties spec.md §3 names: height, hidden,
// outline level, collapsed.
type RowProps struct {
	Height       float64
	CustomHeight bool
	Hidden       bool
	OutlineLevel int
	Collapsed    bool
}

// ColProps holds the per-column properties spec.md §3 names: width,
// hidden, outline level, collapsed.
type ColProps struct {
	Width        float64
	CustomWidth  bool
	Hidden       bool
	OutlineLevel int
	Collapsed    bool
}
