package style

// Font is a resolved font description. The zero value is the workbook's
// implicit default font (Calibri 11, no emphasis), matching the default
// font adnsv-go-xl/xl/writer.go's writeStyles always emits at font index 0.
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	Color     *Color
}

// IsDefault reports whether f has no attributes set beyond the implicit
// defaults, i.e. it renders identically to the workbook's default font and
// need not be allocated a distinct font index. Grounded on adnsv-go-xl's
// Font.IsDefault check in writer.go (skips appending fonts that are
// indistinguishable from font index 0).
func (f Font) IsDefault() bool {
	return f.Name == "" && f.Size == 0 && !f.Bold && !f.Italic && !f.Underline && f.Color == nil
}
