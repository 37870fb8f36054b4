package style

// NumFmtKind discriminates NumFmt's three forms: General, a built-in id, or
// a custom format code (spec.md §3).
type NumFmtKind int

const (
	NumFmtGeneral NumFmtKind = iota
	NumFmtBuiltIn
	NumFmtCustom
)

// NumFmt is the number-format component of a CellStyle. The built-in id
// table and date-format detection live in package numfmt, kept separate so
// that style (a pure data model) has no dependency on format-string
// scanning logic.
type NumFmt struct {
	Kind NumFmtKind
	ID   int    // valid when Kind == NumFmtBuiltIn
	Code string // valid when Kind == NumFmtCustom
}

// General is the implicit default number format.
var General = NumFmt{Kind: NumFmtGeneral}

// BuiltIn references one of the fixed built-in numFmtId values.
func BuiltIn(id int) NumFmt {
	return NumFmt{Kind: NumFmtBuiltIn, ID: id}
}

// Custom wraps a user format code string.
func Custom(code string) NumFmt {
	return NumFmt{Kind: NumFmtCustom, Code: code}
}
