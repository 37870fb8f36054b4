package value

import "time"

// CellValue is the sum type a Cell holds: Empty, Text, Number, Bool,
// DateTime, Formula, RichText, or Error. Concrete types implement the
// unexported cellValue marker so the set of variants is closed to this
// package, the same closed-interface-with-marker-method shape go/ast uses
// for its Expr/Stmt sum types.
type CellValue interface {
	cellValue()
}

// Empty is the value of a cell with no key present in the sheet's sparse
// map; it is also a valid explicit CellValue (spec.md §3).
type Empty struct{}

func (Empty) cellValue() {}

// Text is a plain string value. NFC normalization happens at the sst
// boundary, not here — CellValue itself carries whatever text the caller
// supplied.
type Text struct {
	Value string
}

func (Text) cellValue() {}

// Number is a numeric value. OriginalText, when non-empty, preserves the
// exact textual form read from source so a surgical rewrite can reproduce
// it byte-for-byte instead of reformatting through strconv (spec.md §3).
type Number struct {
	Value        float64
	OriginalText string
}

func (Number) cellValue() {}

// Bool is a boolean value.
type Bool struct {
	Value bool
}

func (Bool) cellValue() {}

// DateTime is a date/time value. The core stores it as a time.Time and
// defers the Excel-serial encoding decision (1900 vs 1904 epoch) to the
// numfmt package at write time, since the epoch is a workbook-level
// property (Workbook.Date1904), not a property of the value itself.
type DateTime struct {
	Value time.Time
}

func (DateTime) cellValue() {}

// Formula carries the formula text verbatim (opaque to the core — no
// parsing or evaluation, an explicit Non-goal) plus the cached value Excel
// last computed for it, if known.
type Formula struct {
	Expr   string
	Cached CellValue
}

func (Formula) cellValue() {}

// TextRun is one run of a RichText value: a text fragment plus an optional
// font override. RawProps, when non-nil, is the verbatim <rPr> XML Excel
// wrote for this run; sst re-emits it unchanged rather than reconstructing
// it from Font when present, for byte-exact rewrite of runs this core
// doesn't fully model (e.g. unsupported font sub-elements).
type TextRun struct {
	Text     string
	Font     *RunFont
	RawProps []byte
}

// RunFont is the subset of font attributes a rich-text run can override;
// it intentionally mirrors style.Font's fields rather than embedding it, to
// keep value free of any dependency on the style package.
type RunFont struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	ColorARGB string
}

// RichText is a value composed of multiple differently-formatted runs.
type RichText struct {
	Runs []TextRun
}

func (RichText) cellValue() {}

// Error is one of the builtin Excel error codes.
type Error struct {
	Code CellError
}

func (Error) cellValue() {}
