package worksheet

import (
	"strconv"
	"strings"

	"github.com/sheetform/xlcore/value"
)

// formulaGuardChars are the leading characters spec.md §4.6's "opt-in"
// formula-injection guard prefixes with a single quote.
const formulaGuardChars = "=+-@"

// guardText returns s prefixed with a leading single quote when cfg's
// strict mode is on and s begins with one of formulaGuardChars.
func guardText(s string, cfg WriteConfig) string {
	if cfg.StrictFormulaGuard && s != "" && strings.ContainsRune(formulaGuardChars, rune(s[0])) {
		return "'" + s
	}
	return s
}

// formulaCachedToken returns the t token a Formula's cached value would
// carry on its own, per spec.md §4.6 "t follows the cached value's type
// (n, b, e, or str)".
func formulaCachedToken(v value.CellValue) string {
	switch v.(type) {
	case value.Bool:
		return "b"
	case value.Error:
		return "e"
	case value.Text, value.RichText:
		return "str"
	default:
		return "n"
	}
}

// numberText renders a value.Number's display text: its preserved original
// text when present (spec.md §3 byte-exact preservation), otherwise a
// canonical decimal form with no unnecessary trailing digits.
func numberText(n value.Number) string {
	if n.OriginalText != "" {
		return n.OriginalText
	}
	return formatFloat(n.Value)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func boolText(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// sstOrInline decides, for a Text/RichText cell, whether it is written via
// the shared strings table or inline, per cfg.SST being set.
func sstOrInline(cfg WriteConfig) bool { return cfg.SST != nil }

func internSST(cfg WriteConfig, v value.CellValue) int {
	return cfg.SST.Intern(v)
}
