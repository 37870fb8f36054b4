package addr

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidateSheetName validates an Excel worksheet name: 1–31 characters, none of the
// characters : \ / ? * [ ], and not empty or all-whitespace (spec.md §3).
// Grounded on adnsv-go-xl/xl/workbook.go's validateSheetName, extended with
// the blank-only check and rune-length (rather than byte-length) counting
// that spec.md requires.
func ValidateSheetName(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return fmt.Errorf("%w: empty sheet name", ErrInvalidSheetName)
	}
	if n > 31 {
		return fmt.Errorf("%w: %q exceeds 31 characters", ErrInvalidSheetName, s)
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: sheet name is only whitespace", ErrInvalidSheetName)
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return fmt.Errorf("%w: %q contains a forbidden character", ErrInvalidSheetName, s)
	}
	return nil
}
