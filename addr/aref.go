package addr

import (
	"fmt"
	"strings"
)

// ARef is an absolute cell reference, packed into a single 64-bit value
// (row<<32 | col) so it orders cheaply and works as a map key directly
// (spec.md §3 "ARef").
type ARef uint64

// NewARef builds an ARef from a 0-based column and row.
func NewARef(col Column, row Row) ARef {
	return ARef(uint64(uint32(row))<<32 | uint64(uint32(col)))
}

// Column returns the 0-based column component.
func (a ARef) Column() Column { return Column(uint32(a)) }

// Row returns the 0-based row component.
func (a ARef) Row() Row { return Row(uint32(a >> 32)) }

// Less reports whether a sorts before b in (row, col) lexicographic order —
// the ordering the packed representation already gives for free.
func (a ARef) Less(b ARef) bool { return a < b }

// ParseARef parses an unqualified A1 cell reference such as "BC23". It
// rejects absolute markers ("$"); callers that need to accept "$BC$23"
// should strip '$' before calling this function (spec.md §4.1).
func ParseARef(s string) (ARef, error) {
	if strings.ContainsRune(s, '$') {
		return 0, fmt.Errorf("%w: %q: unexpected '$'", ErrInvalidCellRef, s)
	}
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCellRef, s)
	}
	col, err := ParseColumn(s[:i])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidCellRef, s, err)
	}
	row, err := ParseRow(s[i:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidCellRef, s, err)
	}
	return NewARef(col, row), nil
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String renders the reference in A1 notation, e.g. "BC23".
func (a ARef) String() string {
	return a.Column().String() + a.Row().String()
}

// SheetQualifiedString renders "'sheet'!A1", quoting the sheet name and
// doubling any embedded single quote, per spec.md §4.1.
func SheetQualifiedString(sheet string, a ARef) string {
	return quoteSheetName(sheet) + "!" + a.String()
}

// ParseSheetQualified parses "'My Sheet'!A1" or "Sheet1!A1", returning the
// sheet name (unquoted, with doubled quotes collapsed) and the cell
// reference.
func ParseSheetQualified(s string) (sheet string, ref ARef, err error) {
	sheet, rest, err := splitSheetQualifier(s)
	if err != nil {
		return "", 0, err
	}
	ref, err = ParseARef(rest)
	if err != nil {
		return "", 0, err
	}
	return sheet, ref, nil
}

// splitSheetQualifier splits "sheet!rest" (or "'quoted sheet'!rest") into the
// unquoted sheet name and the remainder after "!". It understands the OOXML
// escaping rule: a literal "'" inside a quoted name is written "''".
func splitSheetQualifier(s string) (sheet, rest string, err error) {
	if strings.HasPrefix(s, "'") {
		var b strings.Builder
		i := 1
		for i < len(s) {
			if s[i] == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					b.WriteByte('\'')
					i += 2
					continue
				}
				i++
				break
			}
			b.WriteByte(s[i])
			i++
		}
		if i >= len(s) || s[i] != '!' {
			return "", "", fmt.Errorf("%w: %q: missing '!' after quoted sheet name", ErrInvalidCellRef, s)
		}
		return b.String(), s[i+1:], nil
	}
	idx := strings.IndexByte(s, '!')
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %q: missing '!'", ErrInvalidCellRef, s)
	}
	return s[:idx], s[idx+1:], nil
}

// quoteSheetName quotes a sheet name with '' only when it contains
// characters that require quoting in A1 formula syntax (anything other than
// a plain identifier), doubling any embedded single quote.
func quoteSheetName(name string) string {
	if !needsQuoting(name) {
		return name
	}
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(name); i++ {
		if name[i] == '\'' {
			b.WriteString("''")
		} else {
			b.WriteByte(name[i])
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		ok := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_'
		if !ok {
			return true
		}
	}
	return false
}
