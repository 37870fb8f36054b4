// Package sst implements the shared-strings table: an insertion-ordered,
// deduplicated pool of Text/RichText values referenced by index from
// worksheet cells (spec.md §4.4).
package sst

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sheetform/xlcore/value"
)

// Table is the in-memory shared strings table. Entries are either
// value.Text or value.RichText; deduplication is keyed on the
// NFC-normalized flattened plain text (spec.md §4.4), so visually
// identical strings with different rich-text run splits collapse to one
// entry.
type Table struct {
	entries []value.CellValue
	index   map[string]int
}

// NewTable returns an empty shared strings table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Intern returns the index of v's entry, appending a new one if no
// existing entry has the same NFC-normalized plain-text projection. v is
// expected to be a value.Text or value.RichText — only string-bearing
// cells belong in the SST; any other variant projects to the empty string
// and dedups together, which callers should avoid relying on.
func (t *Table) Intern(v value.CellValue) int {
	key := projectionKey(v)
	if i, ok := t.index[key]; ok {
		return i
	}
	i := len(t.entries)
	t.entries = append(t.entries, v)
	t.index[key] = i
	return i
}

// Get returns the entry at idx, and false if idx is out of range.
func (t *Table) Get(idx int) (value.CellValue, bool) {
	if idx < 0 || idx >= len(t.entries) {
		return nil, false
	}
	return t.entries[idx], true
}

// Len returns the number of distinct entries (uniqueCount).
func (t *Table) Len() int { return len(t.entries) }

// Entries returns the table's entries in insertion order.
func (t *Table) Entries() []value.CellValue { return t.entries }

// PlainText returns the flattened plain-text projection of v (the
// un-normalized form; see projectionKey for the dedup key itself).
func PlainText(v value.CellValue) string {
	switch x := v.(type) {
	case value.Text:
		return x.Value
	case value.RichText:
		var b strings.Builder
		for _, r := range x.Runs {
			b.WriteString(r.Text)
		}
		return b.String()
	default:
		return ""
	}
}

func projectionKey(v value.CellValue) string {
	return norm.NFC.String(PlainText(v))
}
