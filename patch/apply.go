package patch

import "github.com/sheetform/xlcore/sheet"

// Apply clones s, applies p to the clone, and returns the clone — s itself
// is never mutated (spec.md §4.2 "Sheet.applyPatch... pure; does not
// mutate"). On error the clone is discarded and s is still untouched.
func Apply(s *sheet.Sheet, p Patch) (*sheet.Sheet, error) {
	clone := s.Clone()
	if err := p.apply(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// styleTouching reports whether p's effect reaches the shared
// StyleRegistry, so ApplyToWorkbook can mark styles dirty in addition to
// the owning sheet (spec.md §6 ModificationTracker).
func styleTouching(p Patch) bool {
	switch v := p.(type) {
	case Put:
		return v.Style != nil
	case SetStyle, StyleRange:
		return true
	case Batch:
		for _, child := range v.Patches {
			if styleTouching(child) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ApplyToWorkbook applies p to the sheet named sheetName within wb,
// replacing it in place (via Workbook.Put, which preserves ordering) and
// updating wb's ModificationTracker — the sheet itself, plus the shared
// style registry if p interns any style (spec.md §6).
func ApplyToWorkbook(wb *sheet.Workbook, sheetName string, p Patch) (*sheet.Sheet, error) {
	s, ok := wb.Sheet(sheetName)
	if !ok {
		return nil, sheetNotFoundError(sheetName)
	}
	result, err := Apply(s, p)
	if err != nil {
		return nil, err
	}
	if err := wb.Put(result); err != nil {
		return nil, err
	}
	wb.Tracker().MarkSheetDirty(sheetName)
	if styleTouching(p) {
		wb.Tracker().MarkStylesDirty()
	}
	return result, nil
}
