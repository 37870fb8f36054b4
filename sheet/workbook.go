package sheet

// SourceContext records where a Workbook was read from, for the container
// codec's verbatim/surgical/full write-strategy decision (spec.md §4.7).
// It is opaque data to this package — container populates and reads it.
type SourceContext struct {
	Path        string
	Fingerprint [32]byte
	PartNames   []string
}

// ModificationTracker accumulates which sheets and workbook-wide parts
// have been touched by patch application since the workbook was read (or
// since it was created fresh), so the writer can decide what to
// regenerate versus copy verbatim (spec.md §4.7).
type ModificationTracker struct {
	dirtySheets map[string]bool
	stylesDirty bool
	sstDirty    bool
}

func newTracker() *ModificationTracker {
	return &ModificationTracker{dirtySheets: make(map[string]bool)}
}

// MarkSheetDirty records that sheet name has been modified.
func (t *ModificationTracker) MarkSheetDirty(name string) { t.dirtySheets[name] = true }

// MarkStylesDirty records that the style registry's contents changed.
func (t *ModificationTracker) MarkStylesDirty() { t.stylesDirty = true }

// MarkSSTDirty records that the shared-strings contents changed.
func (t *ModificationTracker) MarkSSTDirty() { t.sstDirty = true }

// SheetDirty reports whether name has been modified.
func (t *ModificationTracker) SheetDirty(name string) bool { return t.dirtySheets[name] }

// AnyDirty reports whether anything has been modified — a workbook with
// AnyDirty()==false and a valid, fingerprint-matching SourceContext is
// eligible for a verbatim copy write.
func (t *ModificationTracker) AnyDirty() bool {
	return len(t.dirtySheets) > 0 || t.stylesDirty || t.sstDirty
}

// StylesDirty reports whether the style registry changed.
func (t *ModificationTracker) StylesDirty() bool { return t.stylesDirty }

// SSTDirty reports whether the shared strings changed.
func (t *ModificationTracker) SSTDirty() bool { return t.sstDirty }

// Workbook is an ordered sequence of Sheets sharing one StyleRegistry
// (spec.md §3). Sheet order is user-visible and preserved across
// round-trip; sheet names are unique.
type Workbook struct {
	sheets   []*Sheet
	byName   map[string]int
	Date1904 bool
	Source   *SourceContext
	tracker  *ModificationTracker
}

// NewWorkbook builds an empty workbook with a fresh, empty
// ModificationTracker (spec.md §4.2 "the modification tracker is created
// empty when a Workbook is read from bytes" — equally true of one built
// fresh).
func NewWorkbook() *Workbook {
	return &Workbook{
		byName:  make(map[string]int),
		tracker: newTracker(),
	}
}

// Tracker returns the workbook's modification tracker.
func (w *Workbook) Tracker() *ModificationTracker { return w.tracker }

// Sheets returns the workbook's sheets in order.
func (w *Workbook) Sheets() []*Sheet { return w.sheets }

// Sheet returns the sheet named name, and false if no such sheet exists
// (spec.md §4.2 "Workbook.sheet(name)").
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	i, ok := w.byName[name]
	if !ok {
		return nil, false
	}
	return w.sheets[i], true
}

// Put replaces the sheet with the same name, preserving its position, or
// appends s if no sheet with that name exists yet (spec.md §4.2
// "Workbook.put(sheet) replaces by name preserving order"). Names are
// matched exactly (case-sensitively), so names differing only in case are
// stored as separate sheets. The returned error is always nil; sheet-name
// validity is the caller's responsibility (addr.ValidateSheetName).
func (w *Workbook) Put(s *Sheet) error {
	if i, ok := w.byName[s.Name]; ok {
		w.sheets[i] = s
		return nil
	}
	w.byName[s.Name] = len(w.sheets)
	w.sheets = append(w.sheets, s)
	return nil
}

// RemoveSheet deletes the sheet named name, shifting subsequent sheets down
// by one position, and reports whether it existed.
func (w *Workbook) RemoveSheet(name string) bool {
	i, ok := w.byName[name]
	if !ok {
		return false
	}
	w.sheets = append(w.sheets[:i], w.sheets[i+1:]...)
	delete(w.byName, name)
	for n, idx := range w.byName {
		if idx > i {
			w.byName[n] = idx - 1
		}
	}
	return true
}
