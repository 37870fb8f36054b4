package sheet

import (
	"fmt"
	"sort"

	"github.com/mohae/deepcopy"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/style"
)

// Sheet is one worksheet: a sparse ARef → Cell mapping, merged ranges, and
// row/column properties, plus a reference to the workbook's shared
// StyleRegistry (spec.md §3). The zero value is not useful; build one with
// New.
type Sheet struct {
	Name     string
	cells    map[addr.ARef]Cell
	merges   []addr.CellRange
	cols     map[addr.Column]ColProps
	rows     map[addr.Row]RowProps
	DefaultRowHeight float64
	DefaultColWidth  float64
	registry *style.StyleRegistry
}

// New builds an empty sheet bound to registry (the workbook's shared
// StyleRegistry, per spec.md §3 "reference to a StyleRegistry").
func New(name string, registry *style.StyleRegistry) *Sheet {
	return &Sheet{
		Name:     name,
		cells:    make(map[addr.ARef]Cell),
		cols:     make(map[addr.Column]ColProps),
		rows:     make(map[addr.Row]RowProps),
		registry: registry,
	}
}

// Registry returns the sheet's shared style registry.
func (s *Sheet) Registry() *style.StyleRegistry { return s.registry }

// Cell returns the cell stored at ref, or the zero Cell (nil Value, which
// IsEmpty treats as empty) and false if nothing is stored there (spec.md §4.2 "Sheet.cell").
func (s *Sheet) Cell(ref addr.ARef) (Cell, bool) {
	c, ok := s.cells[ref]
	return c, ok
}

// put stores c at its own Ref, replacing any existing cell there. Storing
// an IsEmpty cell removes the key instead, keeping the map sparse.
func (s *Sheet) put(c Cell) {
	if c.IsEmpty() {
		delete(s.cells, c.Ref)
		return
	}
	s.cells[c.Ref] = c
}

// Range iterates only the stored cells whose ref lies within r, in (row,
// col) order, without materializing the full rectangle (spec.md §4.2
// "Sheet.range" — must not enumerate empty cells in the range).
func (s *Sheet) Range(r addr.CellRange) func(yield func(addr.ARef, Cell) bool) {
	return func(yield func(addr.ARef, Cell) bool) {
		refs := make([]addr.ARef, 0, len(s.cells))
		for ref := range s.cells {
			if r.Contains(ref) {
				refs = append(refs, ref)
			}
		}
		sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
		for _, ref := range refs {
			if !yield(ref, s.cells[ref]) {
				return
			}
		}
	}
}

// Rows iterates every row that has a stored cell, in ascending row order,
// yielding the cells of that row ordered by ascending column — the shape
// the worksheet writer needs for <sheetData> emission (spec.md §4.6).
func (s *Sheet) Rows() func(yield func(addr.Row, []Cell) bool) {
	return func(yield func(addr.Row, []Cell) bool) {
		refs := make([]addr.ARef, 0, len(s.cells))
		for ref := range s.cells {
			refs = append(refs, ref)
		}
		sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
		byRow := make(map[addr.Row][]Cell)
		for _, ref := range refs {
			byRow[ref.Row()] = append(byRow[ref.Row()], s.cells[ref])
		}
		rowNums := make([]addr.Row, 0, len(byRow))
		for r := range byRow {
			rowNums = append(rowNums, r)
		}
		sort.Slice(rowNums, func(i, j int) bool { return rowNums[i] < rowNums[j] })
		for _, r := range rowNums {
			if !yield(r, byRow[r]) {
				return
			}
		}
	}
}

// Len returns the number of non-empty cells stored.
func (s *Sheet) Len() int { return len(s.cells) }

// Dimension returns the bounding box of non-empty cells, and false if the
// sheet has no cells (spec.md §4.6 "<dimension> is the bounding box").
func (s *Sheet) Dimension() (addr.CellRange, bool) {
	if len(s.cells) == 0 {
		return addr.CellRange{}, false
	}
	init := false
	minCol, maxCol := addr.Column(0), addr.Column(0)
	minRow, maxRow := addr.Row(0), addr.Row(0)
	for ref := range s.cells {
		if !init {
			minCol, maxCol = ref.Column(), ref.Column()
			minRow, maxRow = ref.Row(), ref.Row()
			init = true
			continue
		}
		if ref.Column() < minCol {
			minCol = ref.Column()
		}
		if ref.Column() > maxCol {
			maxCol = ref.Column()
		}
		if ref.Row() < minRow {
			minRow = ref.Row()
		}
		if ref.Row() > maxRow {
			maxRow = ref.Row()
		}
	}
	return addr.NewCellRange(addr.NewARef(minCol, minRow), addr.NewARef(maxCol, maxRow)), true
}

// Merges returns the sheet's merged ranges.
func (s *Sheet) Merges() []addr.CellRange { return s.merges }

// ColProps returns the properties stored for column c, and false if none
// were explicitly set.
func (s *Sheet) ColProps(c addr.Column) (ColProps, bool) {
	p, ok := s.cols[c]
	return p, ok
}

// RowProps returns the properties stored for row r, and false if none were
// explicitly set.
func (s *Sheet) RowProps(r addr.Row) (RowProps, bool) {
	p, ok := s.rows[r]
	return p, ok
}

// SetCell stores c, or removes its key if c.IsEmpty (spec.md §4.2
// "updateCell... equivalent to put(ref, f(existing_or_empty))"). It is the
// mutator the patch package applies to a sheet clone; outside of patch
// application the core does not expose in-place mutation.
func (s *Sheet) SetCell(c Cell) { s.put(c) }

// DeleteCell removes ref unconditionally, regardless of style or comment
// (spec.md §4.2 Patch.Remove — distinct from storing an Empty value, which
// SetCell also treats as deletion but which a caller might not intend when
// the cell still carries a style).
func (s *Sheet) DeleteCell(ref addr.ARef) { delete(s.cells, ref) }

// AddMerge records r as a merged range, failing if it intersects an
// existing merge (spec.md §4.2 "Merge can fail when overlapping existing
// merges").
func (s *Sheet) AddMerge(r addr.CellRange) error {
	for _, m := range s.merges {
		if m.Intersects(r) {
			return fmt.Errorf("%w: %s overlaps %s", ErrOverlappingMerge, r, m)
		}
	}
	s.merges = append(s.merges, r)
	return nil
}

// RemoveMerge deletes the merge exactly matching r, and reports whether one
// was found.
func (s *Sheet) RemoveMerge(r addr.CellRange) bool {
	for i, m := range s.merges {
		if m == r {
			s.merges = append(s.merges[:i], s.merges[i+1:]...)
			return true
		}
	}
	return false
}

// SetColProps stores the properties for column c.
func (s *Sheet) SetColProps(c addr.Column, p ColProps) { s.cols[c] = p }

// SetRowProps stores the properties for row r.
func (s *Sheet) SetRowProps(r addr.Row, p RowProps) { s.rows[r] = p }

// Clone returns a deep copy of s sharing the same *style.StyleRegistry
// (the registry is workbook-wide, not per-sheet, so it is not cloned).
// Patch application uses Clone to give "returns a fresh value, never
// mutates in place" for free (spec.md §4.2). deepcopy.Copy is applied per
// mutable substructure rather than to the whole *Sheet, since
// deepcopy's reflection-based copier only walks exported struct fields and
// Sheet's are deliberately unexported to keep the map/slice invariants
// (sparseness, merge non-overlap) behind accessor methods.
func (s *Sheet) Clone() *Sheet {
	return &Sheet{
		Name:             s.Name,
		cells:            deepcopy.Copy(s.cells).(map[addr.ARef]Cell),
		cols:             deepcopy.Copy(s.cols).(map[addr.Column]ColProps),
		rows:             deepcopy.Copy(s.rows).(map[addr.Row]RowProps),
		merges:           deepcopy.Copy(s.merges).([]addr.CellRange),
		DefaultRowHeight: s.DefaultRowHeight,
		DefaultColWidth:  s.DefaultColWidth,
		registry:         s.registry,
	}
}
