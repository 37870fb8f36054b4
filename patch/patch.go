// Package patch implements the edit algebra spec.md §1/§4.2 describes: the
// core sheet model is never mutated directly, only through values of the
// Patch sum type applied via Apply, which clones before mutating.
package patch

import (
	"fmt"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/value"
)

// Patch is a single edit operation or a Batch of them. The unexported
// apply method is the same closed-interface idiom value.CellValue uses.
type Patch interface {
	apply(s *sheet.Sheet) error
}

// Put stores Value at Ref. If Style is non-nil it is interned and becomes
// the cell's style; otherwise any existing style at Ref is preserved.
// Put(ref, v1) followed by Put(ref, v2) is equivalent to Put(ref, v2)
// (spec.md §4.2 last-writer-wins law).
type Put struct {
	Ref   addr.ARef
	Value value.CellValue
	Style *style.CellStyle
}

// SetStyle interns Style and applies it to the cell at Ref, creating an
// Empty-valued cell there if none exists yet.
type SetStyle struct {
	Ref   addr.ARef
	Style style.CellStyle
}

// StyleRange applies Style to every cell address within Range, including
// addresses with no stored cell (which become Empty-valued, styled cells).
type StyleRange struct {
	Range addr.CellRange
	Style style.CellStyle
}

// Merge records Range as a merged region. It fails with
// sheet.ErrOverlappingMerge if Range intersects an existing merge
// (spec.md §4.2).
type Merge struct {
	Range addr.CellRange
}

// Unmerge removes the merge exactly matching Range, failing with
// ErrUnmergeNotFound if no such merge exists.
type Unmerge struct {
	Range addr.CellRange
}

// SetRowProperties stores Props for Row.
type SetRowProperties struct {
	Row   addr.Row
	Props sheet.RowProps
}

// SetColumnProperties stores Props for Column.
type SetColumnProperties struct {
	Column addr.Column
	Props  sheet.ColProps
}

// Remove deletes the cell at Ref entirely. Put on an Empty value followed
// by Remove is a no-op (spec.md §4.2), since both leave no stored cell.
type Remove struct {
	Ref addr.ARef
}

// Batch applies Patches in order. The empty Batch is the identity patch,
// and Apply(s, Batch([p, q])) equals applying p then q in sequence
// (spec.md §4.2 associativity law).
type Batch struct {
	Patches []Patch
}

func (p Put) apply(s *sheet.Sheet) error {
	cell := sheet.Cell{Ref: p.Ref, Value: p.Value}
	if existing, ok := s.Cell(p.Ref); ok {
		cell.Comment = existing.Comment
		cell.Hyperlink = existing.Hyperlink
		cell.StyleId = existing.StyleId
		cell.HasStyle = existing.HasStyle
	}
	if p.Style != nil {
		cell.StyleId = s.Registry().Intern(*p.Style)
		cell.HasStyle = true
	}
	s.SetCell(cell)
	return nil
}

func (p SetStyle) apply(s *sheet.Sheet) error {
	cell := sheet.Cell{Ref: p.Ref, Value: value.Empty{}}
	if existing, ok := s.Cell(p.Ref); ok {
		cell.Value = existing.Value
		cell.Comment = existing.Comment
		cell.Hyperlink = existing.Hyperlink
	}
	cell.StyleId = s.Registry().Intern(p.Style)
	cell.HasStyle = true
	s.SetCell(cell)
	return nil
}

func (p StyleRange) apply(s *sheet.Sheet) error {
	id := s.Registry().Intern(p.Style)
	startCol, startRow := p.Range.Start.Column(), p.Range.Start.Row()
	endCol, endRow := p.Range.End.Column(), p.Range.End.Row()
	for r := startRow; r <= endRow; r++ {
		for c := startCol; c <= endCol; c++ {
			ref := addr.NewARef(c, r)
			cell := sheet.Cell{Ref: ref, Value: value.Empty{}, StyleId: id, HasStyle: true}
			if existing, ok := s.Cell(ref); ok {
				cell.Value = existing.Value
				cell.Comment = existing.Comment
				cell.Hyperlink = existing.Hyperlink
			}
			s.SetCell(cell)
		}
	}
	return nil
}

func (p Merge) apply(s *sheet.Sheet) error {
	return s.AddMerge(p.Range)
}

func (p Unmerge) apply(s *sheet.Sheet) error {
	if !s.RemoveMerge(p.Range) {
		return fmt.Errorf("%w: %s", ErrUnmergeNotFound, p.Range)
	}
	return nil
}

func (p SetRowProperties) apply(s *sheet.Sheet) error {
	s.SetRowProps(p.Row, p.Props)
	return nil
}

func (p SetColumnProperties) apply(s *sheet.Sheet) error {
	s.SetColProps(p.Column, p.Props)
	return nil
}

func (p Remove) apply(s *sheet.Sheet) error {
	s.DeleteCell(p.Ref)
	return nil
}

func (p Batch) apply(s *sheet.Sheet) error {
	for _, child := range p.Patches {
		if err := child.apply(s); err != nil {
			return err
		}
	}
	return nil
}
