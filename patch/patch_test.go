package patch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/value"
)

func ref(col, row int) addr.ARef {
	return addr.NewARef(addr.Column(col), addr.Row(row))
}

func newEmptySheet() *sheet.Sheet {
	return sheet.New("Sheet1", style.NewRegistry())
}

func TestApplyDoesNotMutateOriginal(t *testing.T) {
	s := newEmptySheet()
	result, err := Apply(s, Put{Ref: ref(0, 0), Value: value.Text{Value: "x"}})
	require.NoError(t, err)

	_, ok := s.Cell(ref(0, 0))
	assert.False(t, ok, "original sheet must be untouched")

	c, ok := result.Cell(ref(0, 0))
	require.True(t, ok)
	assert.Equal(t, value.Text{Value: "x"}, c.Value)
}

func TestEmptyBatchIsIdentity(t *testing.T) {
	s := newEmptySheet()
	s, _ = Apply(s, Put{Ref: ref(0, 0), Value: value.Text{Value: "hi"}})

	result, err := Apply(s, Batch{})
	require.NoError(t, err)
	assert.Equal(t, s.Len(), result.Len())
	c, ok := result.Cell(ref(0, 0))
	require.True(t, ok)
	assert.Equal(t, value.Text{Value: "hi"}, c.Value)
}

func TestBatchEqualsSequentialApplication(t *testing.T) {
	s := newEmptySheet()
	p := Put{Ref: ref(0, 0), Value: value.Text{Value: "a"}}
	q := Put{Ref: ref(1, 0), Value: value.Text{Value: "b"}}

	sequential, err := Apply(s, p)
	require.NoError(t, err)
	sequential, err = Apply(sequential, q)
	require.NoError(t, err)

	batched, err := Apply(s, Batch{Patches: []Patch{p, q}})
	require.NoError(t, err)

	a1, _ := sequential.Cell(ref(0, 0))
	a2, _ := batched.Cell(ref(0, 0))
	assert.Equal(t, a1.Value, a2.Value)

	b1, _ := sequential.Cell(ref(1, 0))
	b2, _ := batched.Cell(ref(1, 0))
	assert.Equal(t, b1.Value, b2.Value)
}

func TestPutIsLastWriterWins(t *testing.T) {
	s := newEmptySheet()
	s, err := Apply(s, Put{Ref: ref(0, 0), Value: value.Text{Value: "v1"}})
	require.NoError(t, err)
	s, err = Apply(s, Put{Ref: ref(0, 0), Value: value.Text{Value: "v2"}})
	require.NoError(t, err)

	direct, err := Apply(newEmptySheet(), Put{Ref: ref(0, 0), Value: value.Text{Value: "v2"}})
	require.NoError(t, err)

	got, _ := s.Cell(ref(0, 0))
	want, _ := direct.Cell(ref(0, 0))
	assert.Equal(t, want.Value, got.Value)
}

func TestPutEmptyThenRemoveIsNoOp(t *testing.T) {
	s := newEmptySheet()
	before := s.Len()

	s, err := Apply(s, Put{Ref: ref(0, 0), Value: value.Empty{}})
	require.NoError(t, err)
	s, err = Apply(s, Remove{Ref: ref(0, 0)})
	require.NoError(t, err)

	assert.Equal(t, before, s.Len())
	_, ok := s.Cell(ref(0, 0))
	assert.False(t, ok)
}

func TestSetStyleCreatesEmptyStyledCell(t *testing.T) {
	s := newEmptySheet()
	st := style.CellStyle{Font: style.Font{Bold: true}}
	result, err := Apply(s, SetStyle{Ref: ref(0, 0), Style: st})
	require.NoError(t, err)

	c, ok := result.Cell(ref(0, 0))
	require.True(t, ok)
	assert.True(t, c.HasStyle)
	got, ok := result.Registry().Get(c.StyleId)
	require.True(t, ok)
	assert.Equal(t, st.Font, got.Font)
}

func TestSetStylePreservesExistingValue(t *testing.T) {
	s := newEmptySheet()
	s, err := Apply(s, Put{Ref: ref(0, 0), Value: value.Number{Value: 7}})
	require.NoError(t, err)

	st := style.CellStyle{Font: style.Font{Italic: true}}
	result, err := Apply(s, SetStyle{Ref: ref(0, 0), Style: st})
	require.NoError(t, err)

	c, ok := result.Cell(ref(0, 0))
	require.True(t, ok)
	assert.Equal(t, value.Number{Value: 7}, c.Value)
	assert.True(t, c.HasStyle)
}

func TestStyleRangeAppliesToEveryAddress(t *testing.T) {
	s := newEmptySheet()
	r := addr.NewCellRange(ref(0, 0), ref(1, 1))
	st := style.CellStyle{Font: style.Font{Bold: true}}

	result, err := Apply(s, StyleRange{Range: r, Style: st})
	require.NoError(t, err)

	for col := 0; col <= 1; col++ {
		for row := 0; row <= 1; row++ {
			c, ok := result.Cell(ref(col, row))
			require.True(t, ok)
			assert.True(t, c.HasStyle)
		}
	}
}

func TestMergeRejectsOverlap(t *testing.T) {
	s := newEmptySheet()
	r1 := addr.NewCellRange(ref(0, 0), ref(2, 2))
	r2 := addr.NewCellRange(ref(1, 1), ref(3, 3))

	s, err := Apply(s, Merge{Range: r1})
	require.NoError(t, err)

	_, err = Apply(s, Merge{Range: r2})
	assert.True(t, errors.Is(err, sheet.ErrOverlappingMerge))
}

func TestMergeThenUnmergeRoundTrips(t *testing.T) {
	s := newEmptySheet()
	r := addr.NewCellRange(ref(0, 0), ref(2, 2))

	s, err := Apply(s, Merge{Range: r})
	require.NoError(t, err)
	require.Len(t, s.Merges(), 1)

	s, err = Apply(s, Unmerge{Range: r})
	require.NoError(t, err)
	assert.Len(t, s.Merges(), 0)
}

func TestUnmergeMissingFails(t *testing.T) {
	s := newEmptySheet()
	r := addr.NewCellRange(ref(0, 0), ref(2, 2))
	_, err := Apply(s, Unmerge{Range: r})
	assert.True(t, errors.Is(err, ErrUnmergeNotFound))
}

func TestRowAndColumnProperties(t *testing.T) {
	s := newEmptySheet()
	result, err := Apply(s, Batch{Patches: []Patch{
		SetRowProperties{Row: addr.Row(0), Props: sheet.RowProps{Height: 30}},
		SetColumnProperties{Column: addr.Column(0), Props: sheet.ColProps{Width: 15}},
	}})
	require.NoError(t, err)

	rp, ok := result.RowProps(addr.Row(0))
	require.True(t, ok)
	assert.Equal(t, float64(30), rp.Height)

	cp, ok := result.ColProps(addr.Column(0))
	require.True(t, ok)
	assert.Equal(t, float64(15), cp.Width)
}

func TestApplyToWorkbookMarksTracker(t *testing.T) {
	reg := style.NewRegistry()
	wb := sheet.NewWorkbook()
	require.NoError(t, wb.Put(sheet.New("Sheet1", reg)))

	_, err := ApplyToWorkbook(wb, "Sheet1", Put{Ref: ref(0, 0), Value: value.Text{Value: "x"}})
	require.NoError(t, err)
	assert.True(t, wb.Tracker().SheetDirty("Sheet1"))
	assert.False(t, wb.Tracker().StylesDirty())

	st := style.CellStyle{Font: style.Font{Bold: true}}
	_, err = ApplyToWorkbook(wb, "Sheet1", SetStyle{Ref: ref(0, 0), Style: st})
	require.NoError(t, err)
	assert.True(t, wb.Tracker().StylesDirty())
}

func TestApplyToWorkbookUnknownSheet(t *testing.T) {
	wb := sheet.NewWorkbook()
	_, err := ApplyToWorkbook(wb, "nope", Remove{Ref: ref(0, 0)})
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}
