package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/value"
)

func ref(col, row int) addr.ARef {
	return addr.NewARef(addr.Column(col), addr.Row(row))
}

func TestSheetCellRoundTrip(t *testing.T) {
	s := New("Sheet1", style.NewRegistry())

	_, ok := s.Cell(ref(0, 0))
	assert.False(t, ok)

	s.put(Cell{Ref: ref(0, 0), Value: value.Text{Value: "hi"}})
	c, ok := s.Cell(ref(0, 0))
	require.True(t, ok)
	assert.Equal(t, value.Text{Value: "hi"}, c.Value)
	assert.Equal(t, 1, s.Len())
}

func TestSheetPutEmptyCellDeletesKey(t *testing.T) {
	s := New("Sheet1", style.NewRegistry())
	s.put(Cell{Ref: ref(1, 1), Value: value.Text{Value: "x"}})
	require.Equal(t, 1, s.Len())

	s.put(Cell{Ref: ref(1, 1), Value: value.Empty{}})
	_, ok := s.Cell(ref(1, 1))
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSheetRangeFiltersAndOrders(t *testing.T) {
	s := New("Sheet1", style.NewRegistry())
	s.put(Cell{Ref: ref(0, 0), Value: value.Number{Value: 1}})
	s.put(Cell{Ref: ref(2, 0), Value: value.Number{Value: 2}})
	s.put(Cell{Ref: ref(0, 5), Value: value.Number{Value: 3}}) // outside range

	r := addr.NewCellRange(ref(0, 0), ref(2, 0))
	var seen []addr.ARef
	for a, c := range s.Range(r) {
		seen = append(seen, a)
		assert.False(t, c.IsEmpty())
	}
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Less(seen[1]))
}

func TestSheetRowsGroupsAndOrders(t *testing.T) {
	s := New("Sheet1", style.NewRegistry())
	s.put(Cell{Ref: ref(1, 0), Value: value.Number{Value: 1}})
	s.put(Cell{Ref: ref(0, 0), Value: value.Number{Value: 2}})
	s.put(Cell{Ref: ref(0, 2), Value: value.Number{Value: 3}})

	var rows []addr.Row
	var widths []int
	for r, cells := range s.Rows() {
		rows = append(rows, r)
		widths = append(widths, len(cells))
		if len(cells) == 2 {
			assert.True(t, cells[0].Ref.Column() < cells[1].Ref.Column())
		}
	}
	require.Len(t, rows, 2)
	assert.Equal(t, addr.Row(0), rows[0])
	assert.Equal(t, addr.Row(2), rows[1])
	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 1, widths[1])
}

func TestSheetDimensionEmpty(t *testing.T) {
	s := New("Sheet1", style.NewRegistry())
	_, ok := s.Dimension()
	assert.False(t, ok)
}

func TestSheetDimensionBoundingBox(t *testing.T) {
	s := New("Sheet1", style.NewRegistry())
	s.put(Cell{Ref: ref(3, 1), Value: value.Number{Value: 1}})
	s.put(Cell{Ref: ref(0, 4), Value: value.Number{Value: 2}})

	dim, ok := s.Dimension()
	require.True(t, ok)
	assert.Equal(t, ref(0, 1), dim.Start)
	assert.Equal(t, ref(3, 4), dim.End)
}

func TestSheetCloneIsIndependent(t *testing.T) {
	reg := style.NewRegistry()
	s := New("Sheet1", reg)
	s.put(Cell{Ref: ref(0, 0), Value: value.Text{Value: "orig"}})
	s.cols[addr.Column(0)] = ColProps{Width: 10}
	s.rows[addr.Row(0)] = RowProps{Height: 20}
	s.merges = append(s.merges, addr.NewCellRange(ref(0, 0), ref(1, 1)))

	clone := s.Clone()
	clone.put(Cell{Ref: ref(0, 0), Value: value.Text{Value: "changed"}})
	clone.cols[addr.Column(0)] = ColProps{Width: 99}
	clone.merges[0] = addr.NewCellRange(ref(5, 5), ref(6, 6))

	orig, ok := s.Cell(ref(0, 0))
	require.True(t, ok)
	assert.Equal(t, value.Text{Value: "orig"}, orig.Value)

	origCol, ok := s.ColProps(addr.Column(0))
	require.True(t, ok)
	assert.Equal(t, float64(10), origCol.Width)

	assert.Equal(t, ref(0, 0), s.merges[0].Start)
	assert.Same(t, reg, clone.Registry())
}
