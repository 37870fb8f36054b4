package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetform/xlcore/style"
)

func TestWorkbookPutAppendsThenReplacesByName(t *testing.T) {
	reg := style.NewRegistry()
	wb := NewWorkbook()
	s1 := New("Sheet1", reg)
	s2 := New("Sheet2", reg)
	require.NoError(t, wb.Put(s1))
	require.NoError(t, wb.Put(s2))
	require.Len(t, wb.Sheets(), 2)

	replacement := New("Sheet1", reg)
	replacement.DefaultRowHeight = 42
	require.NoError(t, wb.Put(replacement))

	require.Len(t, wb.Sheets(), 2)
	got, ok := wb.Sheet("Sheet1")
	require.True(t, ok)
	assert.Equal(t, float64(42), got.DefaultRowHeight)
	assert.Same(t, wb.Sheets()[0], replacement)
	assert.Same(t, wb.Sheets()[1], s2)
}

func TestWorkbookSheetMissing(t *testing.T) {
	wb := NewWorkbook()
	_, ok := wb.Sheet("nope")
	assert.False(t, ok)
}

func TestWorkbookRemoveSheetShiftsIndices(t *testing.T) {
	reg := style.NewRegistry()
	wb := NewWorkbook()
	names := []string{"A", "B", "C"}
	for _, n := range names {
		require.NoError(t, wb.Put(New(n, reg)))
	}

	assert.True(t, wb.RemoveSheet("A"))
	require.Len(t, wb.Sheets(), 2)

	b, ok := wb.Sheet("B")
	require.True(t, ok)
	assert.Same(t, wb.Sheets()[0], b)

	c, ok := wb.Sheet("C")
	require.True(t, ok)
	assert.Same(t, wb.Sheets()[1], c)

	assert.False(t, wb.RemoveSheet("A"))
}

func TestModificationTrackerStartsClean(t *testing.T) {
	wb := NewWorkbook()
	tr := wb.Tracker()
	assert.False(t, tr.AnyDirty())
	assert.False(t, tr.SheetDirty("Sheet1"))
	assert.False(t, tr.StylesDirty())
	assert.False(t, tr.SSTDirty())
}

func TestModificationTrackerMarksIndependently(t *testing.T) {
	tr := newTracker()
	tr.MarkSheetDirty("Sheet1")
	assert.True(t, tr.SheetDirty("Sheet1"))
	assert.False(t, tr.SheetDirty("Sheet2"))
	assert.True(t, tr.AnyDirty())

	tr2 := newTracker()
	tr2.MarkStylesDirty()
	assert.True(t, tr2.AnyDirty())
	assert.True(t, tr2.StylesDirty())
	assert.False(t, tr2.SSTDirty())

	tr3 := newTracker()
	tr3.MarkSSTDirty()
	assert.True(t, tr3.SSTDirty())
}
