package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/patch"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/value"
)

func ref(col, row int) addr.ARef {
	return addr.NewARef(addr.Column(col), addr.Row(row))
}

func newWorkbook(sheetName string) *sheet.Workbook {
	wb := sheet.NewWorkbook()
	reg := style.NewRegistry()
	_ = wb.Put(sheet.New(sheetName, reg))
	return wb
}

func TestWriteBytesFullThenReadBytesRoundTrip(t *testing.T) {
	wb := newWorkbook("Sheet1")
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "hello"}})
	sh.SetCell(sheet.Cell{Ref: ref(1, 0), Value: value.Number{Value: 42}})
	require.NoError(t, sh.AddMerge(addr.CellRange{Start: ref(0, 1), End: ref(1, 1)}))
	require.NoError(t, wb.Put(sh))

	c := &Container{Workbook: wb}
	data, err := c.WriteBytes(WriterConfig{})
	require.NoError(t, err)

	got, err := ReadBytes(data)
	require.NoError(t, err)

	gotSheet, ok := got.Workbook.Sheet("Sheet1")
	require.True(t, ok)
	cellA, ok := gotSheet.Cell(ref(0, 0))
	require.True(t, ok)
	assert.Equal(t, value.Text{Value: "hello"}, cellA.Value)
	cellB, ok := gotSheet.Cell(ref(1, 0))
	require.True(t, ok)
	num, ok := cellB.Value.(value.Number)
	require.True(t, ok)
	assert.Equal(t, float64(42), num.Value)
	require.Len(t, gotSheet.Merges(), 1)
}

func TestChooseStrategyVerbatimWhenUntouched(t *testing.T) {
	wb := newWorkbook("Sheet1")
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "x"}})
	require.NoError(t, wb.Put(sh))

	c := &Container{Workbook: wb}
	data1, err := c.WriteBytes(WriterConfig{})
	require.NoError(t, err)

	reopened, err := ReadBytes(data1)
	require.NoError(t, err)
	assert.Equal(t, strategyVerbatim, reopened.chooseStrategy())

	data2, err := reopened.WriteBytes(WriterConfig{})
	require.NoError(t, err)
	assert.Equal(t, data1, data2)
}

func TestChooseStrategySurgicalAfterPatch(t *testing.T) {
	wb := newWorkbook("Sheet1")
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "x"}})
	require.NoError(t, wb.Put(sh))

	c := &Container{Workbook: wb}
	data, err := c.WriteBytes(WriterConfig{})
	require.NoError(t, err)

	reopened, err := ReadBytes(data)
	require.NoError(t, err)

	_, err = patch.ApplyToWorkbook(reopened.Workbook, "Sheet1", patch.Put{
		Ref:   ref(0, 0),
		Value: value.Text{Value: "changed"},
	})
	require.NoError(t, err)

	assert.Equal(t, strategySurgical, reopened.chooseStrategy())

	out, err := reopened.WriteBytes(WriterConfig{})
	require.NoError(t, err)

	roundTripped, err := ReadBytes(out)
	require.NoError(t, err)
	rtSheet, _ := roundTripped.Workbook.Sheet("Sheet1")
	cell, _ := rtSheet.Cell(ref(0, 0))
	assert.Equal(t, value.Text{Value: "changed"}, cell.Value)
}

func TestChooseStrategyFullWhenSheetAdded(t *testing.T) {
	wb := newWorkbook("Sheet1")
	c := &Container{Workbook: wb}
	data, err := c.WriteBytes(WriterConfig{})
	require.NoError(t, err)

	reopened, err := ReadBytes(data)
	require.NoError(t, err)

	reg := reopened.Workbook.Sheets()[0].Registry()
	require.NoError(t, reopened.Workbook.Put(sheet.New("Sheet2", reg)))

	assert.Equal(t, strategyFull, reopened.chooseStrategy())
}

func TestWriteBytesEnforcesMaxCellCount(t *testing.T) {
	wb := newWorkbook("Sheet1")
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "a"}})
	sh.SetCell(sheet.Cell{Ref: ref(1, 0), Value: value.Text{Value: "b"}})
	require.NoError(t, wb.Put(sh))

	c := &Container{Workbook: wb}
	_, err := c.WriteBytes(WriterConfig{MaxCellCount: 1})
	require.ErrorIs(t, err, ErrCellCountLimit)
}

func TestWriteBytesEnforcesMaxStringLength(t *testing.T) {
	wb := newWorkbook("Sheet1")
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "too long"}})
	require.NoError(t, wb.Put(sh))

	c := &Container{Workbook: wb}
	_, err := c.WriteBytes(WriterConfig{MaxStringLength: 3})
	require.ErrorIs(t, err, ErrStringLengthLimit)
}
