package worksheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/value"
)

func ref(col, row int) addr.ARef {
	return addr.NewARef(addr.Column(col), addr.Row(row))
}

func TestWriteReadRoundTripsInlineStrings(t *testing.T) {
	reg := style.NewRegistry()
	sh := sheet.New("Sheet1", reg)
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "hello"}})
	sh.SetCell(sheet.Cell{Ref: ref(1, 0), Value: value.Number{Value: 42}})
	sh.SetCell(sheet.Cell{Ref: ref(0, 1), Value: value.Bool{Value: true}})

	data := Write(sh, WriteConfig{})
	decoded, err := Read(data, nil, reg, false)
	require.NoError(t, err)
	require.Len(t, decoded.Cells, 3)

	byRef := make(map[addr.ARef]sheet.Cell, len(decoded.Cells))
	for _, c := range decoded.Cells {
		byRef[c.Ref] = c
	}
	assert.Equal(t, value.Text{Value: "hello"}, byRef[ref(0, 0)].Value)
	num, ok := byRef[ref(1, 0)].Value.(value.Number)
	require.True(t, ok)
	assert.Equal(t, float64(42), num.Value)
	assert.Equal(t, value.Bool{Value: true}, byRef[ref(0, 1)].Value)
}

func TestWriteReadRoundTripsSharedStrings(t *testing.T) {
	reg := style.NewRegistry()
	table := sst.NewTable()
	sh := sheet.New("Sheet1", reg)
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "shared"}})

	data := Write(sh, WriteConfig{SST: table})
	decoded, err := Read(data, table, reg, false)
	require.NoError(t, err)
	require.Len(t, decoded.Cells, 1)
	assert.Equal(t, value.Text{Value: "shared"}, decoded.Cells[0].Value)
}

func TestWriteReadRoundTripsMergesAndHyperlinks(t *testing.T) {
	reg := style.NewRegistry()
	sh := sheet.New("Sheet1", reg)
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "link"}, Hyperlink: "https://example.com"})
	require.NoError(t, sh.AddMerge(addr.CellRange{Start: ref(0, 0), End: ref(1, 1)}))

	links := CollectHyperlinks(sh)
	require.Len(t, links, 1)
	rids := map[addr.ARef]string{ref(0, 0): "rId1"}

	data := Write(sh, WriteConfig{HyperlinkRIDs: rids})
	decoded, err := Read(data, nil, reg, false)
	require.NoError(t, err)

	require.Len(t, decoded.Merges, 1)
	assert.Equal(t, "rId1", decoded.Hyperlinks[ref(0, 0)])
}

func TestDecodeCellUnknownTypeProducesWarning(t *testing.T) {
	reg := style.NewRegistry()
	data := []byte(`<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1"><c r="A1" t="bogus"><v>1</v></c></row>
  </sheetData>
</worksheet>`)

	decoded, err := Read(data, nil, reg, false)
	require.NoError(t, err)
	require.Len(t, decoded.Warnings, 1)
	assert.Equal(t, value.Error{Code: value.ErrRef}, decoded.Cells[0].Value)
}

func TestStreamRowsMatchesWholeDocumentRead(t *testing.T) {
	reg := style.NewRegistry()
	sh := sheet.New("Sheet1", reg)
	sh.SetCell(sheet.Cell{Ref: ref(0, 0), Value: value.Text{Value: "a"}})
	sh.SetCell(sheet.Cell{Ref: ref(0, 1), Value: value.Number{Value: 1}})
	data := Write(sh, WriteConfig{})

	var rows []Row
	for row, err := range StreamRows(bytes.NewReader(data), nil, reg, false) {
		require.NoError(t, err)
		rows = append(rows, row)
	}
	assert.Len(t, rows, 2)
}
