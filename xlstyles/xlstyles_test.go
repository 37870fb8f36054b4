package xlstyles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetform/xlcore/style"
)

func TestWriteReadRoundTripsDefaultRegistry(t *testing.T) {
	reg := style.NewRegistry()

	data := Write(reg)
	got, err := Read(data)
	require.NoError(t, err)

	assert.Equal(t, reg.Len(), got.Len())
	cs, ok := got.Get(style.DefaultStyleId)
	require.True(t, ok)
	assert.Equal(t, style.CellStyle{}, cs)
}

func TestWriteReadRoundTripsCustomStyle(t *testing.T) {
	reg := style.NewRegistry()
	cs := style.CellStyle{
		Font:   style.Font{Name: "Calibri", Size: 11, Bold: true},
		Fill:   style.Fill{Kind: style.FillSolid, Solid: style.RGB(0xFFFF0000)},
		Border: style.Border{Top: style.BorderSide{Style: style.BorderThin}},
		NumFmt: style.Custom("0.00%"),
	}
	id := reg.Intern(cs)

	data := Write(reg)
	got, err := Read(data)
	require.NoError(t, err)

	roundTripped, ok := got.Get(id)
	require.True(t, ok)
	assert.True(t, roundTripped.Font.Bold)
	assert.Equal(t, "Calibri", roundTripped.Font.Name)
	assert.Equal(t, style.NumFmtCustom, roundTripped.NumFmt.Kind)
	assert.Equal(t, "0.00%", roundTripped.NumFmt.Code)
}

func TestWriteReadRoundTripsBuiltInNumFmt(t *testing.T) {
	reg := style.NewRegistry()
	id := reg.Intern(style.CellStyle{NumFmt: style.BuiltIn(14)}) // built-in date format

	got, err := Read(Write(reg))
	require.NoError(t, err)

	cs, ok := got.Get(id)
	require.True(t, ok)
	assert.Equal(t, style.NumFmtBuiltIn, cs.NumFmt.Kind)
	assert.Equal(t, 14, cs.NumFmt.ID)
}

func TestReadRejectsMalformedXML(t *testing.T) {
	_, err := Read([]byte("<styleSheet><fonts"))
	assert.Error(t, err)
}
