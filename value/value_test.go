package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCellErrorString(t *testing.T) {
	cases := []struct {
		e    CellError
		want string
	}{
		{ErrNull, "#NULL!"},
		{ErrDiv0, "#DIV/0!"},
		{ErrValue, "#VALUE!"},
		{ErrRef, "#REF!"},
		{ErrName, "#NAME?"},
		{ErrNum, "#NUM!"},
		{ErrNA, "#N/A"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.e.String())
	}
}

func TestParseCellError(t *testing.T) {
	e, ok := ParseCellError("#DIV/0!")
	assert.True(t, ok)
	assert.Equal(t, ErrDiv0, e)

	_, ok = ParseCellError("not an error")
	assert.False(t, ok)
}

func TestCellValueVariants(t *testing.T) {
	var vals []CellValue = []CellValue{
		Empty{},
		Text{Value: "hello"},
		Number{Value: 3.5, OriginalText: "3.50"},
		Bool{Value: true},
		DateTime{Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Formula{Expr: "=A1+B1", Cached: Number{Value: 4}},
		RichText{Runs: []TextRun{{Text: "bold", Font: &RunFont{Bold: true}}}},
		Error{Code: ErrNA},
	}
	for _, v := range vals {
		v.cellValue()
	}
	assert.Len(t, vals, 8)
}
