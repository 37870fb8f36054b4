package addr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumn(t *testing.T) {
	cases := []struct {
		in   string
		want Column
	}{
		{"A", 0},
		{"Z", 25},
		{"AA", 26},
		{"a", 0},
		{"BC", 54},
	}
	for _, c := range cases {
		got, err := ParseColumn(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
		assert.Equal(t, strings.ToUpper(c.in), got.String())
	}
}

func TestParseColumnErrors(t *testing.T) {
	_, err := ParseColumn("")
	assert.ErrorIs(t, err, ErrInvalidColumn)
	_, err = ParseColumn("1A")
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestParseRow(t *testing.T) {
	got, err := ParseRow("23")
	require.NoError(t, err)
	assert.Equal(t, Row(22), got)
	assert.Equal(t, "23", got.String())

	_, err = ParseRow("0")
	assert.ErrorIs(t, err, ErrInvalidRow)
	_, err = ParseRow("x")
	assert.ErrorIs(t, err, ErrInvalidRow)
}

func TestARefRoundTrip(t *testing.T) {
	cases := []string{"A1", "BC23", "XFD1048576"}
	for _, c := range cases {
		a, err := ParseARef(c)
		require.NoError(t, err, c)
		assert.Equal(t, c, a.String())
	}
}

func TestARefRejectsAbsolute(t *testing.T) {
	_, err := ParseARef("$A$1")
	assert.ErrorIs(t, err, ErrInvalidCellRef)
}

func TestARefRejectsRowZero(t *testing.T) {
	_, err := ParseARef("A0")
	assert.ErrorIs(t, err, ErrInvalidRow)
}

func TestCellRangeNormalize(t *testing.T) {
	r, err := ParseCellRange("C5:A2")
	require.NoError(t, err)
	assert.Equal(t, "A2:C5", r.String())
	assert.Equal(t, r, r.Normalize())
}

func TestCellRangeSingle(t *testing.T) {
	r, err := ParseCellRange("A1")
	require.NoError(t, err)
	assert.Equal(t, r.Start, r.End)
	assert.Equal(t, "A1", r.String())
}

func TestCellRangeContainsAndIntersects(t *testing.T) {
	r, err := ParseCellRange("B2:D4")
	require.NoError(t, err)
	c, err := ParseARef("C3")
	require.NoError(t, err)
	assert.True(t, r.Contains(c))

	other, err := ParseCellRange("D4:F6")
	require.NoError(t, err)
	assert.True(t, r.Intersects(other))

	disjoint, err := ParseCellRange("F6:G7")
	require.NoError(t, err)
	assert.False(t, r.Intersects(disjoint))
}

func TestSheetQualifiedRef(t *testing.T) {
	sheet, ref, err := ParseSheetQualified("'My Sheet'!A1")
	require.NoError(t, err)
	assert.Equal(t, "My Sheet", sheet)
	assert.Equal(t, "A1", ref.String())

	sheet, ref, err = ParseSheetQualified("'It''s Mine'!B2")
	require.NoError(t, err)
	assert.Equal(t, "It's Mine", sheet)
	assert.Equal(t, "B2", ref.String())

	assert.Equal(t, "'It''s Mine'!B2", SheetQualifiedString("It's Mine", ref))
}

func TestValidateSheetName(t *testing.T) {
	assert.NoError(t, ValidateSheetName("Sheet1"))
	assert.ErrorIs(t, ValidateSheetName(""), ErrInvalidSheetName)
	assert.ErrorIs(t, ValidateSheetName("   "), ErrInvalidSheetName)
	assert.ErrorIs(t, ValidateSheetName("a/b"), ErrInvalidSheetName)

	long := make([]byte, 32)
	for i := range long {
		long[i] = 'x'
	}
	assert.ErrorIs(t, ValidateSheetName(string(long)), ErrInvalidSheetName)
}
