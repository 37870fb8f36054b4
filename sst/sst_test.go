package sst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetform/xlcore/value"
)

func TestInternDeduplicatesPlainText(t *testing.T) {
	tab := NewTable()
	i1 := tab.Intern(value.Text{Value: "hello"})
	i2 := tab.Intern(value.Text{Value: "hello"})
	assert.Equal(t, i1, i2)
	assert.Equal(t, 1, tab.Len())
}

func TestInternDeduplicatesAcrossNFCForms(t *testing.T) {
	tab := NewTable()
	composed := "caf\u00e9"    // precomposed NFC form
	decomposed := "cafe\u0301" // "e" + combining acute accent (U+0301), NFD form
	i1 := tab.Intern(value.Text{Value: composed})
	i2 := tab.Intern(value.Text{Value: decomposed})
	assert.Equal(t, i1, i2)
}

func TestInternDeduplicatesRichTextByFlattenedPlainText(t *testing.T) {
	tab := NewTable()
	plain := tab.Intern(value.Text{Value: "ab"})
	rich := tab.Intern(value.RichText{Runs: []value.TextRun{
		{Text: "a"}, {Text: "b"},
	}})
	assert.Equal(t, plain, rich)
	assert.Equal(t, 1, tab.Len())
}

func TestGetOutOfRange(t *testing.T) {
	tab := NewTable()
	_, ok := tab.Get(0)
	assert.False(t, ok)
}

func TestWriteAndReadRoundTripPlainText(t *testing.T) {
	tab := NewTable()
	tab.Intern(value.Text{Value: "first"})
	tab.Intern(value.Text{Value: "second"})

	out := Write(tab)
	parsed, err := Read(strings.NewReader(string(out)))
	require.NoError(t, err)
	require.Equal(t, 2, parsed.Len())

	v0, _ := parsed.Get(0)
	assert.Equal(t, value.Text{Value: "first"}, v0)
	v1, _ := parsed.Get(1)
	assert.Equal(t, value.Text{Value: "second"}, v1)
}

func TestWriteEmitsPreserveForPaddedText(t *testing.T) {
	tab := NewTable()
	tab.Intern(value.Text{Value: " padded "})

	out := string(Write(tab))
	assert.Contains(t, out, `xml:space="preserve"`)
}

func TestWriteOmitsPreserveForPlainText(t *testing.T) {
	tab := NewTable()
	tab.Intern(value.Text{Value: "plain"})

	out := string(Write(tab))
	assert.NotContains(t, out, `xml:space="preserve"`)
}

func TestWriteAndReadRoundTripRichText(t *testing.T) {
	tab := NewTable()
	tab.Intern(value.RichText{Runs: []value.TextRun{
		{Text: "bold ", Font: &value.RunFont{Bold: true}},
		{Text: "plain"},
	}})

	out := Write(tab)
	parsed, err := Read(strings.NewReader(string(out)))
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Len())

	v0, _ := parsed.Get(0)
	rt, ok := v0.(value.RichText)
	require.True(t, ok)
	require.Len(t, rt.Runs, 2)
	assert.Equal(t, "bold ", rt.Runs[0].Text)
	assert.Equal(t, "plain", rt.Runs[1].Text)
}

func TestReadTreatsMissingCountAsUniqueCount(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" uniqueCount="1">
  <si><t>only</t></si>
</sst>`
	parsed, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.Len())
}

func TestReadPreservesRawRPrForVerbatimWrite(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">
  <si><r><rPr><b/><sz val="12"/></rPr><t>hi</t></r></si>
</sst>`
	parsed, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	v0, _ := parsed.Get(0)
	rt, ok := v0.(value.RichText)
	require.True(t, ok)
	require.Len(t, rt.Runs, 1)
	assert.Contains(t, string(rt.Runs[0].RawProps), "<b/>")

	out := string(Write(parsed))
	assert.Contains(t, out, "<b/>")
	assert.Contains(t, out, `<sz val="12"/>`)
}
