package sst

import (
	"bytes"
	"io"
	"strings"

	"github.com/adnsv/srw/xml"

	"github.com/sheetform/xlcore/value"
)

const sstNamespace = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// Write renders t as an xl/sharedStrings.xml part with count set equal to
// uniqueCount. The true count is the number of string *cell instances* in
// the workbook (spec.md §4.4 "totalCount"), which the table itself does not
// track since it only knows distinct entries; WriteWithTotalCount takes it
// from the caller.
//
// Grounded on adnsv-go-xl/xl/writer.go's writeSharedStrings, generalized
// from plain-<t>-only emission to the full <si>/<r>/rPr shape spec.md
// §4.4 requires, plus the xml:space="preserve" rule that writer never
// needed (its shared strings are never round-tripped from a prior file).
func Write(t *Table) []byte {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("sst")
	x.Attr("xmlns", sstNamespace)
	x.Attr("count", totalCountOrUnique(t))
	x.Attr("uniqueCount", t.Len())

	for _, e := range t.entries {
		writeSI(x, &bb, e)
	}

	x.CTag()
	return bb.Bytes()
}

// WriteWithTotalCount renders t using an explicit totalCount attribute
// instead of defaulting it to uniqueCount.
func WriteWithTotalCount(t *Table, totalCount int) []byte {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("sst")
	x.Attr("xmlns", sstNamespace)
	x.Attr("count", totalCount)
	x.Attr("uniqueCount", t.Len())

	for _, e := range t.entries {
		writeSI(x, &bb, e)
	}

	x.CTag()
	return bb.Bytes()
}

func totalCountOrUnique(t *Table) int {
	return t.Len()
}

func writeSI(x *xml.Writer, bb *bytes.Buffer, v value.CellValue) {
	x.OTag("+si")
	switch e := v.(type) {
	case value.RichText:
		for _, run := range e.Runs {
			WriteRun(x, bb, run)
		}
	default:
		writeText(x, "t", PlainText(v))
	}
	x.CTag()
}

// WriteRun emits one <r> element for a rich-text run: a preserved raw rPr
// fragment (from a prior read) is written directly to w rather than
// through x, since it is already-serialized XML and must be reproduced
// byte-for-byte rather than re-escaped as text content (spec.md §4.4
// "emit it verbatim"); x's own tag-nesting state is unaffected since the
// <r>/</r> pair around it is still opened and closed through x, and w must
// be the same writer x itself is writing into so the raw fragment lands in
// the right position in the stream. Absent a preserved fragment, rPr is
// constructed from the typed Font. Exported so worksheet's SST-reference
// and inline <is> rich-text paths (in-memory and streaming) can share this
// exact logic instead of a second, partial reimplementation (spec.md
// §4.4's "construct rPr from the typed font" rule and the RawProps rule
// apply to every rich-text emission site, not just the shared-strings
// table). w is an io.Writer rather than *bytes.Buffer so the streaming
// worksheet writer, which writes directly onto its caller's io.Writer
// instead of a buffer, can use it too.
func WriteRun(x *xml.Writer, w io.Writer, run value.TextRun) {
	x.OTag("+r")
	switch {
	case run.RawProps != nil:
		io.WriteString(w, "<rPr>")
		w.Write(run.RawProps)
		io.WriteString(w, "</rPr>")
	case run.Font != nil:
		writeRunFont(x, run.Font)
	}
	writeText(x, "t", run.Text)
	x.CTag()
}

func writeRunFont(x *xml.Writer, f *value.RunFont) {
	x.OTag("+rPr")
	if f.Bold {
		x.OTag("b").CTag()
	}
	if f.Italic {
		x.OTag("i").CTag()
	}
	if f.Underline {
		x.OTag("u").CTag()
	}
	if f.Size > 0 {
		x.OTag("sz").Attr("val", f.Size).CTag()
	}
	if f.ColorARGB != "" {
		x.OTag("color").Attr("rgb", f.ColorARGB).CTag()
	}
	if f.Name != "" {
		x.OTag("rFont").Attr("val", f.Name).CTag()
	}
	x.CTag()
}

// writeText emits <tag>text</tag>, adding xml:space="preserve" when text
// has leading/trailing whitespace or an internal run of 2+ spaces
// (spec.md §4.4).
func writeText(x *xml.Writer, tag, text string) {
	o := x.OTag(tag)
	if needsPreserve(text) {
		o.Attr("xml:space", "preserve")
	}
	o.Write(text).CTag()
}

func needsPreserve(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == ' ' || s[0] == '\t' || s[len(s)-1] == ' ' || s[len(s)-1] == '\t' {
		return true
	}
	return strings.Contains(s, "  ")
}
