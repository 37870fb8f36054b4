package container

import (
	"bytes"

	"github.com/adnsv/srw/xml"

	"github.com/sheetform/xlcore/internal/xmlguard"
)

const workbookNamespace = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// xmlWorkbookDoc mirrors xl/workbook.xml's root (spec.md §6 "<sheets>
// listing (name, sheetId, r:id)"). workbookPr carries the 1904 date
// system flag (spec.md §12).
type xmlWorkbookDoc struct {
	WorkbookPr struct {
		Date1904 string `xml:"date1904,attr"`
	} `xml:"workbookPr"`
	Sheets struct {
		Sheet []xmlSheetEntry `xml:"sheet"`
	} `xml:"sheets"`
}

type xmlSheetEntry struct {
	Name    string `xml:"name,attr"`
	SheetId int    `xml:"sheetId,attr"`
	State   string `xml:"state,attr"`
	RId     string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

func parseWorkbookXML(data []byte) (*xmlWorkbookDoc, error) {
	var doc xmlWorkbookDoc
	if err := xmlguard.Decode(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// sheetToWrite is one entry of the in-memory workbook being serialized:
// its display name, visibility, assigned relationship id, and target
// worksheet part path.
type sheetToWrite struct {
	Name       string
	Visibility SheetVisibility
	RId        string
	Target     string // "worksheets/sheetN.xml", relative to xl/
}

// writeWorkbookXML renders xl/workbook.xml: workbookPr (date1904 only
// when true — spec.md never wants a default-valued attribute emitted) and
// <sheets> in the caller's given order, each carrying its assigned r:id
// (spec.md §6's (name, sheetId, r:id) triple; sheetId is simply the
// 1-based position, since nothing in this core's model assigns a distinct
// persistent sheetId).
func writeWorkbookXML(sheets []sheetToWrite, date1904 bool) []byte {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("workbook")
	x.Attr("xmlns", workbookNamespace)
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	if date1904 {
		x.OTag("+workbookPr").Attr("date1904", "1").CTag()
	}

	x.OTag("+sheets")
	for i, s := range sheets {
		o := x.OTag("+sheet")
		o.Attr("name", s.Name)
		o.Attr("sheetId", i+1)
		if s.Visibility != SheetVisible {
			o.Attr("state", s.Visibility.xmlState())
		}
		o.Attr("r:id", s.RId)
		x.CTag()
	}
	x.CTag() // sheets

	x.CTag() // workbook
	return bb.Bytes()
}
