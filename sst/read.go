package sst

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/sheetform/xlcore/internal/xmlguard"
	"github.com/sheetform/xlcore/value"
)

// xmlSST and friends mirror the shared-strings element shapes documented
// in mochen302-excelize/xmlSharedString.go's xlsxSST/xlsxSI/xlsxR, adapted
// to decode straight into this package's value.CellValue variants instead
// of an intermediate excelize-specific tree.
type xmlSST struct {
	XMLName     xml.Name `xml:"sst"`
	Count       int      `xml:"count,attr"`
	UniqueCount int      `xml:"uniqueCount,attr"`
	SI          []xmlSI  `xml:"si"`
}

type xmlSI struct {
	T *xmlText `xml:"t"`
	R []xmlRun `xml:"r"`
}

type xmlText struct {
	Value string `xml:",chardata"`
}

type xmlRun struct {
	RPr *xmlRawInner `xml:"rPr"`
	T   xmlText      `xml:"t"`
}

// xmlRawInner captures an element's inner XML verbatim, used to preserve
// rPr fragments byte-for-byte across a read/write round trip (spec.md
// §4.4 "emit it verbatim" when a prior read supplied one).
type xmlRawInner struct {
	Inner []byte `xml:",innerxml"`
}

// Read parses an xl/sharedStrings.xml part into a Table. A missing count
// attribute is tolerated (spec.md §4.4 read contract): neither count nor
// uniqueCount is used, since the Table holds only the <si> entries and
// does not track string cell instances; writers compute count afresh.
func Read(r io.Reader) (*Table, error) {
	dec, err := xmlguard.NewStreamDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("sst: decode: %w", err)
	}
	var doc xmlSST
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("sst: decode: %w", err)
	}

	t := NewTable()
	for _, si := range doc.SI {
		entry := decodeSI(si)
		idx := len(t.entries)
		t.entries = append(t.entries, entry)
		// A workbook on disk may legitimately contain two <si> with the same
		// plain-text projection (nothing in OOXML requires a reader-facing
		// table to be pre-deduplicated); keep the first occurrence's index so
		// a later Intern of matching text reuses it rather than appending yet
		// another duplicate.
		key := projectionKey(entry)
		if _, exists := t.index[key]; !exists {
			t.index[key] = idx
		}
	}
	return t, nil
}

func decodeSI(si xmlSI) value.CellValue {
	if len(si.R) == 0 {
		if si.T == nil {
			return value.Text{Value: ""}
		}
		return value.Text{Value: si.T.Value}
	}
	runs := make([]value.TextRun, 0, len(si.R))
	for _, r := range si.R {
		run := value.TextRun{Text: r.T.Value}
		if r.RPr != nil {
			run.RawProps = r.RPr.Inner
		}
		runs = append(runs, run)
	}
	return value.RichText{Runs: runs}
}
