// Package rels parses OOXML relationship XML files (.rels).
//
// It exists to eliminate duplicated parseRelsXML / xmlRelationships code from
// workbook/ and worksheet/, which cannot share the code directly due to the
// import graph.
package rels

import (
	"fmt"

	"github.com/sheetform/xlcore/internal/xmlguard"
)

// Relationships is the root element of a .rels XML document.
type Relationships struct {
	Relationships []Relationship `xml:"Relationship"`
}

// Relationship is one entry in a .rels XML document.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
	Type   string `xml:"Type,attr"`
}

// ParseRelsXML parses the raw bytes of a .rels XML file and returns a map of
// relationship ID → target string. Decoded through xmlguard per spec.md
// §4.7's mandatory XML parsing hardening (DOCTYPE rejected, no entity
// substitution) — a .rels part is as untrusted as any other container
// entry.
func ParseRelsXML(data []byte) (map[string]string, error) {
	entries, err := ParseRelsXMLFull(data)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(entries))
	for _, rel := range entries {
		m[rel.ID] = rel.Target
	}
	return m, nil
}

// ParseRelsXMLFull is ParseRelsXML's counterpart for callers that also
// need each relationship's Type (the container codec resolves
// officeDocument/styles/sharedStrings relationships by Type, not by a
// fixed id or filename — spec.md §6).
func ParseRelsXMLFull(data []byte) ([]Relationship, error) {
	var r Relationships
	if err := xmlguard.Decode(data, &r); err != nil {
		return nil, fmt.Errorf("parse rels XML: %w", err)
	}
	return r.Relationships, nil
}
