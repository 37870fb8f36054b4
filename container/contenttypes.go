package container

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/adnsv/srw/xml"

	"github.com/sheetform/xlcore/internal/xmlguard"
)

const contentTypesNamespace = "http://schemas.openxmlformats.org/package/2006/content-types"

// xmlContentTypes mirrors [Content_Types].xml's <Types> root: a set of
// <Default Extension=.../> entries keyed by file extension, overridden
// per-part by <Override PartName=.../> entries (ECMA-376 Part 2 §10.1.2.2).
type xmlContentTypes struct {
	Default  []xmlDefault  `xml:"Default"`
	Override []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// contentTypeMap resolves a ZIP-entry path to its declared content type,
// falling back to the Default entry for its extension (ECMA-376's
// resolution order: Override beats Default).
type contentTypeMap struct {
	defaults  map[string]string // extension (no dot) -> content-type
	overrides map[string]string // "/abs/path" -> content-type
}

func parseContentTypes(data []byte) (*contentTypeMap, error) {
	var doc xmlContentTypes
	if err := xmlguard.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	m := &contentTypeMap{
		defaults:  make(map[string]string, len(doc.Default)),
		overrides: make(map[string]string, len(doc.Override)),
	}
	for _, d := range doc.Default {
		m.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range doc.Override {
		m.overrides[o.PartName] = o.ContentType
	}
	return m, nil
}

// typeOf returns the content type of the part at absPath (leading "/"),
// and false if neither an Override nor a Default entry matches.
func (m *contentTypeMap) typeOf(absPath string) (string, bool) {
	if ct, ok := m.overrides[absPath]; ok {
		return ct, true
	}
	ext := strings.TrimPrefix(path.Ext(absPath), ".")
	ct, ok := m.defaults[strings.ToLower(ext)]
	return ct, ok
}

// contentTypesBuilder accumulates the part list for a fresh
// [Content_Types].xml during write; defaults cover rels/xml, every other
// part needing an explicit Override (spec.md §6 "[Content_Types].xml
// declaring the content type of every part").
type contentTypesBuilder struct {
	overrides map[string]string
}

func newContentTypesBuilder() *contentTypesBuilder {
	return &contentTypesBuilder{overrides: make(map[string]string)}
}

func (b *contentTypesBuilder) add(absPath, contentType string) {
	b.overrides[absPath] = contentType
}

func (b *contentTypesBuilder) bytes() []byte {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Types")
	x.Attr("xmlns", contentTypesNamespace)
	x.OTag("+Default").Attr("Extension", "rels").Attr("ContentType", ctContentTypes).CTag()
	x.OTag("+Default").Attr("Extension", "xml").Attr("ContentType", "application/xml").CTag()

	paths := make([]string, 0, len(b.overrides))
	for p := range b.overrides {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		x.OTag("+Override").Attr("PartName", p).Attr("ContentType", b.overrides[p]).CTag()
	}

	x.CTag()
	return bb.Bytes()
}
