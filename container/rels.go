package container

import (
	"bytes"

	"github.com/adnsv/srw/xml"
)

const relsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"

// relEntry is one <Relationship> this core emits on write. Reading a
// .rels part only ever needs Id -> Target (internal/rels.ParseRelsXML);
// the Type is only needed when this core is itself the producer.
type relEntry struct {
	ID     string
	Type   string
	Target string
	// External marks a hyperlink relationship's Target as a URL outside
	// the package rather than an internal part path (OOXML's
	// TargetMode="External" attribute).
	External bool
}

// writeRels renders a .rels part body in entries' given order — callers
// are responsible for assigning rIds in the stable order spec.md's
// determinism requirements call for (ZIP entry content itself must not
// depend on map iteration order).
func writeRels(entries []relEntry) []byte {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Relationships")
	x.Attr("xmlns", relsNamespace)
	for _, e := range entries {
		o := x.OTag("+Relationship").Attr("Id", e.ID).Attr("Type", e.Type).Attr("Target", e.Target)
		if e.External {
			o.Attr("TargetMode", "External")
		}
		o.CTag()
	}
	x.CTag()

	return bb.Bytes()
}
