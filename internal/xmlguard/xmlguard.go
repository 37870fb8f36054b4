// Package xmlguard constructs hardened encoding/xml decoders for every
// OOXML part this core reads (spec.md §4.7 "XML parsing hardening
// (mandatory)"). encoding/xml never fetches external entities or DTDs over
// the network, but it will still happily expand a <!DOCTYPE> with inline
// <!ENTITY> definitions (an "internal" billion-laughs vector) and, with a
// non-default Entity map, substitute attacker-controlled text. Decode, Scan
// and NewStreamDecoder reject any part containing a DOCTYPE declaration
// outright, and NewDecoder leaves Entity nil so undefined entity references
// fail the parse instead of silently resolving.
package xmlguard

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ErrDOCTYPE is returned when a part contains a <!DOCTYPE declaration,
// which this core never needs and which OOXML producers never emit —
// spec.md §4.7 mandates DOCTYPE rejection unconditionally.
var ErrDOCTYPE = errors.New("xmlguard: DOCTYPE declarations are not permitted")

// doctypeMarker is checked case-sensitively against the raw bytes, the same
// way a SAX parser's prolog scan would; OOXML parts are always well-formed
// UTF-8/ASCII XML so no case-folding or encoding detection is needed here.
var doctypeMarker = []byte("<!DOCTYPE")

// NewDecoder returns an xml.Decoder over r hardened per spec.md §4.7:
// strict, with no Entity substitution map (so any undefined entity
// reference is a parse error rather than silently expanded). It does not
// look for a DOCTYPE itself; Decode and NewStreamDecoder run that check
// before handing their input to it, and the XML-parsing call sites in this
// module go through those two.
func NewDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = nil
	return dec
}

// Scan reads all of r to check for a DOCTYPE declaration before any
// decoding is attempted, returning the buffered bytes for a subsequent
// NewDecoder call (so callers need not read twice). Returns ErrDOCTYPE if
// one is found anywhere in the document, matching spec.md §4.7's
// unconditional rejection — this core has no legitimate use for a DOCTYPE
// in any part it reads.
func Scan(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xmlguard: read: %w", err)
	}
	if bytes.Contains(data, doctypeMarker) {
		return nil, ErrDOCTYPE
	}
	return data, nil
}

// Decode is the common entry point: scan data for a DOCTYPE, then decode
// it through a hardened decoder into v.
func Decode(data []byte, v any) error {
	if bytes.Contains(data, doctypeMarker) {
		return ErrDOCTYPE
	}
	return NewDecoder(bytes.NewReader(data)).Decode(v)
}

// peekSize is large enough to cover any realistic XML prolog (declaration,
// whitespace, DOCTYPE) without requiring the whole document in memory —
// needed by NewStreamDecoder, which must reject a DOCTYPE without
// buffering an entire large worksheet part (spec.md §4.7/§9 streaming mode
// "constant memory with respect to sheet size").
const peekSize = 8192

// NewStreamDecoder is NewDecoder's bounded-memory counterpart for the
// streaming worksheet reader: it peeks only the first peekSize bytes of r
// for a DOCTYPE declaration, then returns a hardened decoder over the
// reconstructed stream (peeked bytes followed by the remainder of r),
// preserving the constant-memory property the rest of the document still
// gets.
func NewStreamDecoder(r io.Reader) (*xml.Decoder, error) {
	peeked := make([]byte, peekSize)
	n, err := io.ReadFull(r, peeked)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("xmlguard: peek: %w", err)
	}
	peeked = peeked[:n]
	if bytes.Contains(peeked, doctypeMarker) {
		return nil, ErrDOCTYPE
	}
	return NewDecoder(io.MultiReader(bytes.NewReader(peeked), r)), nil
}
