// Package container implements the ZIP/OOXML package codec: relationship
// graph resolution, content-types, the three write strategies (verbatim
// copy, surgical hybrid, full regeneration), and the PreservedPartStore
// that keeps unknown parts (charts, drawings, theme, vbaProject.bin, ...)
// round-tripping byte-for-byte (spec.md §4.7/§6/§9).
//
// Grounded on workbook/workbook.go's readZipEntry/readRels/sheet-resolved-
// by-relationship-id pattern, re-expressed for XML workbook.xml/.rels
// instead of BIFF12, and on adnsv-go-xl/xl/zfs.go's Storage interface,
// generalized from fresh-file-only writing into the surgical writer's
// three strategies with fixed (epoch-zero) ZIP entry timestamps.
package container

import (
	"archive/zip"
	"errors"
	"fmt"

	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
)

// content-type strings for every part this core itself understands.
const (
	ctContentTypes  = "application/vnd.openxmlformats-package.relationships+xml"
	ctWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
)

// relationship types this core resolves by r:id rather than by filename
// (spec.md §6 "Worksheet numeric filename is arbitrary; resolution must
// always go through r:id").
const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relSharedStrings  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
	relHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// ErrNoWorkbookPart is returned when the package root relationships do not
// resolve to an xl/workbook.xml part (spec.md §4.7 "malformed worksheet
// body fails the whole read only if the workbook skeleton... is
// unrecoverable").
var ErrNoWorkbookPart = errors.New("container: no xl/workbook.xml relationship found")

// ErrMissingContentTypes is returned when [Content_Types].xml is absent or
// cannot be read — part of the unrecoverable workbook skeleton. Its content
// is not parsed on read.
var ErrMissingContentTypes = errors.New("container: missing or unreadable [Content_Types].xml")

// SheetVisibility mirrors the xl/workbook.xml <sheet state=...> values
// (spec.md §12 "Sheet visibility", grounded on go-xlsb's
// SheetVisible/SheetHidden/SheetVeryHidden constants).
type SheetVisibility int

const (
	SheetVisible SheetVisibility = iota
	SheetHidden
	SheetVeryHidden
)

func (v SheetVisibility) xmlState() string {
	switch v {
	case SheetHidden:
		return "hidden"
	case SheetVeryHidden:
		return "veryHidden"
	default:
		return "visible"
	}
}

func parseSheetVisibility(state string) SheetVisibility {
	switch state {
	case "hidden":
		return SheetHidden
	case "veryHidden":
		return SheetVeryHidden
	default:
		return SheetVisible
	}
}

// Container wraps a parsed sheet.Workbook with the container-specific
// state the pure sheet/style/value/patch layers deliberately know nothing
// about: which sheets are hidden, and a lazy handle onto every part this
// core did not understand. sheet.Workbook itself stays free of any
// zip/xml dependency; Container is where that impurity lives.
type Container struct {
	Workbook   *sheet.Workbook
	Visibility map[string]SheetVisibility // sheet name -> visibility
	Preserved  *PreservedPartStore
	SST        *sst.Table // the shared strings table read from the source, nil if none

	zf                *zip.Reader // source archive, kept for verbatim/surgical write strategies
	warnings          []SheetWarning
	originalSheetName []string          // sheet names in their original xl/workbook.xml order
	sheetPath         map[string]string // sheet name -> original worksheet part path
	stylesPath        string            // "" if the source had no xl/styles.xml
	sstPath           string            // "" if the source had no xl/sharedStrings.xml
	workbookPath      string
	workbookRelsPath  string
}

// Close releases resources held by the Container. Both Open and ReadBytes
// buffer the whole source into memory (the SourceContext fingerprint needs
// every byte regardless), so there is no lingering file handle to release;
// Close is a safe no-op kept for API symmetry with a future streaming
// opener.
func (c *Container) Close() error {
	return nil
}

// Warnings returns every recoverable per-sheet issue encountered while
// reading (spec.md §4.7 "the specific sheet surfaces the error while other
// sheets remain readable").
func (c *Container) Warnings() []SheetWarning {
	return append([]SheetWarning(nil), c.warnings...)
}

func wrapf(op string, err error) error {
	return fmt.Errorf("container: %s: %w", op, err)
}
