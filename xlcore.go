// Package xlcore provides a pure, deterministic reader and writer for
// Microsoft Excel (.xlsx) workbooks. No cgo is required, and encoding a
// workbook twice from the same logical state always produces the same
// bytes.
//
// # Quick start
//
//	c, err := xlcore.Open("Book1.xlsx")
//	if err != nil { ... }
//	defer c.Close()
//
//	sh, _ := c.Workbook.Sheet("Sheet1")
//	for _, cells := range sh.Rows() {
//	    for _, cell := range cells {
//	        fmt.Printf("(%s) = %v\n", cell.Ref, cell.Value)
//	    }
//	}
//
// # Editing
//
// The sheet model is never mutated in place. Every edit goes through the
// patch algebra: a [patch.Patch] describes the change, and
// [patch.ApplyToWorkbook] clones the affected sheet, applies it, and marks
// the workbook's modification tracker so Write knows what must be
// regenerated:
//
//	_, err := patch.ApplyToWorkbook(c.Workbook, "Sheet1", patch.Put{
//	    Ref:   xlcore.MustRef("A1"),
//	    Value: value.Text{Value: "hello"},
//	})
//
// # Writing
//
// Write picks the cheapest strategy that is still correct for the current
// state: a byte-for-byte copy of the source archive when nothing changed,
// a surgical regeneration of only the dirty parts when the sheet set and
// order are unchanged, or a full rebuild otherwise (spec.md's write
// strategies, implemented in the container package):
//
//	err = c.Write("Book1.xlsx", container.WriterConfig{})
//
// # Streaming
//
// For workbooks too large to hold entirely in memory, [StreamRows] decodes
// one worksheet part row by row without materializing the whole sheet, and
// [NewStreamWriter] emits one row at a time directly onto an io.Writer.
package xlcore

import (
	"io"
	"os"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/container"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/worksheet"
)

// Version is the current version of this library.
const Version = "0.1.0"

// Open reads the named .xlsx file into memory. The caller should call
// Close on the returned Container when done, though Close is currently a
// no-op kept for API symmetry (see [container.Container.Close]).
func Open(name string) (*container.Container, error) {
	return container.Open(name)
}

// ReadBytes reads an .xlsx archive already held in memory.
func ReadBytes(data []byte) (*container.Container, error) {
	return container.ReadBytes(data)
}

// New builds an empty workbook with one sheet named sheetName, ready for
// patches and Write. There is no source archive backing it, so Write
// always takes the full-regeneration strategy.
func New(sheetName string) *sheet.Workbook {
	wb := sheet.NewWorkbook()
	reg := style.NewRegistry()
	_ = wb.Put(sheet.New(sheetName, reg))
	return wb
}

// WriteWorkbook writes wb to name as a standalone archive, with no prior
// source context to preserve. Use [container.Container.Write] instead when
// wb was produced by Open or ReadBytes and any round-trip fidelity with
// the source archive's untouched parts should be kept.
func WriteWorkbook(wb *sheet.Workbook, name string, cfg container.WriterConfig) error {
	data, err := WriteWorkbookBytes(wb, cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

// WriteWorkbookBytes is WriteWorkbook without touching the filesystem.
func WriteWorkbookBytes(wb *sheet.Workbook, cfg container.WriterConfig) ([]byte, error) {
	c := &container.Container{Workbook: wb}
	return c.WriteBytes(cfg)
}

// StreamRows decodes a single worksheet part from r one row at a time,
// without holding the whole sheet in memory (spec.md's streaming read
// path). st and reg come from the workbook's shared tables; pass nil for
// st when the part carries no shared-string references.
func StreamRows(r io.Reader, st *sst.Table, reg *style.StyleRegistry, date1904 bool) func(yield func(worksheet.Row, error) bool) {
	return worksheet.StreamRows(r, st, reg, date1904)
}

// NewStreamWriter returns a writer that emits sh's worksheet XML onto w one
// row at a time via WriteRow, for producing large sheets without building
// the whole part in memory first. The caller must call Close to finish the
// document.
func NewStreamWriter(w io.Writer, sh *sheet.Sheet, cfg worksheet.WriteConfig) *worksheet.StreamWriter {
	return worksheet.NewStreamWriter(w, sh, cfg)
}

// MustRef parses an A1-style reference such as "B7", panicking on a
// malformed one. It exists for call sites (tests, example code) that know
// the reference is a compile-time constant; production code reading
// addresses from user input should use [addr.ParseARef] and handle the
// error.
func MustRef(s string) addr.ARef {
	ref, err := addr.ParseARef(s)
	if err != nil {
		panic(err)
	}
	return ref
}
