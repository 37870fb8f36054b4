package container

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/internal/rels"
	"github.com/sheetform/xlcore/internal/zipguard"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
	"github.com/sheetform/xlcore/style"
	"github.com/sheetform/xlcore/worksheet"
	"github.com/sheetform/xlcore/xlstyles"
)

// SheetWarning pairs a worksheet.Warning with the sheet it came from, so a
// caller reading many sheets can tell which one produced a recoverable
// per-cell issue (spec.md §4.7 failure semantics: "the specific sheet
// surfaces the error while other sheets remain readable").
type SheetWarning struct {
	Sheet string
	worksheet.Warning
}

// Open reads an .xlsx file from disk. Computing the SourceContext
// fingerprint (spec.md §4.7 "SHA-256 of the container") requires the whole
// file's bytes regardless, so Open reads the file fully into memory rather
// than keeping a lingering OS file handle open — Container.Close is a
// no-op for a Container returned by Open, kept only so callers can defer
// it unconditionally alongside one returned by a future streaming opener.
func Open(name string) (*Container, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, wrapf("open "+name, err)
	}
	c, err := readBytes(data, name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ReadBytes parses an in-memory .xlsx workbook's raw bytes.
func ReadBytes(data []byte) (*Container, error) {
	return readBytes(data, "")
}

func readBytes(data []byte, sourcePath string) (*Container, error) {
	zf, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, wrapf("open reader", err)
	}
	fingerprint := sha256.Sum256(data)
	return readZip(zf, sourcePath, fingerprint)
}

// readZip performs the actual parse once the archive is open and its raw
// bytes' fingerprint is known. sourcePath is "" for ReadBytes.
func readZip(zf *zip.Reader, sourcePath string, fingerprint [32]byte) (*Container, error) {
	if _, err := zipguard.CheckArchive(zf, zipguard.Default); err != nil {
		return nil, wrapf("security check", err)
	}

	byName := make(map[string]*zip.File, len(zf.File))
	names := make([]string, 0, len(zf.File))
	for _, f := range zf.File {
		byName[f.Name] = f
		names = append(names, f.Name)
	}
	sort.Strings(names)

	known := make(map[string]bool)
	readEntry := func(name string) ([]byte, error) {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("container: %q not found in archive", name)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, wrapf("open "+name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, wrapf("read "+name, err)
		}
		known[name] = true
		return data, nil
	}

	if _, ok := byName["[Content_Types].xml"]; !ok {
		return nil, ErrMissingContentTypes
	}
	if _, err := readEntry("[Content_Types].xml"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingContentTypes, err)
	}

	rootRelsData, err := readEntry("_rels/.rels")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWorkbookPart, err)
	}
	rootRels, err := relsWithType(rootRelsData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWorkbookPart, err)
	}
	workbookPath, ok := findByType(rootRels, relOfficeDocument)
	if !ok {
		return nil, ErrNoWorkbookPart
	}
	workbookPath = resolvePath("", workbookPath)

	workbookData, err := readEntry(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWorkbookPart, err)
	}
	doc, err := parseWorkbookXML(workbookData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWorkbookPart, err)
	}
	date1904 := doc.WorkbookPr.Date1904 == "1" || doc.WorkbookPr.Date1904 == "true"

	workbookDir := path.Dir(workbookPath)
	workbookRelsPath := path.Join(workbookDir, "_rels", path.Base(workbookPath)+".rels")
	workbookRelsData, err := readEntry(workbookRelsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: missing %s: %v", ErrNoWorkbookPart, workbookRelsPath, err)
	}
	workbookRelsRaw, err := relsWithType(workbookRelsData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWorkbookPart, err)
	}
	workbookRels := make(map[string]relEntry, len(workbookRelsRaw))
	for _, r := range workbookRelsRaw {
		workbookRels[r.ID] = r
	}

	reg := style.NewRegistry()
	var stylesEntryPath string
	if p, ok := findByType(workbookRelsRaw, relStyles); ok {
		stylesEntryPath = resolvePath(workbookDir, p)
		if data, err := readEntry(stylesEntryPath); err == nil {
			if parsed, err := xlstyles.Read(data); err == nil {
				reg = parsed
			}
		}
	}

	var table *sst.Table
	var sstEntryPath string
	if p, ok := findByType(workbookRelsRaw, relSharedStrings); ok {
		sstEntryPath = resolvePath(workbookDir, p)
		if data, err := readEntry(sstEntryPath); err == nil {
			if parsed, err := sst.Read(bytes.NewReader(data)); err == nil {
				table = parsed
			}
		}
	}

	wb := sheet.NewWorkbook()
	wb.Date1904 = date1904
	visibility := make(map[string]SheetVisibility, len(doc.Sheets.Sheet))
	sheetPaths := make(map[string]string, len(doc.Sheets.Sheet))
	originalSheetNames := make([]string, 0, len(doc.Sheets.Sheet))
	var warnings []SheetWarning

	for _, se := range doc.Sheets.Sheet {
		originalSheetNames = append(originalSheetNames, se.Name)
		rel, ok := workbookRels[se.RId]
		if !ok {
			return nil, fmt.Errorf("%w: sheet %q: no relationship for r:id %q", ErrNoWorkbookPart, se.Name, se.RId)
		}
		sheetPath := resolvePath(workbookDir, rel.Target)
		sheetPaths[se.Name] = sheetPath

		sheetData, err := readEntry(sheetPath)
		if err != nil {
			warnings = append(warnings, SheetWarning{Sheet: se.Name, Warning: worksheet.Warning{Err: fmt.Errorf("worksheet: %w", err)}})
			wb.Put(sheet.New(se.Name, reg))
			visibility[se.Name] = parseSheetVisibility(se.State)
			continue
		}

		decoded, err := worksheet.Read(sheetData, table, reg, date1904)
		if err != nil {
			warnings = append(warnings, SheetWarning{Sheet: se.Name, Warning: worksheet.Warning{Err: err}})
			wb.Put(sheet.New(se.Name, reg))
			visibility[se.Name] = parseSheetVisibility(se.State)
			continue
		}
		for _, w := range decoded.Warnings {
			warnings = append(warnings, SheetWarning{Sheet: se.Name, Warning: w})
		}

		sh := sheet.New(se.Name, reg)
		for _, cell := range decoded.Cells {
			sh.SetCell(cell)
		}
		for _, m := range decoded.Merges {
			_ = sh.AddMerge(m)
		}
		for r, p := range decoded.RowProps {
			sh.SetRowProps(r, p)
		}
		for colIdx, p := range decoded.ColProps {
			sh.SetColProps(colIdx, p)
		}

		if len(decoded.Hyperlinks) > 0 {
			sheetDir := path.Dir(sheetPath)
			sheetRelsPath := path.Join(sheetDir, "_rels", path.Base(sheetPath)+".rels")
			if relsData, err := readEntry(sheetRelsPath); err == nil {
				if hlRels, err := rels.ParseRelsXML(relsData); err == nil {
					applyHyperlinks(sh, decoded.Hyperlinks, hlRels)
				}
			}
		}

		wb.Put(sh)
		visibility[se.Name] = parseSheetVisibility(se.State)
	}

	manifest := append([]string(nil), names...)
	wb.Source = &sheet.SourceContext{
		Path:        sourcePath,
		Fingerprint: fingerprint,
		PartNames:   manifest,
	}

	return &Container{
		Workbook:          wb,
		Visibility:        visibility,
		Preserved:         newPreservedPartStore(zf, known),
		SST:               table,
		zf:                zf,
		warnings:          warnings,
		originalSheetName: originalSheetNames,
		sheetPath:         sheetPaths,
		stylesPath:        stylesEntryPath,
		sstPath:           sstEntryPath,
		workbookPath:      workbookPath,
		workbookRelsPath:  workbookRelsPath,
	}, nil
}

// applyHyperlinks resolves each decoded hyperlink's relationship id to its
// target URL and stores it on the cell at that ref, creating the cell if
// the hyperlink is the only thing present there.
func applyHyperlinks(sh *sheet.Sheet, byRef map[addr.ARef]string, targets map[string]string) {
	for ref, rid := range byRef {
		target, ok := targets[rid]
		if !ok {
			continue
		}
		c, _ := sh.Cell(ref)
		c.Ref = ref
		c.Hyperlink = target
		sh.SetCell(c)
	}
}

func relsWithType(data []byte) ([]relEntry, error) {
	parsed, err := rels.ParseRelsXMLFull(data)
	if err != nil {
		return nil, err
	}
	out := make([]relEntry, 0, len(parsed))
	for _, r := range parsed {
		out = append(out, relEntry{ID: r.ID, Type: r.Type, Target: r.Target})
	}
	return out, nil
}

func findByType(entries []relEntry, relType string) (string, bool) {
	for _, e := range entries {
		if e.Type == relType {
			return e.Target, true
		}
	}
	return "", false
}

// resolvePath resolves a relationship Target (relative to base, or an
// absolute package path starting with "/") to a ZIP-entry name with no
// leading slash.
func resolvePath(base, target string) string {
	target = strings.ReplaceAll(target, `\`, "/")
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(base, target))
}
