package container

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sheetform/xlcore/addr"
	"github.com/sheetform/xlcore/sheet"
	"github.com/sheetform/xlcore/sst"
	"github.com/sheetform/xlcore/value"
	"github.com/sheetform/xlcore/worksheet"
	"github.com/sheetform/xlcore/xlstyles"
)

// Compression selects the ZIP storage method for freshly generated parts
// (spec.md §6 writer configuration "compression ∈ {Deflated, Stored}").
// Stored requires the caller to accept larger output in exchange for
// faster, uncompressed debugging builds; Deflated is the default.
type Compression int

const (
	Deflated Compression = iota
	Stored
)

// SSTMode controls whether string cells are written through the shared
// strings table or inline (spec.md §6 "sst_mode ∈ {Auto, Always, Never}").
type SSTMode int

const (
	// SSTAuto applies the heuristic spec.md §9 flags as needing a pinned
	// test: use the shared strings table when the workbook has more than
	// 10 string-cell instances and deduplication saves at least 20% (i.e.
	// distinct entries are no more than 80% of total instances).
	SSTAuto SSTMode = iota
	SSTAlways
	SSTNever
)

// WriterConfig is the write-time configuration object spec.md §6/§9 calls
// for in place of named parameters or boolean flags.
type WriterConfig struct {
	Compression        Compression
	PrettyPrint        bool
	SSTMode            SSTMode
	StrictFormulaGuard bool
	// MaxFileSize, MaxCellCount, and MaxStringLength are write guards (0
	// means unlimited). MaxCellCount and MaxStringLength are checked before
	// any part is generated; MaxFileSize is checked against the finished
	// archive, before WriteBytes returns it.
	MaxFileSize     int64
	MaxCellCount    int
	MaxStringLength int
}

// Errors a write can fail with beyond the usual I/O errors, mirroring the
// read path's zipguard errors (spec.md §7 Security error taxonomy
// CellCountLimit/FileSizeLimit applies symmetrically on write).
var (
	ErrCellCountLimit    = errors.New("container: workbook exceeds configured max cell count")
	ErrStringLengthLimit = errors.New("container: a string value exceeds configured max string length")
	ErrFileSizeLimit     = errors.New("container: generated archive exceeds configured max file size")
)

// Write serializes c to name on disk (spec.md §6 "write(workbook, path,
// config)"). Callers that need atomic replacement of an existing file
// should write to a temporary name and rename on success themselves
// (spec.md §5 "callers should write to a temporary name and atomically
// rename on success") — Write itself just produces the bytes and one
// os.WriteFile call.
func (c *Container) Write(name string, cfg WriterConfig) error {
	data, err := c.WriteBytes(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return wrapf("write "+name, err)
	}
	return nil
}

// WriteBytes renders c to an in-memory .xlsx archive, choosing among the
// three write strategies spec.md §4.7 describes.
func (c *Container) WriteBytes(cfg WriterConfig) ([]byte, error) {
	if err := checkLimits(c.Workbook, cfg); err != nil {
		return nil, err
	}

	var bb bytes.Buffer
	var err error
	switch c.chooseStrategy() {
	case strategyVerbatim:
		err = c.writeVerbatim(&bb)
	case strategySurgical:
		err = c.writeSurgical(&bb, cfg)
	default:
		err = c.writeFull(&bb, cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.MaxFileSize > 0 && int64(bb.Len()) > cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileSizeLimit, bb.Len(), cfg.MaxFileSize)
	}
	return bb.Bytes(), nil
}

func checkLimits(wb *sheet.Workbook, cfg WriterConfig) error {
	if cfg.MaxCellCount == 0 && cfg.MaxStringLength == 0 {
		return nil
	}
	cells := 0
	for _, sh := range wb.Sheets() {
		for _, row := range sh.Rows() {
			for _, c := range row {
				cells++
				if cfg.MaxCellCount > 0 && cells > cfg.MaxCellCount {
					return fmt.Errorf("%w: limit %d", ErrCellCountLimit, cfg.MaxCellCount)
				}
				if cfg.MaxStringLength > 0 {
					if n := stringLen(c); n > cfg.MaxStringLength {
						return fmt.Errorf("%w: %d characters (limit %d) at %s", ErrStringLengthLimit, n, cfg.MaxStringLength, c.Ref)
					}
				}
			}
		}
	}
	return nil
}

func stringLen(c sheet.Cell) int {
	switch c.Value.(type) {
	case value.Text, value.RichText:
		return utf8.RuneCountInString(sst.PlainText(c.Value))
	default:
		return 0
	}
}

// writeStrategy is the internal decision chooseStrategy makes, per spec.md
// §4.7's three numbered write strategies.
type writeStrategy int

const (
	strategyFull writeStrategy = iota
	strategyVerbatim
	strategySurgical
)

// chooseStrategy implements spec.md §4.7's write-time decision:
//  1. verbatim copy when a SourceContext is present, the sheet set/order
//     still matches it, and nothing is marked dirty;
//  2. surgical hybrid when a SourceContext is present, the structure still
//     matches, but something is dirty;
//  3. full regeneration otherwise (no SourceContext, or the sheet set/
//     order no longer matches what was read).
//
// This Container's fingerprint was computed from the exact zf it still
// holds, so a mismatch can only arise if a caller swapped c.Workbook.Source
// for one describing different bytes — this core never does that itself,
// so the fingerprint comparison spec.md describes collapses to the
// structural check below.
func (c *Container) chooseStrategy() writeStrategy {
	wb := c.Workbook
	if wb.Source == nil || c.zf == nil {
		return strategyFull
	}
	if !c.structureMatches() {
		return strategyFull
	}
	if !wb.Tracker().AnyDirty() {
		return strategyVerbatim
	}
	return strategySurgical
}

// structureMatches reports whether the workbook's current sheet set and
// order is identical to what was read — spec.md §4.7's "manifest differs
// structurally (added/removed sheets)" full-regeneration trigger.
func (c *Container) structureMatches() bool {
	sheets := c.Workbook.Sheets()
	if len(sheets) != len(c.originalSheetName) {
		return false
	}
	for i, sh := range sheets {
		if sh.Name != c.originalSheetName[i] {
			return false
		}
	}
	return true
}

// writeVerbatim streams every entry of the source archive to w unchanged,
// in its original ZIP central-directory order (spec.md §4.7 strategy 1).
func (c *Container) writeVerbatim(w *bytes.Buffer) error {
	pw := newPartWriter(w)
	for _, f := range c.zf.File {
		if err := pw.copyRaw(f); err != nil {
			return wrapf("verbatim copy "+f.Name, err)
		}
	}
	return pw.Close()
}

// writeSurgical regenerates only the dirty worksheet/styles/sharedStrings
// parts at their original paths and copies everything else byte-for-byte
// from the source archive (spec.md §4.7 strategy 2). Because
// StyleRegistry and sst.Table are append-only, a sheet copied verbatim
// keeps referring to valid style/string indices even after other sheets
// add new entries — no sheet needs to be touched merely because some
// other sheet or the registry changed.
func (c *Container) writeSurgical(w *bytes.Buffer, cfg WriterConfig) error {
	wb := c.Workbook
	tracker := wb.Tracker()

	if tracker.StylesDirty() && c.stylesPath == "" {
		return c.writeFull(w, cfg)
	}
	if tracker.SSTDirty() && c.sstPath == "" {
		return c.writeFull(w, cfg)
	}

	regenerated := make(map[string][]byte)
	// A source without a shared strings table keeps dirty sheets' strings
	// inline; with one, new strings are interned into it and the part is
	// regenerated below if that added entries.
	table := c.SST
	sstLen := 0
	if table != nil {
		sstLen = table.Len()
	}

	for _, sh := range wb.Sheets() {
		if !tracker.SheetDirty(sh.Name) {
			continue
		}
		p, ok := c.sheetPath[sh.Name]
		if !ok {
			// A sheet renamed in place still counts as structure-matching
			// by position, but has no recorded original path; fall back to
			// a full regeneration rather than guess one.
			return c.writeFull(w, cfg)
		}
		rids, hlRels := assignHyperlinkRIDs(worksheet.CollectHyperlinks(sh))
		wcfg := worksheet.WriteConfig{
			SST:                table,
			StrictFormulaGuard: cfg.StrictFormulaGuard,
			Date1904:           wb.Date1904,
			Pretty:             cfg.PrettyPrint,
			HyperlinkRIDs:      rids,
		}
		regenerated[p] = worksheet.Write(sh, wcfg)
		if len(hlRels) > 0 {
			regenerated[sheetRelsPath(p)] = writeRels(hlRels)
		}
	}

	if tracker.StylesDirty() {
		regenerated[c.stylesPath] = xlstyles.Write(wb.Sheets()[0].Registry())
	}
	if tracker.SSTDirty() || (table != nil && table.Len() != sstLen) {
		if table == nil {
			table = sst.NewTable()
		}
		total := countStringCells(wb)
		regenerated[c.sstPath] = sst.WriteWithTotalCount(table, total)
	}

	pw := newPartWriter(w).withCompression(cfg.Compression)
	seen := make(map[string]bool, len(regenerated))
	for _, f := range c.zf.File {
		if data, ok := regenerated[f.Name]; ok {
			if err := pw.writeBlob(f.Name, data); err != nil {
				return wrapf("write "+f.Name, err)
			}
			seen[f.Name] = true
			continue
		}
		if err := pw.copyRaw(f); err != nil {
			return wrapf("copy "+f.Name, err)
		}
	}
	// Any regenerated part with no corresponding original entry (a
	// worksheet's hyperlink .rels that did not previously exist) is
	// appended after the copied/regenerated originals.
	var newNames []string
	for name := range regenerated {
		if !seen[name] {
			newNames = append(newNames, name)
		}
	}
	sort.Strings(newNames)
	for _, name := range newNames {
		if err := pw.writeBlob(name, regenerated[name]); err != nil {
			return wrapf("write "+name, err)
		}
	}
	return pw.Close()
}

// writeFull regenerates every part of the archive from the in-memory
// workbook (spec.md §4.7 strategy 3). It performs the two-phase scan
// spec.md describes: phase 1 walks every sheet to finalize the shared
// strings table (the StyleRegistry is already append-only and fully
// populated as a side effect of prior reads/patches, so it needs no
// separate finalization pass); phase 2 emits parts using those now-stable
// indices. ZIP entries are written content-types, rels, workbook,
// worksheets, styles, shared strings, preserved parts, matching spec.md
// §4.7's mandated order.
func (c *Container) writeFull(w *bytes.Buffer, cfg WriterConfig) error {
	wb := c.Workbook
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return errors.New("container: workbook has no sheets to write")
	}
	registry := sheets[0].Registry()

	useSST := decideSSTMode(wb, cfg)
	var table *sst.Table
	if useSST {
		table = sst.NewTable()
	}

	sheetMeta := make([]sheetToWrite, len(sheets))
	worksheetBody := make(map[string][]byte, len(sheets))
	worksheetRels := make(map[string][]byte)
	for i, sh := range sheets {
		p := worksheetPathFor(c, sh.Name, i+1)
		sheetMeta[i] = sheetToWrite{
			Name:       sh.Name,
			Visibility: c.Visibility[sh.Name],
			RId:        fmt.Sprintf("rId%d", i+1),
			Target:     xlRelative(p),
		}
		rids, hlRels := assignHyperlinkRIDs(worksheet.CollectHyperlinks(sh))
		wcfg := worksheet.WriteConfig{
			SST:                table,
			StrictFormulaGuard: cfg.StrictFormulaGuard,
			Date1904:           wb.Date1904,
			Pretty:             cfg.PrettyPrint,
			HyperlinkRIDs:      rids,
		}
		worksheetBody[p] = worksheet.Write(sh, wcfg)
		if len(hlRels) > 0 {
			worksheetRels[sheetRelsPath(p)] = writeRels(hlRels)
		}
	}

	nextRId := len(sheets) + 1
	const stylesPath = "xl/styles.xml"
	const sstPath = "xl/sharedStrings.xml"

	wbRels := make([]relEntry, 0, len(sheets)+2)
	for i := range sheets {
		wbRels = append(wbRels, relEntry{ID: sheetMeta[i].RId, Type: relWorksheet, Target: sheetMeta[i].Target})
	}
	wbRels = append(wbRels, relEntry{ID: fmt.Sprintf("rId%d", nextRId), Type: relStyles, Target: "styles.xml"})
	nextRId++
	if useSST {
		wbRels = append(wbRels, relEntry{ID: fmt.Sprintf("rId%d", nextRId), Type: relSharedStrings, Target: "sharedStrings.xml"})
		nextRId++
	}

	ct := newContentTypesBuilder()
	ct.add("/xl/workbook.xml", ctWorkbook)
	ct.add("/"+stylesPath, ctStyles)
	if useSST {
		ct.add("/"+sstPath, ctSharedStrings)
	}
	for i := range sheets {
		ct.add("/"+worksheetPathFor(c, sheets[i].Name, i+1), ctWorksheet)
	}

	pw := newPartWriter(w).withCompression(cfg.Compression)
	if err := pw.writeBlob("[Content_Types].xml", ct.bytes()); err != nil {
		return wrapf("write content types", err)
	}
	if err := pw.writeBlob("_rels/.rels", writeRels([]relEntry{
		{ID: "rId1", Type: relOfficeDocument, Target: "xl/workbook.xml"},
	})); err != nil {
		return wrapf("write root rels", err)
	}
	if err := pw.writeBlob("xl/workbook.xml", writeWorkbookXML(sheetMeta, wb.Date1904)); err != nil {
		return wrapf("write workbook.xml", err)
	}
	if err := pw.writeBlob("xl/_rels/workbook.xml.rels", writeRels(wbRels)); err != nil {
		return wrapf("write workbook rels", err)
	}
	for i := range sheets {
		p := worksheetPathFor(c, sheets[i].Name, i+1)
		if err := pw.writeBlob(p, worksheetBody[p]); err != nil {
			return wrapf("write "+p, err)
		}
		if rel, ok := worksheetRels[sheetRelsPath(p)]; ok {
			if err := pw.writeBlob(sheetRelsPath(p), rel); err != nil {
				return wrapf("write "+sheetRelsPath(p), err)
			}
		}
	}
	if err := pw.writeBlob(stylesPath, xlstyles.Write(registry)); err != nil {
		return wrapf("write styles.xml", err)
	}
	if useSST {
		total := countStringCells(wb)
		if err := pw.writeBlob(sstPath, sst.WriteWithTotalCount(table, total)); err != nil {
			return wrapf("write sharedStrings.xml", err)
		}
	}

	if c.Preserved != nil {
		for _, name := range c.Preserved.Names() {
			// Per-sheet preserved artifacts (drawings/comments rels tied to
			// the old worksheet naming) are dropped on full regeneration
			// rather than risk a dangling reference to a renamed/renumbered
			// worksheet part.
			if strings.HasPrefix(name, "xl/worksheets/") {
				continue
			}
			f, ok := c.Preserved.file(name)
			if !ok {
				continue
			}
			if err := pw.copyRaw(f); err != nil {
				return wrapf("copy preserved "+name, err)
			}
		}
	}
	return pw.Close()
}

// worksheetPathFor reuses a sheet's original part path when one is known
// (keeping any preserved per-sheet artifacts that reference it valid),
// falling back to a canonical "xl/worksheets/sheet<N>.xml" for a sheet
// with no recorded source path (new, or the container has no source at
// all).
func worksheetPathFor(c *Container, name string, position int) string {
	if c.sheetPath != nil {
		if p, ok := c.sheetPath[name]; ok {
			return p
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", position)
}

// xlRelative converts an absolute-from-package-root part path into the
// form a relationship Target relative to xl/ needs.
func xlRelative(p string) string {
	return strings.TrimPrefix(strings.TrimPrefix(p, "xl/"), "/")
}

func sheetRelsPath(worksheetPath string) string {
	dir := path.Dir(worksheetPath)
	return path.Join(dir, "_rels", path.Base(worksheetPath)+".rels")
}

// assignHyperlinkRIDs assigns each hyperlinked ref a relationship id in
// ascending ref order (so output does not depend on map iteration order)
// and builds the matching External Relationship entries for the
// worksheet's .rels part.
func assignHyperlinkRIDs(links map[addr.ARef]string) (map[addr.ARef]string, []relEntry) {
	if len(links) == 0 {
		return nil, nil
	}
	refs := make([]addr.ARef, 0, len(links))
	for ref := range links {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })

	rids := make(map[addr.ARef]string, len(refs))
	entries := make([]relEntry, 0, len(refs))
	for i, ref := range refs {
		id := fmt.Sprintf("rId%d", i+1)
		rids[ref] = id
		entries = append(entries, relEntry{ID: id, Type: relHyperlink, Target: links[ref], External: true})
	}
	return rids, entries
}

func countStringCells(wb *sheet.Workbook) int {
	n := 0
	for _, sh := range wb.Sheets() {
		for _, cells := range sh.Rows() {
			for _, c := range cells {
				switch c.Value.(type) {
				case value.Text, value.RichText:
					n++
				}
			}
		}
	}
	return n
}

// decideSSTMode resolves cfg.SSTMode against the workbook's actual string
// population, pinning the heuristic spec.md §9 flags as needing a fixed
// rule: Auto uses the shared strings table when there are more than 10
// string-cell instances and distinct entries are no more than 80% of that
// total (at least 20% deduplication savings).
func decideSSTMode(wb *sheet.Workbook, cfg WriterConfig) bool {
	switch cfg.SSTMode {
	case SSTAlways:
		return true
	case SSTNever:
		return false
	default:
		total, distinct := stringStats(wb)
		if total <= 10 {
			return false
		}
		return float64(distinct) <= 0.8*float64(total)
	}
}

func stringStats(wb *sheet.Workbook) (total, distinct int) {
	seen := make(map[string]bool)
	for _, sh := range wb.Sheets() {
		for _, cells := range sh.Rows() {
			for _, c := range cells {
				switch c.Value.(type) {
				case value.Text, value.RichText:
				default:
					continue
				}
				total++
				key := sst.PlainText(c.Value)
				if !seen[key] {
					seen[key] = true
					distinct++
				}
			}
		}
	}
	return total, distinct
}
