package container

import (
	"archive/zip"
	"fmt"
	"io"
)

// PreservedPartStore is a lazy reference onto every ZIP entry this core
// did not parse into its own model (charts, drawings, pivot caches,
// comments' VML, vbaProject.bin, theme, custom XML, ...). It re-opens the
// source ZIP's central directory entry on every Open call rather than
// caching part bodies in memory (spec.md §4.7 "a PreservedPartStore that
// can re-open the source ZIP on demand").
type PreservedPartStore struct {
	byName map[string]*zip.File
	names  []string // in original ZIP entry order
}

func newPreservedPartStore(zf *zip.Reader, known map[string]bool) *PreservedPartStore {
	ps := &PreservedPartStore{byName: make(map[string]*zip.File)}
	for _, f := range zf.File {
		if known[f.Name] {
			continue
		}
		ps.byName[f.Name] = f
		ps.names = append(ps.names, f.Name)
	}
	return ps
}

// Names returns the preserved part names, in the order they appeared in
// the source ZIP's central directory.
func (ps *PreservedPartStore) Names() []string {
	return append([]string(nil), ps.names...)
}

// Open decompresses and returns the raw bytes of the preserved part named
// name. Each call re-reads from the source archive; nothing is cached.
func (ps *PreservedPartStore) Open(name string) ([]byte, error) {
	f, ok := ps.byName[name]
	if !ok {
		return nil, fmt.Errorf("container: preserved part %q not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("container: open %q: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("container: read %q: %w", name, err)
	}
	return data, nil
}

// file returns the underlying *zip.File for name, used internally by the
// write strategies to Writer.Copy a preserved part's raw bytes without
// decompressing them.
func (ps *PreservedPartStore) file(name string) (*zip.File, bool) {
	f, ok := ps.byName[name]
	return f, ok
}
