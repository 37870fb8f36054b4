// Package zipguard enforces the container-level security limits spec.md
// §4.7/§7/§8 mandate before any ZIP entry is decompressed: a cap on the
// number of entries, a cap on total uncompressed size, a per-entry
// compression-ratio cap (the classic "zip bomb" defense), and rejection of
// entry names that could escape the archive root.
package zipguard

import (
	"archive/zip"
	"errors"
	"fmt"
	"path"
	"strings"
)

// Limits bounds what a single ZIP archive is allowed to contain. The zero
// value is not safe to use directly for untrusted input; Default provides
// sane ceilings for spreadsheet-sized documents.
type Limits struct {
	MaxEntries          int
	MaxTotalUncompressed int64
	MaxEntryRatio        float64 // uncompressed / compressed, per entry
}

// Default mirrors the ceilings a production spreadsheet reader needs:
// generous enough for legitimate large workbooks, tight enough to reject
// the pathological archives spec.md §8's security tests construct.
var Default = Limits{
	MaxEntries:           10_000,
	MaxTotalUncompressed: 4 << 30, // 4 GiB
	MaxEntryRatio:        100,
}

// ErrTooManyEntries, ErrFileSizeLimit, ErrZipBomb, and ErrPathTraversal
// correspond to spec.md §7's Security error taxonomy
// (CellCountLimit/FileSizeLimit/ZipBomb/PathTraversal); the container
// package wraps these with the offending entry's name.
var (
	ErrTooManyEntries = errors.New("zipguard: too many entries")
	ErrFileSizeLimit  = errors.New("zipguard: total uncompressed size exceeds limit")
	ErrZipBomb        = errors.New("zipguard: entry compression ratio exceeds limit")
	ErrPathTraversal  = errors.New("zipguard: entry name escapes archive root")
)

// CheckEntryName rejects names containing ".." path segments or an
// absolute path — spec.md §4.7 "rejection of entry names containing `..`
// or absolute paths" — checked against the cleaned, slash-normalized form
// so "a/../../b", "/x", and "a//../../b" are all caught regardless of how
// the producer encoded them.
func CheckEntryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty entry name", ErrPathTraversal)
	}
	slash := strings.ReplaceAll(name, `\`, "/")
	if path.IsAbs(slash) || strings.HasPrefix(slash, "/") {
		return fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}
	cleaned := path.Clean(slash)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}
	for _, seg := range strings.Split(slash, "/") {
		if seg == ".." {
			return fmt.Errorf("%w: %s", ErrPathTraversal, name)
		}
	}
	return nil
}

// CheckArchive validates entry count and per-entry name/ratio constraints
// for every entry in zr without decompressing any of them, and checks the
// running total of declared uncompressed size against
// lim.MaxTotalUncompressed as it goes, returning that total — the
// archive's central directory already states UncompressedSize64 per entry,
// so this check needs no decompression pass of its own.
func CheckArchive(zr *zip.Reader, lim Limits) (totalUncompressed int64, err error) {
	if len(zr.File) > lim.MaxEntries {
		return 0, fmt.Errorf("%w: %d entries (limit %d)", ErrTooManyEntries, len(zr.File), lim.MaxEntries)
	}
	for _, f := range zr.File {
		if err := CheckEntryName(f.Name); err != nil {
			return 0, err
		}
		if f.CompressedSize64 > 0 {
			ratio := float64(f.UncompressedSize64) / float64(f.CompressedSize64)
			if ratio > lim.MaxEntryRatio {
				return 0, fmt.Errorf("%w: %s (ratio %.1f, limit %.1f)", ErrZipBomb, f.Name, ratio, lim.MaxEntryRatio)
			}
		}
		totalUncompressed += int64(f.UncompressedSize64)
		if totalUncompressed > lim.MaxTotalUncompressed {
			return 0, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileSizeLimit, totalUncompressed, lim.MaxTotalUncompressed)
		}
	}
	return totalUncompressed, nil
}
