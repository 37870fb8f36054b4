package sheet

import "errors"

// ErrOverlappingMerge is returned by AddMerge when the new range intersects
// an already-merged range (spec.md §4.2 "Merge can fail when overlapping
// existing merges").
var ErrOverlappingMerge = errors.New("sheet: overlapping merge range")
