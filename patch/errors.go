package patch

import (
	"errors"
	"fmt"
)

// ErrUnmergeNotFound is returned when an Unmerge patch's range does not
// exactly match an existing merged range.
var ErrUnmergeNotFound = errors.New("patch: no merge matches range")

// ErrSheetNotFound is returned by ApplyToWorkbook when the named sheet
// does not exist in the workbook.
var ErrSheetNotFound = errors.New("patch: sheet not found")

func sheetNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}
