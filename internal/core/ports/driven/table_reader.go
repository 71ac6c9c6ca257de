package driven

import "context"

// TableReader reads a range of cells from a spreadsheet.
type TableReader interface {
	// ReadRange returns the cells of rangeSpec (e.g. "A1:Z1000") as strings.
	// Trailing empty cells and rows may be omitted by the remote side.
	// Remote failures are reported as domain.ErrRemoteUnavailable or
	// domain.ErrRemoteRejected.
	ReadRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error)
}
