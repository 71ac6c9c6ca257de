package driving

import (
	"context"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// SheetService inspects post spreadsheets.
type SheetService interface {
	// ListSpreadsheets returns spreadsheets visible to the user.
	ListSpreadsheets(ctx context.Context, userID string) ([]domain.Spreadsheet, error)

	// Metadata returns a spreadsheet's title and tabs.
	Metadata(ctx context.Context, userID, sheetID string) (*domain.SpreadsheetMetadata, error)

	// Data returns a range as header-keyed rows. Empty rangeSpec reads the whole sheet.
	Data(ctx context.Context, userID, sheetID, rangeSpec string) (*domain.SheetData, error)

	// Validate checks the header row for every post column.
	Validate(ctx context.Context, userID, sheetID string) (*domain.SheetValidation, error)
}
