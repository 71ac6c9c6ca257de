package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
)

// Ensure SheetService implements the interface.
var _ driving.SheetService = (*SheetService)(nil)

// SheetService browses and checks the user's spreadsheets.
type SheetService struct {
	credentials driving.CredentialsService
	clients     driven.ClientFactory
}

// NewSheetService creates a sheet service.
func NewSheetService(credentials driving.CredentialsService, clients driven.ClientFactory) *SheetService {
	return &SheetService{
		credentials: credentials,
		clients:     clients,
	}
}

// ListSpreadsheets lists the spreadsheets visible to the user.
func (s *SheetService) ListSpreadsheets(ctx context.Context, userID string) ([]domain.Spreadsheet, error) {
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.ListSpreadsheets(ctx)
}

// Metadata returns the spreadsheet title and its tabs.
func (s *SheetService) Metadata(ctx context.Context, userID, sheetID string) (*domain.SpreadsheetMetadata, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("%w: sheet ID is required", domain.ErrInvalidInput)
	}
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.Metadata(ctx, sheetID)
}

// Data reads a range and renders each data row as a header-keyed map. Short
// rows are padded with empty cells.
func (s *SheetService) Data(ctx context.Context, userID, sheetID, rangeSpec string) (*domain.SheetData, error) {
	if rangeSpec == "" {
		rangeSpec = domain.FullSheetRange
	}
	grid, err := s.read(ctx, userID, sheetID, rangeSpec)
	if err != nil {
		return nil, err
	}

	data := &domain.SheetData{Headers: []string{}, Data: []map[string]string{}}
	if len(grid) == 0 {
		return data, nil
	}

	data.Headers = grid[0]
	for _, row := range grid[1:] {
		record := make(map[string]string, len(data.Headers))
		for i, h := range data.Headers {
			if i < len(row) {
				record[h] = row[i]
			} else {
				record[h] = ""
			}
		}
		data.Data = append(data.Data, record)
	}
	return data, nil
}

// Validate checks the header row for every post column.
func (s *SheetService) Validate(ctx context.Context, userID, sheetID string) (*domain.SheetValidation, error) {
	grid, err := s.read(ctx, userID, sheetID, domain.HeaderRange)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		grid = [][]string{{}}
	}
	return validateHeaders(grid[0]), nil
}

// validateHeaders reports which of the recognised columns are absent.
func validateHeaders(headers []string) *domain.SheetValidation {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, name := range recognisedColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &domain.SheetValidation{
			Valid:   false,
			Missing: missing,
			Message: "Missing columns: " + strings.Join(missing, ", "),
		}
	}
	return &domain.SheetValidation{Valid: true, Message: "Sheet structure is valid"}
}

func (s *SheetService) read(ctx context.Context, userID, sheetID, rangeSpec string) ([][]string, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("%w: sheet ID is required", domain.ErrInvalidInput)
	}
	if _, err := s.credentials.Resolve(ctx, userID); err != nil {
		return nil, err
	}
	reader, err := s.clients.TableReader(ctx, userID)
	if err != nil {
		return nil, err
	}
	grid, err := reader.ReadRange(ctx, sheetID, rangeSpec)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rangeSpec, err)
	}
	return grid, nil
}

func (s *SheetService) catalog(ctx context.Context, userID string) (driven.SheetCatalog, error) {
	if _, err := s.credentials.Resolve(ctx, userID); err != nil {
		return nil, err
	}
	return s.clients.SheetCatalog(ctx, userID)
}
