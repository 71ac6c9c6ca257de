package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/sheetpost/internal/connectors/google"
	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.TableReader = (*Reader)(nil)

// Reader reads cell ranges and spreadsheet metadata through the Sheets API.
type Reader struct {
	svc         *sheets.Service
	rateLimiter *google.RateLimiter
}

// NewReader creates a Reader. A nil rate limiter uses the Sheets defaults.
func NewReader(svc *sheets.Service, rateLimiter *google.RateLimiter) *Reader {
	if rateLimiter == nil {
		rateLimiter = google.NewRateLimiter(google.ServiceSheets)
	}
	return &Reader{svc: svc, rateLimiter: rateLimiter}
}

// ReadRange returns the formatted values of rangeSpec as strings.
// Non-string cells are rendered with fmt.Sprint.
func (r *Reader) ReadRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := r.svc.Spreadsheets.Values.Get(sheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(r.rateLimiter.Observe(err), "read range "+rangeSpec)
	}

	return ValuesToGrid(resp.Values), nil
}

// Metadata returns the spreadsheet title and its tabs.
func (r *Reader) Metadata(ctx context.Context, sheetID string) (*domain.SpreadsheetMetadata, error) {
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	ss, err := r.svc.Spreadsheets.Get(sheetID).
		Fields("spreadsheetId", "properties.title", "sheets.properties(sheetId,title)").
		Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(r.rateLimiter.Observe(err), "get spreadsheet")
	}

	return SpreadsheetToMetadata(ss), nil
}

// ValuesToGrid converts the API's untyped cell values to strings.
func ValuesToGrid(values [][]interface{}) [][]string {
	grid := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		grid[i] = cells
	}
	return grid
}

// SpreadsheetToMetadata converts a Sheets API spreadsheet to domain metadata.
func SpreadsheetToMetadata(ss *sheets.Spreadsheet) *domain.SpreadsheetMetadata {
	meta := &domain.SpreadsheetMetadata{
		SpreadsheetID: ss.SpreadsheetId,
		Sheets:        make([]domain.SheetInfo, 0, len(ss.Sheets)),
	}
	if ss.Properties != nil {
		meta.Title = ss.Properties.Title
	}
	for _, sh := range ss.Sheets {
		if sh == nil || sh.Properties == nil {
			continue
		}
		meta.Sheets = append(meta.Sheets, domain.SheetInfo{
			Title:   sh.Properties.Title,
			SheetID: sh.Properties.SheetId,
		})
	}
	return meta
}
