package services

import (
	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// recognisedColumns are indexed whenever they appear in the header row.
var recognisedColumns = []string{
	domain.ColumnTitle,
	domain.ColumnContent,
	domain.ColumnLabels,
	domain.ColumnPublishDate,
}

// ParseSheet turns a raw grid read from row 1 into a SheetTable. Every
// required column absent from the header row is reported at once.
func ParseSheet(grid [][]string, required ...string) (*domain.SheetTable, error) {
	return ParseSheetAt(grid, domain.FirstDataRow, required...)
}

// ParseSheetAt is ParseSheet for a grid whose second row sits at firstRow.
// A grid with no cells at all is empty; a blank header above data rows is
// missing every required column.
func ParseSheetAt(grid [][]string, firstRow int, required ...string) (*domain.SheetTable, error) {
	if len(grid) == 0 || (len(grid) == 1 && len(grid[0]) == 0) {
		return nil, domain.ErrEmptySheet
	}

	headers := grid[0]
	index := buildColumnIndex(headers, required)

	var missing []string
	for _, name := range required {
		if !index.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingColumnsError{Missing: missing}
	}

	return &domain.SheetTable{
		Headers:  headers,
		Rows:     grid[1:],
		Index:    index,
		FirstRow: firstRow,
	}, nil
}

// buildColumnIndex maps each wanted column to the first header cell that
// matches it exactly.
func buildColumnIndex(headers []string, required []string) domain.ColumnIndex {
	wanted := make(map[string]bool, len(recognisedColumns)+len(required))
	for _, name := range recognisedColumns {
		wanted[name] = true
	}
	for _, name := range required {
		wanted[name] = true
	}

	index := make(domain.ColumnIndex, len(wanted))
	for i, h := range headers {
		if !wanted[h] {
			continue
		}
		if _, seen := index[h]; seen {
			continue
		}
		index[h] = i
	}
	return index
}
