package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

func TestSheetsListCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.sheet.sheets = []domain.Spreadsheet{{ID: "default-sheet", Name: "Posts"}, {ID: "s2", Name: "Drafts"}}

	out, err := execute("sheets", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "* default-sheet  Posts")
	assert.Contains(t, out, "  s2  Drafts")
}

func TestSheetsMetaCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.sheet.meta = &domain.SpreadsheetMetadata{
		SpreadsheetID: "default-sheet",
		Title:         "Posts",
		Sheets:        []domain.SheetInfo{{Title: "Sheet1", SheetID: 0}, {Title: "Archive", SheetID: 42}},
	}

	out, err := execute("sheets", "meta")

	require.NoError(t, err)
	assert.Contains(t, out, "Posts")
	assert.Contains(t, out, "42  Archive")
}

func TestSheetsDataCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.sheet.data = &domain.SheetData{
		Headers: []string{"Title", "Labels"},
		Data:    []map[string]string{{"Title": "Hello", "Labels": "go"}},
	}

	out, err := execute("sheets", "data", "--range", "A1:B5")

	require.NoError(t, err)
	assert.Equal(t, "A1:B5", ts.sheet.rangeSpec)
	assert.Contains(t, out, "Title | Labels")
	assert.Contains(t, out, "Hello | go")
}

func TestSheetsValidateCmd(t *testing.T) {
	tests := []struct {
		name    string
		result  domain.SheetValidation
		wantErr bool
		wantOut string
	}{
		{
			name:    "valid",
			result:  domain.SheetValidation{Valid: true, Message: "All required columns are present"},
			wantOut: "OK",
		},
		{
			name:    "missing columns",
			result:  domain.SheetValidation{Missing: []string{"Labels"}, Message: "Missing columns: Labels"},
			wantErr: true,
			wantOut: "INVALID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()
			result := tt.result
			ts.sheet.validation = &result

			out, err := execute("sheets", "validate")

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Labels")
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out, tt.wantOut)
		})
	}
}
