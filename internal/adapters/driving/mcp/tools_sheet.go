package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SheetDataInput is the input schema for the sheet_data tool.
type SheetDataInput struct {
	SheetID string `json:"sheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured sheet)"`
	Range   string `json:"range,omitempty" jsonschema:"A1 range to read (default A1:Z1000)"`
}

// SpreadsheetOutput describes one spreadsheet file.
type SpreadsheetOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebViewLink string `json:"web_view_link,omitempty"`
}

// SpreadsheetsOutput is the output schema for the list_sheets tool.
type SpreadsheetsOutput struct {
	Spreadsheets []SpreadsheetOutput `json:"spreadsheets"`
}

// TabOutput describes one tab of a spreadsheet.
type TabOutput struct {
	Title   string `json:"title"`
	SheetID int64  `json:"sheet_id"`
}

// MetadataOutput is the output schema for the sheet_metadata tool.
type MetadataOutput struct {
	SpreadsheetID string      `json:"spreadsheet_id"`
	Title         string      `json:"title"`
	Sheets        []TabOutput `json:"sheets"`
}

// SheetDataOutput is the output schema for the sheet_data tool.
type SheetDataOutput struct {
	Headers []string            `json:"headers"`
	Data    []map[string]string `json:"data"`
}

// ValidationOutput is the output schema for the validate_sheet tool.
type ValidationOutput struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing_columns,omitempty"`
	Message string   `json:"message"`
}

func (s *Server) registerSheetTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sheets",
		Description: "List spreadsheets visible to the signed-in account",
	}, s.handleListSheets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_metadata",
		Description: "Show a spreadsheet's title and tabs",
	}, s.handleSheetMetadata)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_data",
		Description: "Read a spreadsheet range as rows keyed by header",
	}, s.handleSheetData)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_sheet",
		Description: "Check that a spreadsheet has the Title, Content, Labels and Publish Date columns",
	}, s.handleValidateSheet)
}

func (s *Server) handleListSheets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, SpreadsheetsOutput, error) {
	t, err := s.resolveTarget("", "", false, false)
	if err != nil {
		return nil, SpreadsheetsOutput{}, toolError(err)
	}

	sheets, err := s.ports.Sheet.ListSpreadsheets(ctx, t.userID)
	if err != nil {
		return nil, SpreadsheetsOutput{}, toolError(err)
	}

	output := SpreadsheetsOutput{Spreadsheets: make([]SpreadsheetOutput, len(sheets))}
	for i, sh := range sheets {
		output.Spreadsheets[i] = SpreadsheetOutput(sh)
	}
	return nil, output, nil
}

func (s *Server) handleSheetMetadata(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetInput,
) (*mcp.CallToolResult, MetadataOutput, error) {
	t, err := s.resolveTarget(input.SheetID, "", true, false)
	if err != nil {
		return nil, MetadataOutput{}, toolError(err)
	}

	meta, err := s.ports.Sheet.Metadata(ctx, t.userID, t.sheetID)
	if err != nil {
		return nil, MetadataOutput{}, toolError(err)
	}

	output := MetadataOutput{
		SpreadsheetID: meta.SpreadsheetID,
		Title:         meta.Title,
		Sheets:        make([]TabOutput, len(meta.Sheets)),
	}
	for i, tab := range meta.Sheets {
		output.Sheets[i] = TabOutput(tab)
	}
	return nil, output, nil
}

func (s *Server) handleSheetData(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetDataInput,
) (*mcp.CallToolResult, SheetDataOutput, error) {
	t, err := s.resolveTarget(input.SheetID, "", true, false)
	if err != nil {
		return nil, SheetDataOutput{}, toolError(err)
	}

	data, err := s.ports.Sheet.Data(ctx, t.userID, t.sheetID, input.Range)
	if err != nil {
		return nil, SheetDataOutput{}, toolError(err)
	}
	return nil, SheetDataOutput{Headers: data.Headers, Data: data.Data}, nil
}

func (s *Server) handleValidateSheet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetInput,
) (*mcp.CallToolResult, ValidationOutput, error) {
	t, err := s.resolveTarget(input.SheetID, "", true, false)
	if err != nil {
		return nil, ValidationOutput{}, toolError(err)
	}

	result, err := s.ports.Sheet.Validate(ctx, t.userID, t.sheetID)
	if err != nil {
		return nil, ValidationOutput{}, toolError(err)
	}
	return nil, ValidationOutput(*result), nil
}
