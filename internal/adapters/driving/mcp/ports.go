package mcp

import (
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Schedule runs publish passes over the post sheet.
	Schedule driving.ScheduleService

	// Settings supplies the signed-in account and default sheet and blog.
	Settings driving.SettingsService

	// Blog manages blogs and individual posts.
	Blog driving.BlogService

	// Sheet inspects spreadsheets.
	Sheet driving.SheetService

	// History exposes recorded runs.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Blog, Sheet and History are optional; their tools are not registered
// when they are nil.
func (p *Ports) Validate() error {
	if p.Schedule == nil {
		return ErrMissingScheduleService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
