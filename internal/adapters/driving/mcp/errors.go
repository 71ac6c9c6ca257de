// Package mcp provides an MCP (Model Context Protocol) server adapter for sheetpost.
// It lets AI assistants inspect the post spreadsheet and publish rows to Blogger.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// Errors returned by the MCP adapter.
var (
	// ErrMissingScheduleService is returned when the schedule service is not provided.
	ErrMissingScheduleService = errors.New("mcp: schedule service is required")

	// ErrMissingSettingsService is returned when the settings service is not provided.
	ErrMissingSettingsService = errors.New("mcp: settings service is required")
)

// toolError prefixes err with its reason code so clients can branch on it.
func toolError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", domain.Reason(err), err)
}
