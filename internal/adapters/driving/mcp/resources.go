package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sheetpost resources.
	uriScheme = "sheetpost://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "defaults",
		Name:        "defaults",
		Description: "The signed-in account and the default sheet and blog",
		MIMEType:    "application/json",
	}, s.handleDefaultsResource)

	if s.ports.History == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent publish runs",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}",
		Name:        "run",
		Description: "One publish run with its per-row outcomes",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// handleDefaultsResource returns the account and defaults. Tokens are never
// included.
func (s *Server) handleDefaultsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	info := struct {
		UserID   string `json:"user_id,omitempty"`
		Email    string `json:"email,omitempty"`
		SheetID  string `json:"sheet_id,omitempty"`
		BlogID   string `json:"blog_id,omitempty"`
		Timezone string `json:"timezone"`
	}{
		UserID:   settings.Account.UserID,
		Email:    settings.Account.Email,
		SheetID:  settings.Defaults.SheetID,
		BlogID:   settings.Defaults.BlogID,
		Timezone: settings.Schedule.Timezone,
	}

	return jsonResource(req.Params.URI, info)
}

// handleRunsResource returns the most recent runs.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	runs, err := s.ports.History.Recent(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	out := make([]RunOutput, len(runs))
	for i := range runs {
		out[i] = toRunOutput(runs[i])
	}
	return jsonResource(req.Params.URI, out)
}

// handleRunResource returns one run.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.History.Get(ctx, runID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}

	return jsonResource(req.Params.URI, toRunOutput(*run))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like sheetpost://runs/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
