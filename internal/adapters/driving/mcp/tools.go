package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// SheetInput selects a spreadsheet; empty uses the configured default.
type SheetInput struct {
	SheetID string `json:"sheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured sheet)"`
}

// PublishTargetInput selects a spreadsheet and a blog.
type PublishTargetInput struct {
	SheetID string `json:"sheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured sheet)"`
	BlogID  string `json:"blog_id,omitempty" jsonschema:"Blogger blog ID (defaults to the configured blog)"`
}

// PublishRowInput is the input schema for the publish_row tool.
type PublishRowInput struct {
	SheetID string `json:"sheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured sheet)"`
	BlogID  string `json:"blog_id,omitempty" jsonschema:"Blogger blog ID (defaults to the configured blog)"`
	Row     int    `json:"row" jsonschema:"sheet row number to publish (2 is the first data row)"`
}

// PendingPostOutput is one scheduled row.
type PendingPostOutput struct {
	Row         int      `json:"row"`
	Title       string   `json:"title"`
	Labels      []string `json:"labels,omitempty"`
	PublishDate string   `json:"publish_date"`
}

// PendingOutput is the output schema for the list_pending tool.
type PendingOutput struct {
	Posts []PendingPostOutput `json:"posts"`
	Count int                 `json:"count"`
}

// OutcomeOutput is the result of publishing one row.
type OutcomeOutput struct {
	Row     int    `json:"row"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	PostID  string `json:"post_id,omitempty"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// InvalidRowOutput is a row skipped because its date could not be parsed.
type InvalidRowOutput struct {
	Row    int    `json:"row"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// BatchOutput is the output schema for the sweep_due and publish_sheet tools.
type BatchOutput struct {
	Outcomes     []OutcomeOutput    `json:"outcomes"`
	Published    int                `json:"published"`
	Failed       int                `json:"failed"`
	Skipped      int                `json:"skipped"`
	PendingCount int                `json:"pending_count,omitempty"`
	Invalid      []InvalidRowOutput `json:"invalid,omitempty"`
}

// RunsInput is the input schema for the list_runs tool.
type RunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default 20)"`
}

// RunOutput summarises one recorded run.
type RunOutput struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	SheetID   string          `json:"sheet_id,omitempty"`
	BlogID    string          `json:"blog_id,omitempty"`
	StartedAt string          `json:"started_at,omitempty"`
	EndedAt   string          `json:"ended_at,omitempty"`
	Outcomes  []OutcomeOutput `json:"outcomes"`
}

// RunsOutput is the output schema for the list_runs tool.
type RunsOutput struct {
	Runs []RunOutput `json:"runs"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_pending",
		Description: "List sheet rows scheduled for a future publish date",
	}, s.handleListPending)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "publish_row",
		Description: "Publish one sheet row to Blogger now, ignoring its publish date",
	}, s.handlePublishRow)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sweep_due",
		Description: "Publish every sheet row whose publish date has passed",
	}, s.handleSweepDue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "publish_sheet",
		Description: "Publish every sheet row except those dated in the future",
	}, s.handlePublishSheet)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_runs",
			Description: "List recent publish runs and their per-row outcomes",
		}, s.handleListRuns)
	}

	if s.ports.Blog != nil {
		s.registerBlogTools()
	}
	if s.ports.Sheet != nil {
		s.registerSheetTools()
	}
}

// handleListPending handles the list_pending tool invocation.
func (s *Server) handleListPending(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetInput,
) (*mcp.CallToolResult, PendingOutput, error) {
	t, err := s.resolveTarget(input.SheetID, "", true, false)
	if err != nil {
		return nil, PendingOutput{}, toolError(err)
	}

	pending, err := s.ports.Schedule.ListPending(ctx, t.userID, t.sheetID, s.now())
	if err != nil {
		return nil, PendingOutput{}, toolError(err)
	}

	output := PendingOutput{Posts: make([]PendingPostOutput, len(pending)), Count: len(pending)}
	for i, p := range pending {
		output.Posts[i] = PendingPostOutput{
			Row:         p.Row,
			Title:       p.Title,
			Labels:      p.Labels,
			PublishDate: p.FormattedDate,
		}
	}
	return nil, output, nil
}

// handlePublishRow handles the publish_row tool invocation.
func (s *Server) handlePublishRow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PublishRowInput,
) (*mcp.CallToolResult, OutcomeOutput, error) {
	t, err := s.resolveTarget(input.SheetID, input.BlogID, true, true)
	if err != nil {
		return nil, OutcomeOutput{}, toolError(err)
	}

	outcome, err := s.ports.Schedule.PublishRowNow(ctx, t.userID, t.sheetID, t.blogID, input.Row)
	if err != nil {
		return nil, OutcomeOutput{}, toolError(err)
	}
	return nil, toOutcomeOutput(outcome), nil
}

// handleSweepDue handles the sweep_due tool invocation.
func (s *Server) handleSweepDue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PublishTargetInput,
) (*mcp.CallToolResult, BatchOutput, error) {
	t, err := s.resolveTarget(input.SheetID, input.BlogID, true, true)
	if err != nil {
		return nil, BatchOutput{}, toolError(err)
	}

	result, err := s.ports.Schedule.SweepDue(ctx, t.userID, t.sheetID, t.blogID, s.now())
	if err != nil {
		return nil, BatchOutput{}, toolError(err)
	}

	output := toBatchOutput(result.Outcomes)
	output.PendingCount = result.PendingCount
	for _, inv := range result.Invalid {
		output.Invalid = append(output.Invalid, InvalidRowOutput(inv))
	}
	return nil, output, nil
}

// handlePublishSheet handles the publish_sheet tool invocation.
func (s *Server) handlePublishSheet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PublishTargetInput,
) (*mcp.CallToolResult, BatchOutput, error) {
	t, err := s.resolveTarget(input.SheetID, input.BlogID, true, true)
	if err != nil {
		return nil, BatchOutput{}, toolError(err)
	}

	outcomes, err := s.ports.Schedule.PublishSheet(ctx, t.userID, t.sheetID, t.blogID, s.now())
	if err != nil {
		return nil, BatchOutput{}, toolError(err)
	}
	return nil, toBatchOutput(outcomes), nil
}

// handleListRuns handles the list_runs tool invocation.
func (s *Server) handleListRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunsInput,
) (*mcp.CallToolResult, RunsOutput, error) {
	runs, err := s.ports.History.Recent(ctx, input.Limit)
	if err != nil {
		return nil, RunsOutput{}, toolError(err)
	}

	output := RunsOutput{Runs: make([]RunOutput, len(runs))}
	for i := range runs {
		output.Runs[i] = toRunOutput(runs[i])
	}
	return nil, output, nil
}

func toOutcomeOutput(o domain.PublishOutcome) OutcomeOutput {
	return OutcomeOutput{
		Row:     o.Row,
		Title:   o.Title,
		Status:  string(o.Status),
		PostID:  o.PostID,
		URL:     o.URL,
		Message: o.Message,
	}
}

func toBatchOutput(outcomes []domain.PublishOutcome) BatchOutput {
	output := BatchOutput{
		Outcomes:  make([]OutcomeOutput, len(outcomes)),
		Published: domain.CountStatus(outcomes, domain.OutcomeSuccess),
		Failed:    domain.CountStatus(outcomes, domain.OutcomeError),
		Skipped:   domain.CountStatus(outcomes, domain.OutcomeSkipped),
	}
	for i, o := range outcomes {
		output.Outcomes[i] = toOutcomeOutput(o)
	}
	return output
}

func toRunOutput(run domain.Run) RunOutput {
	out := RunOutput{
		ID:        run.ID,
		Kind:      string(run.Kind),
		SheetID:   run.SheetID,
		BlogID:    run.BlogID,
		StartedAt: formatTime(run.StartedAt),
		EndedAt:   formatTime(run.EndedAt),
		Outcomes:  make([]OutcomeOutput, len(run.Outcomes)),
	}
	for i, o := range run.Outcomes {
		out.Outcomes[i] = toOutcomeOutput(o)
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// decodeLabels accepts a JSON list or a comma-separated string.
func decodeLabels(v any) (domain.Labels, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var labels domain.Labels
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return labels, nil
}
