package domain

import "time"

// InvalidRow is a row the classifier could not place.
type InvalidRow struct {
	Row    int    `json:"row"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ReasonUnparseableDate is the InvalidRow reason for bad Publish Date cells.
const ReasonUnparseableDate = "unparseable date"

// ClassifiedBatch is the result of classifying rows against a reference time.
type ClassifiedBatch struct {
	// Pending rows have a publish date strictly after the reference time.
	Pending []PostRecord
	// Due rows have a publish date at or before the reference time.
	Due []PostRecord
	// SkippedInvalid rows have a publish date that could not be parsed.
	SkippedInvalid []InvalidRow
}

// OutcomeStatus is the result of attempting to publish one row.
type OutcomeStatus string

// Outcome statuses.
const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeError   OutcomeStatus = "error"
	OutcomeSkipped OutcomeStatus = "skipped"
)

// PublishOutcome records what happened to one row.
type PublishOutcome struct {
	Row     int           `json:"row"`
	Title   string        `json:"title"`
	Status  OutcomeStatus `json:"status"`
	PostID  string        `json:"post_id,omitempty"`
	URL     string        `json:"url,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Succeeded returns true for success outcomes.
func (o PublishOutcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}

// PendingPost is a pending row with its display date.
type PendingPost struct {
	PostRecord
	// FormattedDate is PublishDate rendered with DisplayDateLayout.
	FormattedDate string `json:"formatted_date"`
}

// SweepResult is the response of a sweep over one sheet.
type SweepResult struct {
	// Outcomes has one entry per due row, in sheet order.
	Outcomes []PublishOutcome `json:"outcomes"`
	// PendingCount is the number of rows left for a later sweep.
	PendingCount int `json:"pending_count"`
	// Invalid lists rows skipped because their date could not be parsed.
	Invalid []InvalidRow `json:"invalid,omitempty"`
}

// CountStatus returns how many outcomes have the given status.
func CountStatus(outcomes []PublishOutcome, status OutcomeStatus) int {
	n := 0
	for i := range outcomes {
		if outcomes[i].Status == status {
			n++
		}
	}
	return n
}

// RunKind identifies which publish operation produced a run.
type RunKind string

// Run kinds.
const (
	RunKindSweep        RunKind = "sweep"
	RunKindPublishRow   RunKind = "publish_row"
	RunKindPublishSheet RunKind = "publish_sheet"
)

// Run is the history entry for one publish operation.
type Run struct {
	ID        string           `json:"id"`
	Kind      RunKind          `json:"kind"`
	UserID    string           `json:"user_id"`
	SheetID   string           `json:"sheet_id"`
	BlogID    string           `json:"blog_id"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   time.Time        `json:"ended_at"`
	Outcomes  []PublishOutcome `json:"outcomes"`
}
