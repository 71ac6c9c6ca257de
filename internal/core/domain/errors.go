package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication Errors.

	// ErrAuthExpired indicates credentials are missing or could not be refreshed.
	// The user must re-authenticate.
	ErrAuthExpired = errors.New("credentials invalid, re-authenticate")

	// Sheet Errors.

	// ErrMissingColumns indicates the header row lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrEmptySheet indicates the requested range returned no rows.
	ErrEmptySheet = errors.New("no data found in sheet")

	// ErrRowNotFound indicates a targeted row read returned nothing.
	ErrRowNotFound = errors.New("row not found or empty")

	// ErrInvalidDate indicates a publish date could not be parsed.
	ErrInvalidDate = errors.New("unparseable date")

	// Remote Errors.

	// ErrRemoteUnavailable indicates the remote service could not be reached
	// or failed transiently (5xx, 429, transport errors).
	ErrRemoteUnavailable = errors.New("remote service unavailable")

	// ErrRemoteRejected indicates the remote service refused the request.
	ErrRemoteRejected = errors.New("remote service rejected request")
)

// MissingColumnsError lists every required column absent from a header row.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrMissingColumns) match.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// RemoteError carries the message returned by a remote service.
// Kind is ErrRemoteUnavailable or ErrRemoteRejected.
type RemoteError struct {
	Kind    error
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the error kind.
func (e *RemoteError) Unwrap() error {
	return e.Kind
}

// Rejected builds a RemoteError of kind ErrRemoteRejected.
func Rejected(format string, args ...any) *RemoteError {
	return &RemoteError{Kind: ErrRemoteRejected, Message: fmt.Sprintf(format, args...)}
}

// Unavailable builds a RemoteError of kind ErrRemoteUnavailable.
func Unavailable(format string, args ...any) *RemoteError {
	return &RemoteError{Kind: ErrRemoteUnavailable, Message: fmt.Sprintf(format, args...)}
}

// Reason codes returned by Reason.
const (
	ReasonAuthExpired       = "auth_expired"
	ReasonMissingColumns    = "missing_columns"
	ReasonRemoteUnavailable = "remote_unavailable"
	ReasonRemoteRejected    = "remote_rejected"
	ReasonInvalidInput      = "invalid_input"
	ReasonInvalidDate       = "invalid_date"
	ReasonNotFound          = "not_found"
	ReasonEmptySheet        = "empty_sheet"
	ReasonRowNotFound       = "row_not_found"
	ReasonInternal          = "internal"
)

// Reason maps an error to a stable, machine-checkable reason code.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthExpired):
		return ReasonAuthExpired
	case errors.Is(err, ErrMissingColumns):
		return ReasonMissingColumns
	case errors.Is(err, ErrRemoteUnavailable):
		return ReasonRemoteUnavailable
	case errors.Is(err, ErrRemoteRejected):
		return ReasonRemoteRejected
	case errors.Is(err, ErrInvalidDate):
		return ReasonInvalidDate
	case errors.Is(err, ErrInvalidInput):
		return ReasonInvalidInput
	case errors.Is(err, ErrEmptySheet):
		return ReasonEmptySheet
	case errors.Is(err, ErrRowNotFound):
		return ReasonRowNotFound
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	default:
		return ReasonInternal
	}
}
