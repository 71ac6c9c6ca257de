package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized
	}
	var rerr *oauth2.RetrieveError
	return errors.As(err, &rerr)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// RetryAfter returns the Retry-After header of a rate limit error in
// seconds, or 0 when absent.
func RetryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	n, _ := strconv.Atoi(gerr.Header.Get("Retry-After"))
	return n
}

// WrapError converts an error from a Google API call into the domain error
// taxonomy. op names the failed call and prefixes the message.
//
//   - 401 and token endpoint failures become domain.ErrAuthExpired
//   - 429, 5xx, timeouts and transport errors become domain.ErrRemoteUnavailable
//   - any other API error becomes domain.ErrRemoteRejected
func WrapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAuthExpired) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if IsUnauthorized(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrAuthExpired)
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return domain.Unavailable("%s: %v", op, err)
	}

	msg := gerr.Message
	if msg == "" {
		msg = http.StatusText(gerr.Code)
	}
	switch {
	case gerr.Code == http.StatusTooManyRequests, gerr.Code >= http.StatusInternalServerError:
		return domain.Unavailable("%s: %s", op, msg)
	default:
		return domain.Rejected("%s: %s", op, msg)
	}
}
