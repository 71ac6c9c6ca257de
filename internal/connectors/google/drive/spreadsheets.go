package drive

import (
	"context"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/sheetpost/internal/connectors/google"
	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// MimeTypeGoogleSheet is the Drive MIME type of native spreadsheets.
const MimeTypeGoogleSheet = "application/vnd.google-apps.spreadsheet"

// DefaultPageSize is the Drive files.list page size.
const DefaultPageSize = 100

// Lister lists spreadsheets visible to the user.
type Lister struct {
	svc         *drive.Service
	rateLimiter *google.RateLimiter
}

// NewLister creates a Lister. A nil rate limiter uses the Drive defaults.
func NewLister(svc *drive.Service, rateLimiter *google.RateLimiter) *Lister {
	if rateLimiter == nil {
		rateLimiter = google.NewRateLimiter(google.ServiceDrive)
	}
	return &Lister{svc: svc, rateLimiter: rateLimiter}
}

// ListSpreadsheets returns every non-trashed spreadsheet, following pages.
func (l *Lister) ListSpreadsheets(ctx context.Context) ([]domain.Spreadsheet, error) {
	var out []domain.Spreadsheet
	pageToken := ""

	for {
		if err := l.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := l.svc.Files.List().
			Q("mimeType='" + MimeTypeGoogleSheet + "' and trashed=false").
			Fields(googleapi.Field("nextPageToken, files(id, name, webViewLink)")).
			PageSize(DefaultPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, google.WrapError(l.rateLimiter.Observe(err), "list spreadsheets")
		}

		for _, f := range resp.Files {
			out = append(out, FileToSpreadsheet(f))
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	if out == nil {
		out = []domain.Spreadsheet{}
	}
	return out, nil
}

// FileToSpreadsheet converts a Drive file to a domain spreadsheet.
func FileToSpreadsheet(f *drive.File) domain.Spreadsheet {
	return domain.Spreadsheet{ID: f.Id, Name: f.Name, WebViewLink: f.WebViewLink}
}
