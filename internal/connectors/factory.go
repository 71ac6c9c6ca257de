package connectors

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sheetpost/internal/connectors/google"
	"github.com/custodia-labs/sheetpost/internal/connectors/google/blogger"
	"github.com/custodia-labs/sheetpost/internal/connectors/google/drive"
	"github.com/custodia-labs/sheetpost/internal/connectors/google/sheets"
	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
)

// Verify interface compliance.
var _ driven.ClientFactory = (*Factory)(nil)

// Factory creates Google API clients authorised as one user.
// Rate limiters are kept per user and service so a 429 backoff outlives the
// client that observed it.
type Factory struct {
	credentials driving.CredentialsService
	limits      map[google.ServiceType]google.RateLimitConfig

	mu       sync.Mutex
	limiters map[string]*google.RateLimiter
}

// NewFactory creates a client factory. Blogger calls are throttled with
// publish; other services use google.DefaultRateLimits.
func NewFactory(credentials driving.CredentialsService, publish domain.PublishSettings) *Factory {
	limits := make(map[google.ServiceType]google.RateLimitConfig, len(google.DefaultRateLimits))
	for svc, cfg := range google.DefaultRateLimits {
		limits[svc] = cfg
	}
	if publish.RequestsPerSecond > 0 {
		limits[google.ServiceBlogger] = google.RateLimitConfig{
			RequestsPerSecond: publish.RequestsPerSecond,
			BurstSize:         publish.Burst,
		}
	}

	return &Factory{
		credentials: credentials,
		limits:      limits,
		limiters:    make(map[string]*google.RateLimiter),
	}
}

func (f *Factory) limiter(userID string, svc google.ServiceType) *google.RateLimiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := userID + "/" + string(svc)
	if rl, ok := f.limiters[key]; ok {
		return rl
	}
	rl := google.NewRateLimiterWithConfig(f.limits[svc])
	f.limiters[key] = rl
	return rl
}

// TableReader returns a Sheets reader for the user.
func (f *Factory) TableReader(ctx context.Context, userID string) (driven.TableReader, error) {
	reader, err := f.sheetsReader(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &guardedReader{next: reader, guard: f.guard(userID)}, nil
}

// Publisher returns a Blogger publisher for the user.
func (f *Factory) Publisher(ctx context.Context, userID string) (driven.Publisher, error) {
	pub, err := f.bloggerPublisher(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &guardedPublisher{next: pub, guard: f.guard(userID)}, nil
}

// BlogCatalog returns a Blogger lister for the user.
func (f *Factory) BlogCatalog(ctx context.Context, userID string) (driven.BlogCatalog, error) {
	pub, err := f.bloggerPublisher(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &guardedBlogCatalog{next: pub, guard: f.guard(userID)}, nil
}

// SheetCatalog returns a spreadsheet lister backed by Drive and Sheets.
func (f *Factory) SheetCatalog(ctx context.Context, userID string) (driven.SheetCatalog, error) {
	reader, err := f.sheetsReader(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, err := google.NewDriveService(ctx, google.NewTokenSource(ctx, f.credentials, userID))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	catalog := &sheetCatalog{
		lister: drive.NewLister(svc, f.limiter(userID, google.ServiceDrive)),
		reader: reader,
	}
	return &guardedSheetCatalog{next: catalog, guard: f.guard(userID)}, nil
}

func (f *Factory) sheetsReader(ctx context.Context, userID string) (*sheets.Reader, error) {
	svc, err := google.NewSheetsService(ctx, google.NewTokenSource(ctx, f.credentials, userID))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return sheets.NewReader(svc, f.limiter(userID, google.ServiceSheets)), nil
}

func (f *Factory) bloggerPublisher(ctx context.Context, userID string) (*blogger.Publisher, error) {
	svc, err := google.NewBloggerService(ctx, google.NewTokenSource(ctx, f.credentials, userID))
	if err != nil {
		return nil, fmt.Errorf("create blogger service: %w", err)
	}
	return blogger.NewPublisher(svc, f.limiter(userID, google.ServiceBlogger)), nil
}

func (f *Factory) guard(userID string) *authGuard {
	return &authGuard{credentials: f.credentials, userID: userID}
}

// sheetCatalog joins the Drive file listing with Sheets metadata.
type sheetCatalog struct {
	lister *drive.Lister
	reader *sheets.Reader
}

func (c *sheetCatalog) ListSpreadsheets(ctx context.Context) ([]domain.Spreadsheet, error) {
	return c.lister.ListSpreadsheets(ctx)
}

func (c *sheetCatalog) Metadata(ctx context.Context, sheetID string) (*domain.SpreadsheetMetadata, error) {
	return c.reader.Metadata(ctx, sheetID)
}
