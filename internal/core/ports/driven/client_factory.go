package driven

import "context"

// ClientFactory builds remote clients authorised as one user.
// Clients obtain access tokens through the credentials service on every
// request, so a token refreshed mid-operation is picked up.
type ClientFactory interface {
	// TableReader returns a spreadsheet reader for the user.
	TableReader(ctx context.Context, userID string) (TableReader, error)

	// Publisher returns a blog publisher for the user.
	Publisher(ctx context.Context, userID string) (Publisher, error)

	// BlogCatalog returns a blog lister for the user.
	BlogCatalog(ctx context.Context, userID string) (BlogCatalog, error)

	// SheetCatalog returns a spreadsheet lister for the user.
	SheetCatalog(ctx context.Context, userID string) (SheetCatalog, error)
}
