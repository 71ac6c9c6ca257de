package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/blogger/v3"
	"google.golang.org/api/drive/v3"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService creates a Google Sheets API service using the provided TokenSource.
func NewSheetsService(ctx context.Context, ts oauth2.TokenSource) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithTokenSource(ts))
}

// NewBloggerService creates a Blogger API service using the provided TokenSource.
func NewBloggerService(ctx context.Context, ts oauth2.TokenSource) (*blogger.Service, error) {
	return blogger.NewService(ctx, option.WithTokenSource(ts))
}

// NewDriveService creates a Google Drive API service using the provided TokenSource.
func NewDriveService(ctx context.Context, ts oauth2.TokenSource) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithTokenSource(ts))
}

// NewUserInfoService creates an OAuth2 v2 API service for profile lookups.
func NewUserInfoService(ctx context.Context, ts oauth2.TokenSource) (*oauth2api.Service, error) {
	return oauth2api.NewService(ctx, option.WithTokenSource(ts))
}
