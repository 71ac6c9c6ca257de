// Package google provides shared infrastructure for the Google API clients.
//
// This package contains common utilities used by the sheets, blogger and
// drive subpackages:
//   - TokenSource adapter that resolves (and refreshes) a user's credentials
//   - OAuth client for the consent URL, code exchange and token refresh
//   - Service factories for creating Google API clients
//   - Classification of Google API errors into domain errors
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
//	ts := google.NewTokenSource(ctx, credentials, userID)
//	svc, err := google.NewBloggerService(ctx, ts)
//
// # OAuth2 Scopes
//
//   - https://www.googleapis.com/auth/userinfo.email
//   - https://www.googleapis.com/auth/userinfo.profile
//   - https://www.googleapis.com/auth/blogger
//   - https://www.googleapis.com/auth/spreadsheets.readonly
//   - https://www.googleapis.com/auth/drive.metadata.readonly
package google
