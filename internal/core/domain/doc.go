// Package domain defines the core business entities for sheetpost.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CredentialBundle: delegated OAuth credentials for one user
//   - SheetTable: an immutable snapshot of a spreadsheet range
//   - PostRecord: a typed spreadsheet row describing one post
//   - ClassifiedBatch: rows bucketed into pending, due and invalid
//   - PublishOutcome: the per-row result of a publish attempt
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
