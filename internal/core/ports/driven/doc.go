// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CredentialsStore: per-user credential bundles (in-memory)
//   - TokenRefresher: OAuth refresh-token exchange
//   - ClientFactory: builds TableReader, Publisher and catalogs per user
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: publish history. Without it, runs are not recorded.
//   - OAuthClient / CallbackReceiver: only needed by the login flow.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
