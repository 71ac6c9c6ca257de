// Package connectors builds the remote clients the core services use.
// The Google subpackages implement the driven ports against the Sheets,
// Blogger and Drive APIs; Factory wires them to per-user credentials.
package connectors
