// Package services implements the driving port interfaces.
// Services hold the scheduling and publishing rules and reach Google
// only through driven ports.
package services
