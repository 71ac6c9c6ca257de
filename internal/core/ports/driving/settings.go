package driving

import "github.com/custodia-labs/sheetpost/internal/core/domain"

// SettingsService manages application configuration.
type SettingsService interface {
	// Get retrieves current settings with defaults and environment overrides applied.
	Get() (*domain.AppSettings, error)

	// SaveGoogle stores OAuth client credentials.
	SaveGoogle(google domain.GoogleSettings) error

	// SaveAccount stores the signed-in account.
	SaveAccount(account domain.AccountSettings) error

	// SaveDefaults stores the default sheet and blog.
	SaveDefaults(defaults domain.DefaultsSettings) error
}
