package services

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyClientID          = "google.client_id"
	keyClientSecret      = "google.client_secret"
	keyRedirectPort      = "google.redirect_port"
	keyUserID            = "account.user_id"
	keyEmail             = "account.email"
	keyAccessToken       = "account.access_token"
	keyRefreshToken      = "account.refresh_token"
	keyExpiry            = "account.expiry"
	keyDefaultSheet      = "defaults.sheet_id"
	keyDefaultBlog       = "defaults.blog_id"
	keyTimezone          = "schedule.timezone"
	keyRequestsPerSecond = "publish.requests_per_second"
	keyBurst             = "publish.burst"
	keyHistory           = "storage.history"
	keyHistoryKeep       = "storage.history_keep"
	keyDataDir           = "storage.data_dir"
)

// Environment variables that override the config file.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings. Environment variables win
// over the config file for the OAuth client.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Google: domain.GoogleSettings{
			ClientID:     s.override(EnvClientID, keyClientID),
			ClientSecret: s.override(EnvClientSecret, keyClientSecret),
			RedirectPort: s.configStore.GetInt(keyRedirectPort),
		},
		Account: domain.AccountSettings{
			UserID:       s.configStore.GetString(keyUserID),
			Email:        s.configStore.GetString(keyEmail),
			AccessToken:  s.configStore.GetString(keyAccessToken),
			RefreshToken: s.configStore.GetString(keyRefreshToken),
			Expiry:       s.getTime(keyExpiry),
		},
		Defaults: domain.DefaultsSettings{
			SheetID: s.configStore.GetString(keyDefaultSheet),
			BlogID:  s.configStore.GetString(keyDefaultBlog),
		},
		Schedule: domain.ScheduleSettings{
			Timezone: s.getString(keyTimezone, defaults.Schedule.Timezone),
		},
		Publish: domain.PublishSettings{
			RequestsPerSecond: s.getFloat(keyRequestsPerSecond, defaults.Publish.RequestsPerSecond),
			Burst:             s.getInt(keyBurst, defaults.Publish.Burst),
		},
		Storage: domain.StorageSettings{
			History:     s.getBool(keyHistory, defaults.Storage.History),
			HistoryKeep: s.getInt(keyHistoryKeep, defaults.Storage.HistoryKeep),
			DataDir:     s.configStore.GetString(keyDataDir),
		},
	}

	if _, err := time.LoadLocation(settings.Schedule.Timezone); err != nil {
		return nil, fmt.Errorf("%w: schedule.timezone %q: %w", domain.ErrInvalidInput, settings.Schedule.Timezone, err)
	}

	return settings, nil
}

// SaveGoogle persists the OAuth client configuration.
func (s *SettingsService) SaveGoogle(google domain.GoogleSettings) error {
	values := map[string]any{
		keyClientID:     google.ClientID,
		keyClientSecret: google.ClientSecret,
	}
	if google.RedirectPort > 0 {
		values[keyRedirectPort] = google.RedirectPort
	}
	if err := s.configStore.SetMany(values); err != nil {
		return fmt.Errorf("save google settings: %w", err)
	}
	return nil
}

// SaveAccount persists the signed-in account.
func (s *SettingsService) SaveAccount(account domain.AccountSettings) error {
	values := map[string]any{
		keyUserID:       account.UserID,
		keyEmail:        account.Email,
		keyAccessToken:  account.AccessToken,
		keyRefreshToken: account.RefreshToken,
		keyExpiry:       "",
	}
	if !account.Expiry.IsZero() {
		values[keyExpiry] = account.Expiry.UTC().Format(time.RFC3339)
	}
	if err := s.configStore.SetMany(values); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// SaveDefaults persists the default sheet and blog. Empty fields are left
// unchanged.
func (s *SettingsService) SaveDefaults(defaults domain.DefaultsSettings) error {
	values := map[string]any{}
	if defaults.SheetID != "" {
		values[keyDefaultSheet] = defaults.SheetID
	}
	if defaults.BlogID != "" {
		values[keyDefaultBlog] = defaults.BlogID
	}
	if len(values) == 0 {
		return nil
	}
	if err := s.configStore.SetMany(values); err != nil {
		return fmt.Errorf("save defaults: %w", err)
	}
	return nil
}

func (s *SettingsService) override(env, key string) string {
	if v := s.getenv(env); v != "" {
		return v
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getTime(key string) time.Time {
	raw := s.configStore.GetString(key)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
