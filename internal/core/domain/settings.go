package domain

import "time"

// Google OAuth scopes requested at login.
const (
	ScopeUserInfoEmail   = "https://www.googleapis.com/auth/userinfo.email"
	ScopeUserInfoProfile = "https://www.googleapis.com/auth/userinfo.profile"
	ScopeBlogger         = "https://www.googleapis.com/auth/blogger"
	ScopeSheetsReadOnly  = "https://www.googleapis.com/auth/spreadsheets.readonly"
	ScopeDriveMetadata   = "https://www.googleapis.com/auth/drive.metadata.readonly"
)

// DefaultScopes returns the scopes the application needs.
func DefaultScopes() []string {
	return []string{
		ScopeUserInfoEmail,
		ScopeUserInfoProfile,
		ScopeBlogger,
		ScopeSheetsReadOnly,
		ScopeDriveMetadata,
	}
}

// GoogleTokenURL is Google's OAuth token endpoint.
const GoogleTokenURL = "https://oauth2.googleapis.com/token"

// GoogleSettings holds the OAuth client configuration.
type GoogleSettings struct {
	ClientID     string
	ClientSecret string
	// RedirectPort is the loopback port for the login callback. 0 picks one.
	RedirectPort int
}

// IsConfigured returns true if client credentials are present.
func (g GoogleSettings) IsConfigured() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// AccountSettings holds the signed-in account saved by login.
type AccountSettings struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// IsConfigured returns true if an account has signed in.
func (a AccountSettings) IsConfigured() bool {
	return a.UserID != "" && a.RefreshToken != ""
}

// DefaultsSettings holds the sheet and blog used when flags are omitted.
type DefaultsSettings struct {
	SheetID string
	BlogID  string
}

// ScheduleSettings controls date interpretation.
type ScheduleSettings struct {
	// Timezone is the IANA zone for publish dates without an offset.
	Timezone string
}

// Location resolves Timezone, falling back to UTC.
func (s ScheduleSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PublishSettings controls write throttling against Blogger.
type PublishSettings struct {
	RequestsPerSecond float64
	Burst             int
}

// StorageSettings controls local persistence.
type StorageSettings struct {
	// History enables the run history database.
	History bool
	// HistoryKeep is how many runs are kept; older ones are pruned after each run.
	HistoryKeep int
	// DataDir overrides the data directory.
	DataDir string
}

// DefaultHistoryKeep is the number of runs kept when storage.history_keep is unset.
const DefaultHistoryKeep = 500

// AppSettings is the full application configuration.
type AppSettings struct {
	Google   GoogleSettings
	Account  AccountSettings
	Defaults DefaultsSettings
	Schedule ScheduleSettings
	Publish  PublishSettings
	Storage  StorageSettings
}

// DefaultAppSettings returns sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Schedule: ScheduleSettings{Timezone: "UTC"},
		Publish: PublishSettings{
			RequestsPerSecond: 1.0,
			Burst:             3,
		},
		Storage: StorageSettings{History: true, HistoryKeep: DefaultHistoryKeep},
	}
}

// CredentialBundle builds the saved account's credentials. ok is false when
// no account has signed in.
func (s AppSettings) CredentialBundle() (bundle CredentialBundle, ok bool) {
	if !s.Account.IsConfigured() {
		return CredentialBundle{}, false
	}
	return CredentialBundle{
		UserID:       s.Account.UserID,
		Email:        s.Account.Email,
		AccessToken:  s.Account.AccessToken,
		RefreshToken: s.Account.RefreshToken,
		TokenURL:     GoogleTokenURL,
		ClientID:     s.Google.ClientID,
		ClientSecret: s.Google.ClientSecret,
		Scopes:       DefaultScopes(),
		Expiry:       s.Account.Expiry,
	}, true
}
