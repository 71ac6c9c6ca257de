// Package cli provides the sheetpost command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// annotationNoServices marks commands that run without wiring services.
const annotationNoServices = "sheetpost/no-services"

// AuthFactory builds an auth service for the given OAuth client and
// loopback port.
type AuthFactory func(google domain.GoogleSettings, callbackPort int) (driving.AuthService, error)

// ConfigWatcher reloads configuration when the file changes on disk.
type ConfigWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Services holds the driving ports the commands use.
type Services struct {
	Schedule    driving.ScheduleService
	Settings    driving.SettingsService
	Blog        driving.BlogService
	Sheet       driving.SheetService
	History     driving.HistoryService
	Credentials driving.CredentialsService
	Auth        AuthFactory
	Watcher     ConfigWatcher
}

// Bootstrap wires services for a config directory. The returned function
// releases resources when the command finishes.
type Bootstrap func(configDir string) (*Services, func() error, error)

var (
	scheduleService    driving.ScheduleService
	settingsService    driving.SettingsService
	blogService        driving.BlogService
	sheetService       driving.SheetService
	historyService     driving.HistoryService
	credentialsService driving.CredentialsService
	authFactory        AuthFactory
	configWatcher      ConfigWatcher

	bootstrap     Bootstrap
	closeServices func() error
)

// Global flags.
var (
	verbose    bool
	configDir  string
	sheetFlag  string
	blogFlag   string
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "sheetpost",
	Short: "Publish scheduled posts from Google Sheets to Blogger",
	Long: `sheetpost reads a Google Sheet with Title, Content, Labels and
Publish Date columns and publishes its rows as Blogger posts.

Rows whose publish date has passed are published by 'sheetpost sweep';
'sheetpost pending' lists the rows still waiting. Run 'sheetpost login'
once to authorise access to your Google account.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sheetpost)")
	rootCmd.PersistentFlags().StringVar(&sheetFlag, "sheet", "", "spreadsheet ID (defaults to the configured sheet)")
	rootCmd.PersistentFlags().StringVar(&blogFlag, "blog", "", "Blogger blog ID (defaults to the configured blog)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
}

// SetBootstrap sets the function that wires services before each command.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the driving ports used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	scheduleService = s.Schedule
	settingsService = s.Settings
	blogService = s.Blog
	sheetService = s.Sheet
	historyService = s.History
	credentialsService = s.Credentials
	authFactory = s.Auth
	configWatcher = s.Watcher
}

// Execute runs the root command and closes the services it opened, whether
// or not the command succeeded.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := teardown(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("failed to close services: %w", cerr))
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}

	services, closer, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	SetServices(services)
	closeServices = closer

	return seedCredentials(cmd.Context())
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// seedCredentials loads the saved account into the credentials service so
// later calls can resolve and refresh its token.
func seedCredentials(ctx context.Context) error {
	if settingsService == nil || credentialsService == nil {
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	bundle, ok := settings.CredentialBundle()
	if !ok {
		return nil
	}
	if err := credentialsService.Save(ctx, bundle); err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	logger.Debug("Loaded credentials for %s", bundle.Email)
	return nil
}

// target is the account and sheet/blog pair a command operates on.
type target struct {
	userID  string
	sheetID string
	blogID  string
}

// resolveTarget combines the --sheet/--blog flags with the signed-in account
// and the configured defaults.
func resolveTarget(needSheet, needBlog bool) (target, error) {
	if settingsService == nil {
		return target{}, errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return target{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !settings.Account.IsConfigured() {
		return target{}, fmt.Errorf("%w: not signed in, run 'sheetpost login'", domain.ErrAuthExpired)
	}

	t := target{userID: settings.Account.UserID, sheetID: sheetFlag, blogID: blogFlag}
	if t.sheetID == "" {
		t.sheetID = settings.Defaults.SheetID
	}
	if t.blogID == "" {
		t.blogID = settings.Defaults.BlogID
	}
	if needSheet && t.sheetID == "" {
		return target{}, fmt.Errorf("%w: no sheet given, use --sheet or 'sheetpost settings defaults --sheet'",
			domain.ErrInvalidInput)
	}
	if needBlog && t.blogID == "" {
		return target{}, fmt.Errorf("%w: no blog given, use --blog or 'sheetpost settings defaults --blog'",
			domain.ErrInvalidInput)
	}
	return t, nil
}
