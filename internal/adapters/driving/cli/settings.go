package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View the current settings and choose the default sheet and blog.

Settings live in config.toml in the config directory; the OAuth client can
also come from the GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment
variables.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Set the default sheet and blog",
	Long: `Set the spreadsheet and blog used when --sheet or --blog is not given.

Examples:
  sheetpost settings defaults --sheet 1AbC... --blog 123456789`,
	RunE: runSettingsDefaults,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsDefaultsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Google]")
	cmd.Printf("  Client ID: %s\n", valueOrNotSet(settings.Google.ClientID))
	if settings.Google.ClientSecret != "" {
		cmd.Printf("  Client Secret: %s\n", maskSecret(settings.Google.ClientSecret))
	} else {
		cmd.Println("  Client Secret: (not set)")
	}
	if settings.Google.RedirectPort > 0 {
		cmd.Printf("  Redirect Port: %d\n", settings.Google.RedirectPort)
	}
	cmd.Println()

	cmd.Println("[Account]")
	if settings.Account.IsConfigured() {
		cmd.Printf("  Signed in as: %s\n", settings.Account.Email)
	} else {
		cmd.Println("  Signed in as: (not signed in)")
	}
	cmd.Println()

	cmd.Println("[Defaults]")
	cmd.Printf("  Sheet: %s\n", valueOrNotSet(settings.Defaults.SheetID))
	cmd.Printf("  Blog: %s\n", valueOrNotSet(settings.Defaults.BlogID))
	cmd.Println()

	cmd.Println("[Schedule]")
	cmd.Printf("  Timezone: %s\n", settings.Schedule.Timezone)
	cmd.Println()

	cmd.Println("[Publish]")
	cmd.Printf("  Requests per second: %g\n", settings.Publish.RequestsPerSecond)
	cmd.Printf("  Burst: %d\n", settings.Publish.Burst)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  History: %t\n", settings.Storage.History)
	cmd.Printf("  Keep runs: %d\n", settings.Storage.HistoryKeep)
	return nil
}

func runSettingsDefaults(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if sheetFlag == "" && blogFlag == "" {
		return errors.New("give --sheet, --blog or both")
	}

	if err := settingsService.SaveDefaults(domain.DefaultsSettings{SheetID: sheetFlag, BlogID: blogFlag}); err != nil {
		return fmt.Errorf("failed to save defaults: %w", err)
	}

	if sheetFlag != "" {
		cmd.Printf("Default sheet: %s\n", sheetFlag)
	}
	if blogFlag != "" {
		cmd.Printf("Default blog: %s\n", blogFlag)
	}
	return nil
}

// Helper functions.

func valueOrNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
