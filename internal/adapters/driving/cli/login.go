package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetpost/internal/adapters/driving/oauth"
	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// Loopback ports tried when google.redirect_port is not set.
const (
	callbackPortStart = 8085
	callbackPortEnd   = 8095
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with your Google account",
	Long: `Signs in with Google and stores the credentials in the config file.

You need an OAuth client of type "Desktop app" from the Google Cloud
console with the Blogger, Sheets and Drive APIs enabled. The client ID
and secret are read from --client-id/--client-secret, the
GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET environment variables, a .env
file, or prompted for.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored Google credentials",
	RunE:  runLogout,
}

// Flags for login.
var (
	loginClientID     string
	loginClientSecret string
	loginNoBrowser    bool
)

func init() {
	loginCmd.Flags().StringVar(&loginClientID, "client-id", "", "OAuth client ID")
	loginCmd.Flags().StringVar(&loginClientSecret, "client-secret", "", "OAuth client secret")
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "print the sign-in URL instead of opening a browser")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if authFactory == nil {
		return errors.New("auth service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	google, changed := settings.Google, false
	if loginClientID != "" {
		google.ClientID, changed = loginClientID, true
	}
	if loginClientSecret != "" {
		google.ClientSecret, changed = loginClientSecret, true
	}
	if !google.IsConfigured() {
		google = promptGoogleClient(cmd, bufio.NewReader(cmd.InOrStdin()), google)
		if !google.IsConfigured() {
			return errors.New("client ID and client secret are required")
		}
		changed = true
	}
	if changed {
		if err := settingsService.SaveGoogle(google); err != nil {
			return fmt.Errorf("failed to save OAuth client: %w", err)
		}
	}

	port := google.RedirectPort
	if port == 0 {
		port, err = oauth.FindAvailablePort(callbackPortStart, callbackPortEnd)
		if err != nil {
			return err
		}
	}

	auth, err := authFactory(google, port)
	if err != nil {
		return err
	}

	bundle, err := auth.Login(cmd.Context(), func(url string) error {
		cmd.Println("Sign in with Google using this URL:")
		cmd.Printf("  %s\n\n", url)
		if loginNoBrowser {
			return nil
		}
		return oauth.OpenBrowser(url)
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Signed in as %s\n", styles.Success.Render(bundle.Email))
	if settings.Defaults.SheetID == "" || settings.Defaults.BlogID == "" {
		cmd.Println("Choose a sheet and blog with: sheetpost settings defaults --sheet <id> --blog <id>")
	}
	return nil
}

//nolint:errcheck // CLI interactive flow
func promptGoogleClient(cmd *cobra.Command, reader *bufio.Reader, google domain.GoogleSettings) domain.GoogleSettings {
	cmd.Println("Google OAuth client")
	cmd.Println("Create a Desktop app client at https://console.cloud.google.com/apis/credentials")
	cmd.Println()

	if google.ClientID == "" {
		cmd.Print("Client ID: ")
		google.ClientID = readLine(reader)
	}
	if google.ClientSecret == "" {
		cmd.Print("Client secret: ")
		google.ClientSecret = readPassword()
		cmd.Println()
	}
	return google
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !settings.Account.IsConfigured() {
		cmd.Println("Not signed in.")
		return nil
	}

	if credentialsService != nil {
		if err := credentialsService.Forget(cmd.Context(), settings.Account.UserID); err != nil &&
			!errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to remove credentials: %w", err)
		}
	}
	if err := settingsService.SaveAccount(domain.AccountSettings{}); err != nil {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}

	cmd.Printf("Signed out %s\n", settings.Account.Email)
	return nil
}
