package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

func TestLoginCmd_UsesConfiguredClient(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("login", "--no-browser")

	require.NoError(t, err)
	assert.Equal(t, "cid", ts.authGoogle.ClientID)
	assert.Equal(t, 8085, ts.authPort)
	assert.Contains(t, out, "https://accounts.example.com/auth")
	assert.Contains(t, out, "Signed in as new@example.com")
}

func TestLoginCmd_FlagsOverrideClient(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("login", "--no-browser", "--client-id", "flag-id", "--client-secret", "flag-secret")

	require.NoError(t, err)
	assert.Equal(t, "flag-id", ts.authGoogle.ClientID)
	assert.Equal(t, "flag-id", ts.settings.settings.Google.ClientID, "client is saved")
	assert.Equal(t, "flag-secret", ts.settings.settings.Google.ClientSecret)
}

func TestLoginCmd_HintsDefaults(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Defaults = domain.DefaultsSettings{}

	out, err := execute("login", "--no-browser")

	require.NoError(t, err)
	assert.Contains(t, out, "sheetpost settings defaults")
}

func TestLoginCmd_Failure(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.auth.err = errors.Join(domain.ErrAuthExpired, errors.New("access_denied"))

	_, err := execute("login", "--no-browser")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
}

func TestLogoutCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("logout")

	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ts.credentials.forgotten)
	assert.False(t, ts.settings.settings.Account.IsConfigured())
	assert.Contains(t, out, "Signed out me@example.com")

	out, err = execute("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")
}
