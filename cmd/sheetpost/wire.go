package main

import (
	"path/filepath"

	"github.com/custodia-labs/sheetpost/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sheetpost/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sheetpost/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sheetpost/internal/adapters/driving/cli"
	"github.com/custodia-labs/sheetpost/internal/adapters/driving/oauth"
	"github.com/custodia-labs/sheetpost/internal/connectors"
	"github.com/custodia-labs/sheetpost/internal/connectors/google"
	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driven"
	"github.com/custodia-labs/sheetpost/internal/core/ports/driving"
	"github.com/custodia-labs/sheetpost/internal/core/services"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

// wire builds the services for one command run.
func wire(configDir string) (*cli.Services, func() error, error) {
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}

	// Bundles carry their own client credentials, so the refresher needs none.
	credentials := services.NewCredentialsService(
		memory.NewCredentialsStore(),
		google.NewOAuthClient("", "", nil),
	)
	clients := connectors.NewFactory(credentials, settings.Publish)
	loc := settings.Schedule.Location()

	runs, closer := openRunStore(configDir, settings.Storage)

	schedule := services.NewScheduleService(credentials, clients, runs, loc)
	schedule.SetHistoryKeep(settings.Storage.HistoryKeep)

	return &cli.Services{
		Schedule:    schedule,
		Settings:    settingsService,
		Blog:        services.NewBlogService(credentials, clients, loc),
		Sheet:       services.NewSheetService(credentials, clients),
		History:     services.NewHistoryService(runs),
		Credentials: credentials,
		Auth: func(g domain.GoogleSettings, port int) (driving.AuthService, error) {
			return services.NewAuthService(
				google.NewOAuthClient(g.ClientID, g.ClientSecret, nil),
				oauth.NewCallbackServer(port),
				credentials,
				settingsService,
			), nil
		},
		Watcher: configStore,
	}, closer, nil
}

// openRunStore opens the SQLite history database. When it cannot be opened
// history is kept in memory for this run only.
func openRunStore(configDir string, storage domain.StorageSettings) (driven.RunStore, func() error) {
	noop := func() error { return nil }
	if !storage.History {
		return nil, noop
	}

	dataDir := storage.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("history database unavailable, keeping history in memory: %v", err)
		return memory.NewRunStore(), noop
	}
	logger.Debug("History: %s", store.Path())
	return store.RunStore(), store.Close
}
