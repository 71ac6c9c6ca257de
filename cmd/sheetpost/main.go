// Command sheetpost publishes scheduled posts from Google Sheets to Blogger.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sheetpost/internal/adapters/driving/cli"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

func main() {
	// A .env file in the working directory may carry the OAuth client.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetBootstrap(wire)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
