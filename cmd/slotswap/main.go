package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/adapter/cli/slot"
	"github.com/felixgeelhaar/slotswap/adapter/cli/swap"
	"github.com/felixgeelhaar/slotswap/adapter/cli/user"
	"github.com/felixgeelhaar/slotswap/internal/app"
	"github.com/felixgeelhaar/slotswap/pkg/config"
	"github.com/google/uuid"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development", LogLevel: "info"}
	}

	logger := app.NewLogger(cfg, os.Stderr)
	if err != nil {
		logger.Warn("failed to load config, using development defaults", "error", err)
	}
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			return 1
		}
		// Commands that need the store report ErrNotInitialized.
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()

		cliApp = cli.NewApp(container)
		if cfg.UserID != "" {
			userID, err := uuid.Parse(cfg.UserID)
			if err != nil {
				logger.Error("invalid SLOTSWAP_USER_ID", "error", err)
				return 1
			}
			cliApp.SetCurrentUserID(userID)
		}
	}

	cli.SetApp(cliApp)

	cli.AddCommand(user.Cmd)
	cli.AddCommand(slot.Cmd)
	cli.AddCommand(swap.Cmd)
	cli.AddCommand(newServeCmd(container))
	cli.AddCommand(newMigrateCmd(container))

	return cli.Execute(ctx)
}
