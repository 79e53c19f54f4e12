package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/slotswap/adapter/api"
	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/app"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the JSON API until interrupted.

Every route except /health expects a bearer token signed with JWT_SECRET
whose subject is the caller's user id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container == nil {
				return cli.ErrNotInitialized
			}
			cfg := container.Config
			if err := cfg.ValidateServer(); err != nil {
				return err
			}
			logger := container.Logger

			deps := api.Dependencies{
				Auth:        api.NewAuthenticator([]byte(cfg.JWTSecret), logger),
				Idempotency: api.NewIdempotencyGuard(container.Idempotency, cfg.IdempotencyTTL, logger),
				Ping:        container.Ping,

				CreateSlot:     container.CreateSlotHandler,
				UpdateSlot:     container.UpdateSlotHandler,
				DeleteSlot:     container.DeleteSlotHandler,
				ListMySlots:    container.ListMySlotsHandler,
				ExportCalendar: container.ExportCalendarHandler,

				ProposeSwap:     container.ProposeSwapHandler,
				RespondToSwap:   container.RespondToSwapHandler,
				ListMarketplace: container.ListMarketplaceHandler,
				ListIncoming:    container.ListIncomingHandler,
				ListOutgoing:    container.ListOutgoingHandler,
				RequestHistory:  container.RequestHistoryHandler,
			}

			serverCfg := api.DefaultServerConfig()
			serverCfg.Addr = cfg.HTTPAddr
			serverCfg.ReadTimeout = cfg.HTTPReadTimeout
			serverCfg.WriteTimeout = cfg.HTTPWriteTimeout

			server := api.NewServer(serverCfg, deps, logger)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			logger.Info("shutting down api")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
}
