package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/app"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/migrations"
)

func newMigrateCmd(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container == nil {
				return cli.ErrNotInitialized
			}

			m, err := migrations.NewMigrator(container.DBConn, container.Logger)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Up(cmd.Context()); err != nil {
				return err
			}
			version, err := m.Version(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", container.DBDriver, version)
			return nil
		},
	}
}
