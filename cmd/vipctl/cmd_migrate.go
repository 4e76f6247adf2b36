package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vipcleaners/pos-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica el esquema y la función de códigos de ubicación",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		applied, err := postgres.Migrate(ctx, current.pool)
		if err != nil {
			return err
		}
		for _, name := range applied {
			fmt.Fprintln(cmd.OutOrStdout(), "aplicada:", name)
		}
		return nil
	},
}
