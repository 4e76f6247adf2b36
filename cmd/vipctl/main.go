// Command vipctl tareas de operación: migraciones, datos iniciales y consultas de ubicaciones.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/vipcleaners/pos-api/internal/application/storage"
	"github.com/vipcleaners/pos-api/internal/infrastructure/postgres"
	"github.com/vipcleaners/pos-api/pkg/config"
	"github.com/vipcleaners/pos-api/pkg/logger"
)

// env recursos compartidos por los subcomandos, abiertos en PersistentPreRunE.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

var (
	current   env
	verbose   bool
	cmdTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "vipctl",
	Short:         "Herramientas de operación de VIP Cleaners",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		level := cfg.App.LogLevel
		if verbose {
			level = "debug"
		}
		current.cfg = cfg
		current.log = logger.New(logger.Config{Env: "development", Level: level, Service: "vipctl"})

		pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		current.pool = pool
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if current.pool != nil {
			current.pool.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log en nivel debug")
	rootCmd.PersistentFlags().DurationVar(&cmdTimeout, "timeout", 30*time.Second, "tiempo máximo del comando")
	rootCmd.AddCommand(migrateCmd, seedCmd, checkCodeCmd, suggestCmd, labelsCmd)
}

// storageService arma el servicio de ubicaciones con la misma configuración que la API.
func storageService() (*storage.Service, error) {
	slots := postgres.NewStorageSlotRepository(current.pool)
	deps := storage.ServiceDeps{
		Slots:       slots,
		Tx:          postgres.NewTxRunner(current.pool),
		Log:         current.log,
		LockTimeout: time.Duration(current.cfg.Storage.LockTimeoutSeconds) * time.Second,
	}
	if name := current.cfg.Storage.CodeFunction; name != "" {
		auto, err := postgres.NewAutoCodeFunction(current.pool, name)
		if err != nil {
			return nil, err
		}
		deps.Auto = auto
	}
	return storage.NewService(deps), nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), cmdTimeout)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
