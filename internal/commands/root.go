// Package commands contains the command line interface of the ledger backend.
package commands

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/config"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Without a subcommand, the API server is started.
func NewRootCommand() *cobra.Command {
	serve := newServeCommand()

	rootCmd := &cobra.Command{
		Use:     "ledger",
		Short:   "Personal income and expense ledger with recurring entries and savings goals",
		Version: router.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serve.RunE,
	}

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newSummaryCommand())

	return rootCmd
}

// setup loads the configuration, configures logging and the currency
// and connects to the database.
func setup(out io.Writer) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	if cfg.HumanLogs() {
		out = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(out).With().Timestamp().Logger()

	err = money.SetCurrency(cfg.Currency)
	if err != nil {
		return config.Config{}, err
	}

	err = os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		return config.Config{}, err
	}

	err = models.Connect(cfg.DSN())
	if err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// closeDB closes the database connection, logging failures.
func closeDB() {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.Close()
	}

	if err != nil {
		log.Error().Err(err).Msg("closing database")
	}
}
