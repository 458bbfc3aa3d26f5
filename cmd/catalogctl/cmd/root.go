package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiruna-explorer/backend/internal/util"
	"github.com/kiruna-explorer/backend/pkg/logger"
	"github.com/kiruna-explorer/backend/pkg/logger/console"
)

var (
	databaseURL    string
	migrationsPath string
	debug          bool
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Administer the Kiruna document catalogue",
	Long: `catalogctl manages the catalogue database and inspects its content
without going through the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
			Debug:  debug,
			Format: util.GetEnv("LOG_FORMAT"),
			Prefix: "catalogctl",
		}))
		if databaseURL == "" && cmd.Name() != "help" && cmd.Name() != "completion" {
			return fmt.Errorf("no database configured: set DATABASE_URL or pass --database")
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	util.LoadEnv()

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database", util.GetEnv("DATABASE_URL"), "postgres connection URL")
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "migrations", util.GetEnvString("MIGRATIONS_PATH", "migrations"), "directory holding the SQL migrations")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", util.GetEnvBool("DEBUG", false), "enable debug logging")
}
