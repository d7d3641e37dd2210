// Command gamebase serves the video game inventory catalog.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/gamebase/internal/config"
	"github.com/erazemk/gamebase/internal/db"
)

var (
	// Global flags, overriding the environment.
	dbPath   string
	logPath  string
	logLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gamebase",
	Short: "Video game inventory catalog",
	Long: `gamebase manages the games and categories of a video game store
through a server-rendered web interface backed by SQLite.

Settings are read from GAMEBASE_* environment variables and an optional
.env file in the working directory. Flags take precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("db") {
			c.DB = dbPath
		}
		if flags.Changed("log") {
			c.LogPath = logPath
		}
		if flags.Changed("log-level") {
			c.LogLevel = logLevel
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (default: gamebase.sqlite3)")
	rootCmd.PersistentFlags().StringVarP(&logPath, "log", "l", "", "log file path (default: stdout/stderr only)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "minimum log level: debug, info, warn, error (default: info)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openDatabase opens the configured database and makes sure the schema
// exists.
func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	if err := ctx.Err(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
