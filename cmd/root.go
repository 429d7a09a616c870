package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chris/grafik/internal/config"
	"github.com/chris/grafik/internal/db"
	"github.com/chris/grafik/internal/log"
)

var (
	dbPath     string
	configPath string
	noColor    bool

	// appConfig is loaded before every command runs
	appConfig = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "grafik",
	Short: "Legislator schedule manager",
	Long: "Keeps a deputy's working schedule in SQLite: events, responsible persons, " +
		"automatic status updates and reminders, reports and an HTTP API",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.local/share/grafik/schedule.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/grafik/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// resolveConfigPath returns --config or the XDG default
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		if cfg == nil {
			return err
		}
		// Defaults still work when the file cannot be created
		log.Error("failed to write default config", err, "path", path)
	}
	appConfig = cfg
	log.SetLevel(log.ParseLevel(cfg.LogLevel))
	return nil
}

// effectiveDBPath returns --db, falling back to the configured path
func effectiveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return appConfig.DBPath
}

// openDB opens the initialized schedule database
func openDB() (*db.DB, error) {
	database, err := db.New(effectiveDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// isTerminal returns true if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// colorDisabled reports whether output to w should stay plain: --no-color,
// NO_COLOR / CLICOLOR=0, or a writer that is not a terminal
func colorDisabled(w io.Writer) bool {
	return noColor || termenv.EnvNoColor() || !isTerminal(w)
}
