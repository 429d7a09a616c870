package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/log"
	"github.com/chris/grafik/internal/scheduler"
	"github.com/chris/grafik/internal/web"
)

var (
	serveListen   string
	serveNoTicker bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and run the status engine",
	Long: "Serve /events, /persons, /events/view and /reminders/upcoming over HTTP " +
		"while ticking in the background. Reminders are logged.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default: listen from config)")
	serveCmd.Flags().BoolVar(&serveNoTicker, "no-ticker", false, "Serve only, without status updates and reminders")
}

func runServe(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !serveNoTicker {
		runner := scheduler.NewRunner(database, scheduler.NewWriterNotifier(cmd.ErrOrStderr()))
		shutdown, err := startBackground(runner)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	addr := serveListen
	if addr == "" {
		addr = appConfig.Listen
	}
	err = web.NewServer(database, web.WithUpcomingLimit(appConfig.UpcomingLimit)).ListenAndServe(ctx, addr)
	if err != nil {
		return err
	}
	log.Info("HTTP server stopped")
	return nil
}
