package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/config"
	"github.com/chris/grafik/internal/log"
	"github.com/chris/grafik/internal/scheduler"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the status engine and reminders in the foreground",
	Long: "Tick on the configured schedule (tick in the config, default @every 60s), print " +
		"reminders to stdout and reload the config file when it changes. Stops on SIGINT/SIGTERM.",
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

// startBackground catches the store up with one synchronous tick, then
// starts the tick runner and the config watcher. The returned stop function
// shuts both down.
func startBackground(runner *scheduler.Runner) (func(), error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := runner.RunOnce(context.Background()); err != nil {
		log.Error("tick failed", err)
	}
	if err := runner.Start(appConfig.Tick); err != nil {
		return nil, err
	}

	watcher, err := config.Watch(path, func(cfg *config.Config) {
		log.SetLevel(log.ParseLevel(cfg.LogLevel))
		if err := runner.Reschedule(cfg.Tick); err != nil {
			log.Error("keeping current tick schedule", err, "tick", cfg.Tick)
		}
	})
	if err != nil {
		// Ticking still works without hot reload
		log.Error("config watch disabled", err, "path", path)
	}

	return func() {
		if watcher != nil {
			watcher.Close()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := runner.Stop(ctx); err != nil {
			log.Error("scheduler did not stop cleanly", err)
		}
	}, nil
}

func runDaemon(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := scheduler.NewRunner(database, scheduler.NewWriterNotifier(cmd.OutOrStdout()))
	shutdown, err := startBackground(runner)
	if err != nil {
		return err
	}
	defer shutdown()

	fmt.Fprintf(cmd.ErrOrStderr(), "grafik daemon running (%s), press Ctrl+C to stop\n", appConfig.Tick)
	<-ctx.Done()
	return nil
}
