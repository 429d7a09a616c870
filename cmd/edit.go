package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/schedule"
)

var editFlags eventFlags

var editCmd = &cobra.Command{
	Use:   "edit <event-id>",
	Short: "Edit an event",
	Long:  "Change the fields given as flags and keep the rest. An edit always wins over a concurrent automatic status update.",
	Example: `  grafik edit 3 --start 11:00 --end 12:30
  grafik edit 3 --reminder 0`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editFlags.register(editCmd, true)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseEventID(args[0])
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	e, err := database.GetEvent(cmd.Context(), id)
	if err != nil {
		return err
	}
	if err := editFlags.apply(cmd, e); err != nil {
		return err
	}
	if err := schedule.Validate(*e); err != nil {
		return err
	}

	if err := database.UpdateEvent(cmd.Context(), e); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Event updated: %d\n", id)
	return nil
}
