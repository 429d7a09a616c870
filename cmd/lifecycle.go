package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <event-id>",
	Short: "Cancel a scheduled or running event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeEvent(cmd, args[0], "Event cancelled", schedule.Cancel)
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive <event-id>",
	Short: "Move an event to the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeEvent(cmd, args[0], "Event archived", func(e *models.Event) error {
			schedule.Archive(e)
			return nil
		})
	},
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <event-id>",
	Short: "Bring an event back from the archive",
	Long:  "Return an archived event to the active list. Automatic archival will not move it again.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeEvent(cmd, args[0], "Event restored", func(e *models.Event) error {
			schedule.Unarchive(e)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cancelCmd, archiveCmd, unarchiveCmd)
}

// changeEvent loads an event, applies a user transition and writes it back
func changeEvent(cmd *cobra.Command, arg, done string, change func(*models.Event) error) error {
	id, err := parseEventID(arg)
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
	if err := change(e); err != nil {
		return err
	}
	if err := database.UpdateEvent(cmd.Context(), e); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", done, id)
	return nil
}
