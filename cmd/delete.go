package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [event-ids...]",
	Short: "Delete events from the schedule by ID",
	Long:  "Delete one or more events from the schedule database by their IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

// parseEventID parses a positional event or person ID
func parseEventID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q: %w", arg, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid ID %q: must be a positive integer", arg)
	}
	return id, nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	// Parse positional args as int64 event IDs
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseEventID(arg)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	count := 0
	for _, id := range ids {
		if err := database.DeleteEvent(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete event %d: %w", id, err)
		}
		count++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d event(s)\n", count)
	return nil
}
