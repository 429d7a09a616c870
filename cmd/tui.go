package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the schedule interactively",
	Long:  "Open the agenda browser. Statuses and reminders update every minute while it runs.",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if noColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	model := tui.New(database, tui.WithUpcomingLimit(appConfig.UpcomingLimit))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}
