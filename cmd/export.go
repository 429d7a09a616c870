package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/log"
	"github.com/chris/grafik/internal/report"
	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

var (
	exportFormat   string
	exportDate     string
	exportOut      string
	exportStdout   bool
	exportArchived bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule as a report file",
	Long: "Write the schedule as a text table or an iCalendar file. The file is named " +
		"График_<date>.<ext> for a single day and График_работы_<today>.<ext> otherwise.",
	Example: `  grafik export --date 02.10.2025
  grafik export --format ics --out ~/Documents`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "text", "Report format (text, ics)")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Only events on this day (DD.MM.YYYY or YYYY-MM-DD)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory (default: export_dir from config)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write the report to stdout instead of a file")
	exportCmd.Flags().BoolVar(&exportArchived, "archived", false, "Report archived events instead of active ones")
}

// reportInput is what every report is built from
type reportInput struct {
	events    []models.Event
	registry  *schedule.Registry
	dateLabel string
}

// loadReport reads the events of a report in display order
func loadReport(ctx context.Context, date string, archived bool) (reportInput, error) {
	database, err := openDB()
	if err != nil {
		return reportInput{}, err
	}
	defer database.Close()

	events, err := database.ListEvents(ctx)
	if err != nil {
		return reportInput{}, err
	}
	persons, err := database.ListPersons(ctx)
	if err != nil {
		return reportInput{}, err
	}

	q := schedule.AllActive()
	q.Archived = archived
	events, label, err := onDate(schedule.Filter(events, q), date)
	if err != nil {
		return reportInput{}, err
	}

	return reportInput{
		events:    schedule.Group(events).Ordered(),
		registry:  schedule.NewRegistry(persons),
		dateLabel: label,
	}, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "text" && exportFormat != "ics" {
		return fmt.Errorf("unknown format %q (want text or ics)", exportFormat)
	}

	in, err := loadReport(cmd.Context(), exportDate, exportArchived)
	if err != nil {
		return err
	}

	now := time.Now()
	var content, ext string
	switch exportFormat {
	case "ics":
		var skipped []error
		content, skipped = report.ICS(in.events, in.registry, in.dateLabel, now)
		for _, err := range skipped {
			log.Error("event left out of calendar", err)
		}
		ext = "ics"
	default:
		content = report.FormatTable(report.Build(in.events, in.registry, in.dateLabel, now), report.FormatOptions{NoColor: true})
		ext = "txt"
	}

	if exportStdout {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	dir := exportOut
	if dir == "" {
		dir = appConfig.ExportDir
	}
	path, err := report.Save(dir, report.FileName(in.dateLabel, now, ext), content)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report saved: %s\n", path)
	return nil
}
