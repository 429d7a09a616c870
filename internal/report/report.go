package report

import (
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

const (
	titlePrefix  = "График работы депутата на "
	defaultTitle = "График работы депутата Государственной Думы РФ"
)

// Columns are the report headings in display order
var Columns = []string{"Дата", "Время", "Мероприятие", "Тип", "Место/Регион", "Ответственный", "Статус"}

// Row is one report line
type Row struct {
	Date        string
	Time        string
	Title       string
	Type        string
	Place       string
	Responsible string
	Status      string

	status models.Status
}

// Cells returns the row values in Columns order
func (r Row) Cells() []string {
	return []string{r.Date, r.Time, r.Title, r.Type, r.Place, r.Responsible, r.Status}
}

// Document is a rendered schedule report
type Document struct {
	Title    string
	Subtitle string
	Rows     []Row
}

// Title returns the report title for an optional single-date label
func Title(dateLabel string) string {
	if dateLabel == "" {
		return defaultTitle
	}
	return titlePrefix + dateLabel
}

// Subtitle stamps the generation date
func Subtitle(now time.Time) string {
	return "Дата формирования: " + strftime.Format("%d.%m.%Y", now)
}

// BuildRows maps events to report rows, keeping their order. Events are
// expected to arrive filtered and sorted.
func BuildRows(events []models.Event, registry *schedule.Registry) []Row {
	rows := make([]Row, 0, len(events))
	for _, e := range events {
		rows = append(rows, Row{
			Date:        e.Date,
			Time:        e.TimeStart + " - " + e.TimeEnd,
			Title:       e.Title,
			Type:        e.Type.Label(),
			Place:       e.Place().Text(),
			Responsible: registry.ResponsibleName(e),
			Status:      e.Status.Label(),
			status:      e.Status,
		})
	}
	return rows
}

// Build assembles a full document
func Build(events []models.Event, registry *schedule.Registry, dateLabel string, now time.Time) Document {
	return Document{
		Title:    Title(dateLabel),
		Subtitle: Subtitle(now),
		Rows:     BuildRows(events, registry),
	}
}
