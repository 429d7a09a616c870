package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

var (
	dayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// FormatAgenda renders day buckets as a terminal list: a header per day,
// then one line per event with its id, time, title, type, place and status.
func FormatAgenda(days []schedule.Day, registry *schedule.Registry, opts FormatOptions) string {
	if len(days) == 0 {
		return "Нет мероприятий.\n"
	}

	var sb strings.Builder
	for i, d := range days {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(renderStyle(dayStyle, d.Header, opts.NoColor))
		sb.WriteString("\n")

		for _, e := range d.Events {
			line := fmt.Sprintf("%s  %s [%s]",
				renderStyle(timeStyle, fmt.Sprintf("%4d  %s-%s", e.ID, e.TimeStart, e.TimeEnd), opts.NoColor),
				renderStyle(eventStyle, e.Title, opts.NoColor),
				e.Type.Label())
			if place := e.Place().Text(); place != "" {
				line += "  " + place
			}
			if name := registry.ResponsibleName(e); name != "-" {
				line += "  (" + name + ")"
			}
			status := e.Status.Label()
			if style, ok := statusStyles[e.Status]; ok {
				status = renderStyle(style, status, opts.NoColor)
			}
			sb.WriteString(line + "  " + status + "\n")
		}
	}
	return sb.String()
}

// FormatDetail renders every field of one event as label/value lines
func FormatDetail(e models.Event, registry *schedule.Registry, opts FormatOptions) string {
	header, err := schedule.FormatHeader(e.Date)
	if err != nil {
		header = e.Date
	}

	reminder := "нет"
	if e.HasReminder() {
		reminder = fmt.Sprintf("за %d мин", e.ReminderMinutes)
	}
	archived := "нет"
	if e.Archived {
		archived = "да"
	}

	type field struct{ label, value string }
	fields := []field{
		{"ID", fmt.Sprintf("%d", e.ID)},
		{"Дата", header},
		{"Время", e.TimeStart + " - " + e.TimeEnd},
		{"Мероприятие", e.Title},
		{"Тип", e.Type.Label()},
		{"Место/Регион", e.Place().Text()},
		{"Ответственный", registry.ResponsibleName(e)},
		{"Статус", e.Status.Label()},
		{"Напоминание", reminder},
		{"Архив", archived},
	}
	if e.Description != "" {
		fields = append(fields, field{"Описание", e.Description})
	}

	width := 0
	for _, f := range fields {
		width = max(width, len([]rune(f.label)))
	}

	var sb strings.Builder
	for _, f := range fields {
		label := pad(f.label+":", width+1)
		sb.WriteString(renderStyle(labelStyle, label, opts.NoColor))
		sb.WriteString(" ")
		sb.WriteString(renderStyle(valueStyle, f.value, opts.NoColor))
		sb.WriteString("\n")
	}
	return sb.String()
}
