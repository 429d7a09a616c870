package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chris/grafik/pkg/models"
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true) // bright-magenta
	subtitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // bright-black
	headingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true) // bright-blue
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusScheduled:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		models.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		models.StatusCancelled:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Strikethrough(true),
	}
)

// FormatOptions controls text rendering
type FormatOptions struct {
	NoColor bool
}

func renderStyle(style lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return style.Render(text)
}

// FormatTable renders doc as an aligned text table. Widths are measured in
// terminal cells so Cyrillic text lines up.
func FormatTable(doc Document, opts FormatOptions) string {
	var sb strings.Builder

	sb.WriteString(renderStyle(titleStyle, doc.Title, opts.NoColor))
	sb.WriteString("\n")
	sb.WriteString(renderStyle(subtitleStyle, doc.Subtitle, opts.NoColor))
	sb.WriteString("\n\n")

	if len(doc.Rows) == 0 {
		sb.WriteString("Нет мероприятий.\n")
		return sb.String()
	}

	widths := columnWidths(doc.Rows)

	last := len(Columns) - 1
	headings := make([]string, len(Columns))
	for i, c := range Columns {
		if i < last {
			c = pad(c, widths[i])
		}
		headings[i] = renderStyle(headingStyle, c, opts.NoColor)
	}
	sb.WriteString(strings.Join(headings, "  "))
	sb.WriteString("\n")

	total := (len(widths) - 1) * 2
	for _, w := range widths {
		total += w
	}
	sb.WriteString(renderStyle(separatorStyle, strings.Repeat("-", total), opts.NoColor))
	sb.WriteString("\n")

	for _, row := range doc.Rows {
		cells := row.Cells()
		for i := range last {
			cells[i] = pad(cells[i], widths[i])
		}
		if style, ok := statusStyles[row.status]; ok {
			cells[last] = renderStyle(style, cells[last], opts.NoColor)
		}
		sb.WriteString(strings.Join(cells, "  "))
		sb.WriteString("\n")
	}

	return sb.String()
}

func columnWidths(rows []Row) []int {
	widths := make([]int, len(Columns))
	for i, c := range Columns {
		widths[i] = ansi.StringWidth(c)
	}
	for _, row := range rows {
		for i, cell := range row.Cells() {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}
	return widths
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}
