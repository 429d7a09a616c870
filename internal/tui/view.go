package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chris/grafik/pkg/models"
)

// Styles
var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	focusDotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	blurDotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dayStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	notifyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusScheduled:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		models.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		models.StatusCancelled:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

const (
	marginX = 2
	// maxNotifications is how many fired reminders the footer keeps on screen
	maxNotifications = 3
)

func (m *Model) contentWidth() int {
	width := m.width
	if width == 0 {
		width = 80
	}
	return max(width-2*marginX, 20)
}

func (m *Model) renderView() string {
	var b strings.Builder

	contentWidth := m.contentWidth()
	margin := strings.Repeat(" ", marginX)

	// Header
	b.WriteString(margin + m.renderHeader())
	b.WriteString("\n")
	b.WriteString(margin + separatorStyle.Render(strings.Repeat("=", contentWidth)))
	b.WriteString("\n\n")

	// Body
	switch {
	case m.showHelp:
		for _, bind := range bindingsFor(m.searching) {
			b.WriteString(margin + fmt.Sprintf("%-10s %s", bind.key, bind.desc) + "\n")
		}
	case len(m.visible) == 0:
		b.WriteString(margin + "Нет мероприятий\n")
	default:
		lines := m.bodyLines(contentWidth)
		end := len(lines)
		if m.height > 0 {
			end = min(m.scrollOffset+max(m.bodyHeight(), 1), len(lines))
		}
		for _, line := range lines[min(m.scrollOffset, end):end] {
			b.WriteString(margin + line + "\n")
		}
	}

	// Footer
	for _, line := range m.footerLines(contentWidth) {
		b.WriteString(margin + line + "\n")
	}
	b.WriteString(margin + m.renderStatusBar())

	return b.String()
}

func (m *Model) renderHeader() string {
	dot := focusDotStyle.Render("●")
	if !m.focused {
		dot = blurDotStyle.Render("○")
	}

	tab := "Активные"
	if m.query.Archived {
		tab = "Архив"
	}

	filters := fmt.Sprintf("тип: %s  статус: %s",
		filterLabel(m.query.Type, func(v string) string { return models.EventType(v).Label() }),
		filterLabel(m.query.Status, func(v string) string { return models.Status(v).Label() }))

	header := headerStyle.Render("График работы") + " " + dot + " " + headerStyle.Render(tab) + "  " + dimStyle.Render(filters)

	switch {
	case m.searching:
		header += "  /" + m.searchBuf + "▏"
	case m.query.Text != "":
		header += "  " + dimStyle.Render("поиск: "+m.query.Text)
	}
	return header
}

// bodyLines renders every day bucket; scrolling picks a window of them
func (m *Model) bodyLines(width int) []string {
	var lines []string
	idx := 0
	for _, d := range m.days {
		lines = append(lines, dayStyle.Render(d.Header))
		for _, e := range d.Events {
			lines = append(lines, m.renderEvent(e, idx == m.selectedIdx, width))
			idx++
		}
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) renderEvent(e models.Event, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "▶ "
	}

	timeText := e.TimeStart + "-" + e.TimeEnd
	status := e.Status.Label()
	place := e.Place().Text()
	if place != "" {
		place = " · " + place
	}
	left := fmt.Sprintf("%s%s  %s [%s]%s", prefix, timeText, e.Title, e.Type.Label(), place)

	// Right-align the status after the description
	gap := 2
	left = truncateWithEllipsis(left, max(width-gap-ansi.StringWidth(status), 10))
	padding := max(width-ansi.StringWidth(left)-ansi.StringWidth(status), 1)

	style := normalStyle
	if selected {
		style = selectedStyle
	}
	statusStyle, ok := statusStyles[e.Status]
	if !ok {
		statusStyle = normalStyle
	}
	return style.Render(left+strings.Repeat(" ", padding)) + statusStyle.Render(status)
}

// footerLines renders the upcoming reminders, notifications and messages
func (m *Model) footerLines(width int) []string {
	lines := []string{"", separatorStyle.Render(strings.Repeat("─", width))}

	if len(m.upcoming) > 0 {
		lines = append(lines, dimStyle.Render("Ближайшие напоминания:"))
		for _, e := range m.upcoming {
			text := fmt.Sprintf("  %s %s  %s", e.Date, e.TimeStart, e.Title)
			if e.ReminderMinutes > 0 {
				text += fmt.Sprintf(" (за %d мин)", e.ReminderMinutes)
			}
			lines = append(lines, normalStyle.Render(truncateWithEllipsis(text, width)))
		}
	}

	shown := m.notifications[max(len(m.notifications)-maxNotifications, 0):]
	for _, n := range shown {
		lines = append(lines, notifyStyle.Render(truncateWithEllipsis("🔔 "+n.Title+" · "+n.Body, width)))
	}

	switch {
	case m.lastErr != nil:
		lines = append(lines, errorStyle.Render(truncateWithEllipsis("Ошибка: "+m.lastErr.Error(), width)))
	case m.statusMsg != "":
		lines = append(lines, dimStyle.Render(truncateWithEllipsis(m.statusMsg, width)))
	}
	return lines
}

// bodyHeight is what remains for the day list after header and footer
func (m *Model) bodyHeight() int {
	const headerLines = 3
	const statusBarLines = 1
	return m.height - headerLines - len(m.footerLines(m.contentWidth())) - statusBarLines
}

// truncateWithEllipsis truncates a string to maxWidth, adding … if truncated
func truncateWithEllipsis(s string, maxWidth int) string {
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	truncated := ansi.Truncate(s, maxWidth-1, "")
	return truncated + "…"
}

func (m *Model) renderStatusBar() string {
	if m.searching {
		return statusBarStyle.Render("[Enter] Apply  [Esc] Discard")
	}
	return statusBarStyle.Render("[j/k] Select  [Tab] Archive  [/] Search  [t/s] Filter  [x] Cancel  [a] Archive  [?] Help  [q] Quit")
}
