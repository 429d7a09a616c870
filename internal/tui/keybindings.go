package tui

// helpBinding represents a single keybinding entry for the help view.
type helpBinding struct {
	key  string
	desc string
}

// bindingsFor returns the help bindings for the current mode.
func bindingsFor(searching bool) []helpBinding {
	if searching {
		return []helpBinding{
			{"enter", "Apply search"},
			{"esc", "Discard"},
			{"backspace", "Delete character"},
		}
	}
	return []helpBinding{
		{"j", "Navigate down"},
		{"k", "Navigate up"},
		{"tab", "Active / archive"},
		{"/", "Search"},
		{"esc", "Clear search"},
		{"t", "Cycle type filter"},
		{"s", "Cycle status filter"},
		{"x", "Cancel event"},
		{"a", "Archive / restore"},
		{"y", "Copy link or summary"},
		{"n", "Dismiss notifications"},
		{"r", "Reload"},
		{"?", "Help"},
		{"q", "Quit"},
	}
}
