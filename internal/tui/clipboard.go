package tui

import (
	"encoding/base64"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

type yankResultMsg struct {
	err error
}

// osc52 builds the clipboard escape for text. Under tmux the sequence is
// wrapped in a DCS passthrough with its leading ESC doubled.
func osc52(text string, tmux bool) string {
	seq := "]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if tmux {
		return "\x1bPtmux;\x1b\x1b" + seq + "\x1b\\"
	}
	return "\x1b" + seq
}

// clipboardWriter is a tea.ExecCommand that emits the escape on the
// program's output
type clipboardWriter struct {
	text string
	out  io.Writer
}

func (c *clipboardWriter) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	_, err := io.WriteString(out, osc52(c.text, os.Getenv("TMUX") != ""))
	return err
}

func (c *clipboardWriter) SetStdin(io.Reader)    {}
func (c *clipboardWriter) SetStdout(w io.Writer) { c.out = w }
func (c *clipboardWriter) SetStderr(io.Writer)   {}

func yankToClipboard(text string) tea.Cmd {
	return tea.Exec(&clipboardWriter{text: text}, func(err error) tea.Msg {
		return yankResultMsg{err: err}
	})
}
