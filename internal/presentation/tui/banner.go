package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the gaitcgm banner in a green to teal gradient.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"              _ _                       ", "#4ade80"},
		{"   __ _  __ _(_) |_ ___ __ _ _ __ ___   ", "#34d399"},
		{"  / _` |/ _` | | __/ __/ _` | '_ ` _ \\  ", "#2dd4bf"},
		{" | (_| | (_| | | || (_| (_| | | | | | | ", "#22d3ee"},
		{"  \\__, |\\__,_|_|\\__\\___\\__, |_| |_| |_| ", "#38bdf8"},
		{"  |___/                |___/            ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colors a trial outcome for terminal output.
func Status(w io.Writer, ok bool) string {
	out := termenv.NewOutput(w)
	if ok {
		return out.String("ok").Foreground(out.Color("#22c55e")).Bold().String()
	}
	return out.String("failed").Foreground(out.Color("#ef4444")).Bold().String()
}
