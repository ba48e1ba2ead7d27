package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// TrialRow is one line of the run summary.
type TrialRow struct {
	Model  string
	Trial  string
	Frames int
	Axes   int
	Angles int
	Err    error
}

// Rows converts results into summary rows.
func Rows(results []*domain.Result) []TrialRow {
	rows := make([]TrialRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, TrialRow{
			Model:  r.Model,
			Trial:  r.Trial,
			Frames: r.Frames,
			Axes:   len(r.AxisKeys),
			Angles: len(r.AngleKeys),
		})
	}
	return rows
}

// SummaryMarkdown formats rows as a markdown table.
func SummaryMarkdown(rows []TrialRow) string {
	var sb strings.Builder
	sb.WriteString("## Run summary\n\n")
	sb.WriteString("| Model | Trial | Frames | Axes | Angles | Status |\n")
	sb.WriteString("|---|---|---:|---:|---:|---|\n")
	for _, r := range rows {
		status := "ok"
		if r.Err != nil {
			status = "failed: " + strings.ReplaceAll(r.Err.Error(), "|", "\\|")
		}
		fmt.Fprintf(&sb, "| %s | %s | %d | %d | %d | %s |\n", r.Model, r.Trial, r.Frames, r.Axes, r.Angles, status)
	}
	return sb.String()
}

// NewRenderer returns a function that renders markdown using glamour.
// Output that is not a terminal gets the markdown unchanged.
func NewRenderer(w io.Writer) func(string) (string, error) {
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// RenderSummary writes the run summary to w.
func RenderSummary(w io.Writer, rows []TrialRow) error {
	out, err := NewRenderer(w)(SummaryMarkdown(rows))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
