package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryMarkdown(t *testing.T) {
	rows := Rows([]*domain.Result{{
		Model: "S01", Trial: "walk_01", Frames: 120,
		AxisKeys: []string{"Pelvis", "Hip"}, AngleKeys: []string{"Pelvis"},
	}})
	rows = append(rows, TrialRow{Model: "S02", Trial: "walk_01", Err: errors.New("a|b")})

	md := SummaryMarkdown(rows)
	assert.Contains(t, md, "| S01 | walk_01 | 120 | 2 | 1 | ok |")
	assert.Contains(t, md, "| S02 | walk_01 | 0 | 0 | 0 | failed: a\\|b |")
}

func TestRenderSummary_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, []TrialRow{{Model: "S01", Trial: "walk", Frames: 3}}))
	assert.True(t, strings.HasPrefix(buf.String(), "## Run summary"))
}

func TestSummaryMarkdown_Glamour(t *testing.T) {
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("notty"), glamour.WithWordWrap(120))
	require.NoError(t, err)
	out, err := r.Render(SummaryMarkdown([]TrialRow{{Model: "S01", Trial: "walk_01", Frames: 42}}))
	require.NoError(t, err)
	assert.Contains(t, out, "walk_01")
	assert.Contains(t, out, "42")
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
	assert.Contains(t, Status(&buf, true), "ok")
	assert.Contains(t, Status(&buf, false), "failed")
}
