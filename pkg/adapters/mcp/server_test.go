package mcp

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/internal/jsonfloat"
	"github.com/aretw0/gaitcgm/pkg/adapters/synthetic"
	"github.com/aretw0/gaitcgm/pkg/calc"
	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/dsl"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestServer(t *testing.T, run bool) *Server {
	t.Helper()
	w := synthetic.New(synthetic.WithFrames(6), synthetic.WithTrials("walk_01"))
	data, err := dataset.Build("S01", w, w)
	require.NoError(t, err)
	m, err := gaitcgm.New(data)
	require.NoError(t, err)
	if run {
		_, err = m.Run(context.Background())
		require.NoError(t, err)
	}
	batch, err := gaitcgm.NewBatch([]*gaitcgm.Model{m})
	require.NoError(t, err)
	return NewServer(batch)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestServer_ListModels(t *testing.T) {
	s := newTestServer(t, true)

	res, err := s.handleListModels(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var models []modelInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &models))
	require.Len(t, models, 1)
	assert.Equal(t, "S01", models[0].Name)
	assert.Equal(t, []string{"walk_01"}, models[0].Computed)
}

func TestServer_GetTrial(t *testing.T) {
	s := newTestServer(t, true)

	t.Run("Known trial", func(t *testing.T) {
		summary, err := s.handleGetTrial(context.Background(), callRequest(nil), trialArgs{Model: "S01", Trial: "walk_01"})
		require.NoError(t, err)
		assert.Equal(t, 6, summary.Frames)
		assert.Equal(t, "Pelvis", summary.AxisKeys[0])
		assert.Contains(t, summary.AngleKeys, "RKnee")
	})

	t.Run("Unknown model", func(t *testing.T) {
		_, err := s.handleGetTrial(context.Background(), callRequest(nil), trialArgs{Model: "nope", Trial: "walk_01"})
		assert.ErrorContains(t, err, "unknown model")
	})
}

func TestServer_GetSeries(t *testing.T) {
	s := newTestServer(t, true)
	ctx := context.Background()

	res, err := s.handleGetSeries(ctx, callRequest(map[string]any{
		"model": "S01", "trial": "walk_01", "kind": "angle", "name": "RKnee",
	}))
	require.NoError(t, err)
	var angles []jsonfloat.Vec3
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &angles))
	assert.Len(t, angles, 6)

	res, err = s.handleGetSeries(ctx, callRequest(map[string]any{
		"model": "S01", "trial": "walk_01", "kind": "axis", "name": "Pelvis",
	}))
	require.NoError(t, err)
	var frames [][4]jsonfloat.Vec3
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &frames))
	assert.Len(t, frames, 6)

	res, err = s.handleGetSeries(ctx, callRequest(map[string]any{
		"model": "S01", "trial": "walk_01", "kind": "marker", "name": "Pelvis",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_RunModelThenGraph(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()

	res, err := s.handleRunModel(ctx, callRequest(map[string]any{"model": "S01"}))
	require.NoError(t, err)
	assert.Equal(t, "computed 1 trials for S01", resultText(t, res))

	res, err = s.handleGetGraph(ctx, callRequest(map[string]any{"model": "S01"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "graph TD")

	res, err = s.handleRunModel(ctx, callRequest(map[string]any{"model": "ghost"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_GetSeriesNonFinite(t *testing.T) {
	w := synthetic.New(synthetic.WithFrames(3), synthetic.WithTrials("walk_01"))
	data, err := dataset.Build("S01", w, w)
	require.NoError(t, err)
	m, err := gaitcgm.New(data)
	require.NoError(t, err)
	// Reads the hip joint centres before they are computed, so every frame
	// normalises a zero origin.
	early := func(args domain.Args) ([]domain.Series, error) {
		hip := args.Axis(0)
		out := make(domain.AxisSeries, len(hip))
		for f := range out {
			o := hip[f].Origin()
			u := r3.Scale(1/r3.Norm(o), o)
			out[f] = domain.NewTransform(u, u, u, o)
		}
		return domain.Axes(out), nil
	}
	spec := dsl.Step("calc_axis_early").Axis("RHipJC").ReturnsAxes("Early").Do(early).Spec()
	require.NoError(t, m.Insert(spec, calc.StepPelvisAxis, 0))
	_, err = m.Run(context.Background())
	require.NoError(t, err)
	batch, err := gaitcgm.NewBatch([]*gaitcgm.Model{m})
	require.NoError(t, err)
	s := NewServer(batch)

	res, err := s.handleGetSeries(context.Background(), callRequest(map[string]any{
		"model": "S01", "trial": "walk_01", "kind": "axis", "name": "Early",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var frames [][4]jsonfloat.Vec3
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &frames))
	require.Len(t, frames, 3)
	assert.True(t, math.IsNaN(float64(frames[0][0][0])))
	assert.Equal(t, jsonfloat.Vec3{}, frames[0][3])
}
