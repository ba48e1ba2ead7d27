package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/pkg/adapters/synthetic"
	"github.com/aretw0/gaitcgm/pkg/calc"
	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/dsl"
	"github.com/aretw0/gaitcgm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	w := synthetic.New(synthetic.WithFrames(8))
	data, err := dataset.Build("S01", w, w)
	require.NoError(t, err)
	m, err := gaitcgm.New(data, gaitcgm.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)
	_, err = m.Run(context.Background())
	require.NoError(t, err)

	idle, err := gaitcgm.New(data, gaitcgm.WithName("idle"))
	require.NoError(t, err)

	batch, err := gaitcgm.NewBatch([]*gaitcgm.Model{m, idle})
	require.NoError(t, err)
	return NewHandler(batch, WithGatherer(reg))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListModels(t *testing.T) {
	w := get(t, newTestHandler(t), "/models")
	require.Equal(t, http.StatusOK, w.Code)

	var models []ModelSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&models))
	require.Len(t, models, 2)
	assert.Equal(t, "S01", models[0].Name)
	assert.Equal(t, "default", models[0].Variant)
	assert.Equal(t, []string{"walk_01", "walk_02"}, models[0].Computed)
	assert.Empty(t, models[1].Computed)
}

func TestGetTrial(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/models/S01/trials/walk_02")
	require.Equal(t, http.StatusOK, w.Code)
	var trial TrialSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&trial))
	assert.Equal(t, 18, trial.Frames)
	assert.Equal(t, "Pelvis", trial.AxisKeys[0])
	assert.Equal(t, 72.0, trial.Measurements["Bodymass"])

	w = get(t, h, "/models/S01/trials/walk_01/axes/Pelvis")
	require.Equal(t, http.StatusOK, w.Code)
	var frames []Frame
	require.NoError(t, json.NewDecoder(w.Body).Decode(&frames))
	require.Len(t, frames, 8)
	x := frames[0].X
	assert.InDelta(t, 1, float64(x[0]*x[0]+x[1]*x[1]+x[2]*x[2]), 1e-9)

	w = get(t, h, "/models/S01/trials/walk_01/angles/RKnee")
	require.Equal(t, http.StatusOK, w.Code)
	var angles []Angle
	require.NoError(t, json.NewDecoder(w.Body).Decode(&angles))
	assert.Len(t, angles, 8)
}

func TestNotFound(t *testing.T) {
	h := newTestHandler(t)
	tests := map[string]string{
		"/models/nobody":                         "unknown model",
		"/models/idle/trials/walk_01":            "no result",
		"/models/S01/trials/walk_01/axes/Tail":   "unknown axis",
		"/models/S01/trials/walk_01/angles/Tail": "unknown angle",
	}
	for path, msg := range tests {
		t.Run(path, func(t *testing.T) {
			w := get(t, h, path)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), msg)
		})
	}
}

func TestSchemaAndGraph(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/models/S01/schema")
	require.Equal(t, http.StatusOK, w.Code)
	var s struct {
		Axis  []string `json:"axis"`
		Angle []string `json:"angle"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Len(t, s.Axis, 26)
	assert.Len(t, s.Angle, 19)

	w = get(t, h, "/models/S01/graph")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
}

func TestHealthInfoMetrics(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(t, h, "/info")
	assert.Contains(t, w.Body.String(), strings.TrimSpace(gaitcgm.Version))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gaitcgm_trial_runs_total{model="S01",status="ok"} 2`)
}

// earlyAxis runs before the hip joint centres exist, so it normalises a
// zero-filled origin.
func earlyAxis(args domain.Args) ([]domain.Series, error) {
	hip := args.Axis(0)
	out := make(domain.AxisSeries, len(hip))
	for f := range out {
		o := hip[f].Origin()
		u := r3.Scale(1/r3.Norm(o), o)
		out[f] = domain.NewTransform(u, u, u, o)
	}
	return domain.Axes(out), nil
}

func TestGetAxis_NonFiniteValues(t *testing.T) {
	w := synthetic.New(synthetic.WithFrames(4), synthetic.WithTrials("walk_01"))
	data, err := dataset.Build("S01", w, w)
	require.NoError(t, err)
	m, err := gaitcgm.New(data)
	require.NoError(t, err)
	spec := dsl.Step("calc_axis_early").Axis("RHipJC").ReturnsAxes("Early").Do(earlyAxis).Spec()
	require.NoError(t, m.Insert(spec, calc.StepPelvisAxis, 0))
	_, err = m.Run(context.Background())
	require.NoError(t, err)
	batch, err := gaitcgm.NewBatch([]*gaitcgm.Model{m})
	require.NoError(t, err)

	rec := get(t, NewHandler(batch), "/models/S01/trials/walk_01/axes/Early")
	require.Equal(t, http.StatusOK, rec.Code)

	var frames []Frame
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&frames))
	require.Len(t, frames, 4)
	assert.True(t, math.IsNaN(float64(frames[0].X[0])))
	assert.Equal(t, 0.0, float64(frames[0].Origin[0]))
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	s := &Server{Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	rec := httptest.NewRecorder()
	s.writeJSON(rec, http.StatusOK, map[string]float64{"bad": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to encode response"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "response encode failed")
}
