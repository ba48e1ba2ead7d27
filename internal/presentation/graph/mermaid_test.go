package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/gaitcgm/internal/presentation/graph"
	"github.com/aretw0/gaitcgm/pkg/calc"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/dsl"
	"github.com/aretw0/gaitcgm/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(domain.Args) ([]domain.Series, error) { return nil, nil }

func defaultPlan(t *testing.T) *registry.Plan {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.RegisterDefaults(calc.Defaults()))
	return reg.Snapshot()
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*registry.Registry) error
		contains []string
	}{
		{
			name: "Step Shapes",
			contains: []string{
				"calc_axis_pelvis[\"calc_axis_pelvis<br/>Pelvis\"]",
				"calc_joint_center_hip[[\"calc_joint_center_hip<br/>RHipJC, LHipJC\"]]",
				"calc_angle_pelvis[/\"calc_angle_pelvis<br/>Pelvis\"/]",
			},
		},
		{
			name: "Dependency Edges",
			contains: []string{
				"calc_axis_pelvis -- \"Pelvis\" --> calc_joint_center_hip",
				"calc_joint_center_hip -- \"RHipJC\" --> calc_axis_hip",
				"calc_axis_hip -- \"Hip\" --> calc_angle_hip",
			},
		},
		{
			name: "Missing Producer",
			mutate: func(r *registry.Registry) error {
				return r.Append(dsl.Step("calc_axis-extra").Axis("Ghost").ReturnsAxes("Extra").Do(noop).Spec())
			},
			contains: []string{
				"missing_axis_Ghost(\"axis Ghost?\")",
				"missing_axis_Ghost -.-> calc_axis_extra",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.New()
			require.NoError(t, reg.RegisterDefaults(calc.Defaults()))
			if tt.mutate != nil {
				require.NoError(t, tt.mutate(reg))
			}
			out := graph.GenerateMermaid(reg.Snapshot(), nil)
			assert.True(t, strings.HasPrefix(out, "graph TD\n"))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestGenerateMermaid_Subgraphs(t *testing.T) {
	out := graph.GenerateMermaid(defaultPlan(t), nil)
	axis := strings.Index(out, "subgraph axis")
	angle := strings.Index(out, "subgraph angle")
	require.GreaterOrEqual(t, axis, 0)
	assert.Greater(t, angle, axis)
	assert.Less(t, strings.Index(out, "calc_axis_pelvis["), strings.Index(out, "calc_axis_hand["))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	overlay := &graph.GraphOverlay{
		CompletedSteps: []string{calc.StepPelvisAxis, calc.StepPelvisAxis, calc.StepHipJointCenter},
		FailedStep:     calc.StepHipAxis,
	}
	out := graph.GenerateMermaid(defaultPlan(t), overlay)

	assert.Equal(t, 1, strings.Count(out, "class calc_axis_pelvis completed;"))
	assert.Contains(t, out, "class calc_joint_center_hip completed;")
	assert.Contains(t, out, "class calc_axis_hip failed;")
	assert.Contains(t, out, "classDef failed")
}
