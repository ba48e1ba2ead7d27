package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/internal/jsonfloat"
	"github.com/aretw0/gaitcgm/internal/presentation/graph"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const modelsURI = "gaitcgm://models"

// TrialSummary is the structured output of get_trial.
type TrialSummary struct {
	Model        string             `json:"model" jsonschema_description:"Model (subject) name"`
	Trial        string             `json:"trial" jsonschema_description:"Trial name"`
	Frames       int                `json:"frames" jsonschema_description:"Number of frames"`
	AxisKeys     []string           `json:"axis_keys" jsonschema_description:"Axis outputs in schema order"`
	AngleKeys    []string           `json:"angle_keys" jsonschema_description:"Angle outputs in schema order"`
	Measurements map[string]float64 `json:"measurements,omitempty" jsonschema_description:"Subject measurements used for the run"`
}

type modelInfo struct {
	Name     string   `json:"name"`
	Variant  string   `json:"variant"`
	Version  uint64   `json:"version"`
	Trials   []string `json:"trials"`
	Computed []string `json:"computed"`
}

type trialArgs struct {
	Model string `json:"model"`
	Trial string `json:"trial"`
}

// Server exposes a batch of models as MCP tools.
type Server struct {
	batch     *gaitcgm.Batch
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(batch *gaitcgm.Batch) *Server {
	s := &Server{
		batch:     batch,
		mcpServer: server.NewMCPServer("gaitcgm-mcp", strings.TrimSpace(gaitcgm.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List the models (subjects) of the batch with their trials and variant."),
	), s.handleListModels)

	s.mcpServer.AddTool(mcp.NewTool("get_trial",
		mcp.WithDescription("Describe the last computed result of a trial."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Model name")),
		mcp.WithString("trial", mcp.Required(), mcp.Description("Trial name")),
		mcp.WithOutputSchema[TrialSummary](),
	), mcp.NewStructuredToolHandler(s.handleGetTrial))

	s.mcpServer.AddTool(mcp.NewTool("get_series",
		mcp.WithDescription("Return one computed axis or angle series as JSON."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Model name")),
		mcp.WithString("trial", mcp.Required(), mcp.Description("Trial name")),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Either 'axis' or 'angle'")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Output name, e.g. Pelvis or RKnee")),
	), s.handleGetSeries)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the pipeline of a model as a Mermaid diagram."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Model name")),
	), s.handleGetGraph)

	s.mcpServer.AddTool(mcp.NewTool("run_model",
		mcp.WithDescription("Run the pipeline of a model over all of its trials."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Model name")),
	), s.handleRunModel)
}

func (s *Server) models() []modelInfo {
	out := make([]modelInfo, 0, s.batch.Len())
	for _, m := range s.batch.Models() {
		computed := []string{}
		for _, r := range m.Results() {
			computed = append(computed, r.Trial)
		}
		out = append(out, modelInfo{
			Name:     m.Name,
			Variant:  m.Profile().Name,
			Version:  m.Plan().Version,
			Trials:   m.Dataset().TrialNames(),
			Computed: computed,
		})
	}
	return out
}

func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(s.models())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGetTrial(ctx context.Context, request mcp.CallToolRequest, args trialArgs) (TrialSummary, error) {
	m, ok := s.batch.Lookup(args.Model)
	if !ok {
		return TrialSummary{}, fmt.Errorf("unknown model %q", args.Model)
	}
	res, ok := m.Result(args.Trial)
	if !ok {
		return TrialSummary{}, fmt.Errorf("no result for trial %q", args.Trial)
	}
	return TrialSummary{
		Model:        res.Model,
		Trial:        res.Trial,
		Frames:       res.Frames,
		AxisKeys:     res.AxisKeys,
		AngleKeys:    res.AngleKeys,
		Measurements: res.Measurements,
	}, nil
}

func (s *Server) handleGetSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := request.GetString("model", "")
	trial := request.GetString("trial", "")
	name := request.GetString("name", "")

	m, ok := s.batch.Lookup(model)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown model %q", model)), nil
	}
	res, ok := m.Result(trial)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no result for trial %q", trial)), nil
	}

	var series any
	switch kind := request.GetString("kind", ""); kind {
	case "axis":
		axis, found := res.Axes[name]
		if !found {
			return mcp.NewToolResultError(fmt.Sprintf("unknown axis %q", name)), nil
		}
		frames := make([][4]jsonfloat.Vec3, len(axis))
		for f, t := range axis {
			for i := 0; i < 3; i++ {
				frames[f][i] = jsonfloat.FromVec(t.Basis(i))
			}
			frames[f][3] = jsonfloat.FromVec(t.Origin())
		}
		series = frames
	case "angle":
		angle, found := res.Angles[name]
		if !found {
			return mcp.NewToolResultError(fmt.Sprintf("unknown angle %q", name)), nil
		}
		frames := make([]jsonfloat.Vec3, len(angle))
		for f, v := range angle {
			frames[f] = jsonfloat.FromVec(v)
		}
		series = frames
	default:
		return mcp.NewToolResultError(fmt.Sprintf("kind must be axis or angle, got %q", kind)), nil
	}

	data, err := json.Marshal(series)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := request.GetString("model", "")
	m, ok := s.batch.Lookup(model)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown model %q", model)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(m.Plan(), nil)), nil
}

func (s *Server) handleRunModel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := request.GetString("model", "")
	m, ok := s.batch.Lookup(model)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown model %q", model)), nil
	}
	results, err := m.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("run failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("computed %d trials for %s", len(results), m.Name)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(modelsURI, "Models of the batch",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.models())
		if err != nil {
			return nil, fmt.Errorf("failed to encode models: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      modelsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
