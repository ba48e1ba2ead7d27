package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/gaitcgm/internal/presentation/graph"
	"github.com/aretw0/gaitcgm/internal/validator"
	httpadapter "github.com/aretw0/gaitcgm/pkg/adapters/http"
	mcpadapter "github.com/aretw0/gaitcgm/pkg/adapters/mcp"
	"github.com/aretw0/gaitcgm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Graph prints the Mermaid diagram of the first configured model.
func Graph(opts Options) error {
	batch, err := BuildBatch(opts, createLogger(opts))
	if err != nil {
		return err
	}
	if batch.Len() == 0 {
		return errors.New("no model to draw")
	}
	_, err = io.WriteString(opts.stdout(), graph.GenerateMermaid(batch.Model(0).Plan(), nil))
	return err
}

// Validate reports plan and dataset issues of every model. It returns an
// error when any model has an error-severity issue.
func Validate(opts Options) error {
	batch, err := BuildBatch(opts, createLogger(opts))
	if err != nil {
		return err
	}
	out := opts.stdout()
	failed := 0
	for _, m := range batch.Models() {
		plan := m.Plan()
		issues := append(validator.Plan(plan), validator.Dataset(plan, m.Dataset())...)
		for _, i := range issues {
			if i.Severity == validator.SeverityError {
				failed++
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", m.Name, i.Severity, i.Step, i.Param, i.Reason)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d validation errors", failed)
	}
	fmt.Fprintln(out, "Pipeline is valid!")
	return nil
}

// Serve runs the batch once and serves its results until ctx is done.
func Serve(ctx context.Context, opts Options, addr string) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	logger := createLogger(opts)
	batch, err := BuildBatch(opts, logger, metrics.Hooks())
	if err != nil {
		return err
	}
	if err := batch.RunAll(ctx); err != nil {
		// keep serving whatever finished
		logger.Error("batch run failed", "err", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpadapter.NewHandler(batch, httpadapter.WithGatherer(reg), httpadapter.WithLogger(logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(opts.stdout(), "Serving %d models on %s\n", batch.Len(), addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		fmt.Fprintln(opts.stdout(), "Server stopped gracefully")
		return nil
	}
}

// MCP runs every model once and serves the batch as an MCP server over
// transport ("stdio" or "sse"). Stdout carries JSON-RPC in stdio mode, so
// all logging goes to stderr.
func MCP(ctx context.Context, opts Options, transport string, port int) error {
	logger := createLogger(opts)
	batch, err := BuildBatch(opts, logger)
	if err != nil {
		return err
	}
	if err := batch.RunAll(ctx); err != nil {
		logger.Error("batch run failed", "err", err)
	}

	srv := mcpadapter.NewServer(batch)
	switch transport {
	case "stdio":
		return srv.ServeStdio()
	case "sse":
		return srv.ServeSSE(ctx, port)
	default:
		return fmt.Errorf("unknown transport %q (use stdio or sse)", transport)
	}
}
