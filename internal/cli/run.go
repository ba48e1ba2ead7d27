package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/internal/logging"
	"github.com/aretw0/gaitcgm/internal/presentation/tui"
	"github.com/aretw0/gaitcgm/internal/validator"
	"github.com/aretw0/gaitcgm/pkg/adapters/redis"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/persistence"
	"github.com/aretw0/gaitcgm/pkg/persistence/middleware"
	"github.com/aretw0/gaitcgm/pkg/ports"
)

// Options contains the configuration shared by the CLI commands.
type Options struct {
	DataPaths   []string
	Subjects    int
	Frames      int
	DropMarkers []string
	ConfigPath  string
	Variant     string
	Parallel    int
	RedisURL    string

	// Redact lists patterns of measurement names dropped before publishing.
	Redact []string

	// EncryptionKey, hex encoded, seals published results with AES-256-GCM.
	EncryptionKey string

	Debug     bool
	JSON      bool
	Quiet     bool
	LogFormat logging.Format

	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// Execute handles the 'run' command: it builds the batch, runs every model
// and prints one summary row per trial.
func Execute(ctx context.Context, opts Options) error {
	logger := createLogger(opts)
	redact, err := middleware.NewRedactionMiddleware(opts.Redact)
	if err != nil {
		return err
	}
	batch, err := BuildBatch(opts, logger)
	if err != nil {
		return err
	}
	if !opts.Quiet && !opts.JSON {
		tui.PrintBanner(opts.stdout())
	}

	runErr := batch.RunAll(ctx)
	if errors.Is(runErr, context.Canceled) {
		logger.Warn("run cancelled", "err", runErr)
		return runErr
	}
	for _, m := range batch.Models() {
		for _, res := range m.Results() {
			for _, issue := range validator.Result(res, 1e-6) {
				logger.Warn("suspicious axis output", "model", m.Name, "trial", res.Trial, "output", issue.Step, "reason", issue.Reason)
			}
		}
	}

	if opts.RedisURL != "" {
		if err := publishRedis(ctx, opts, batch, redact); err != nil {
			return err
		}
	}

	rows := summaryRows(batch)
	if opts.JSON {
		if err := writeJSON(opts.stdout(), rows); err != nil {
			return err
		}
	} else if err := tui.RenderSummary(opts.stdout(), rows); err != nil {
		return err
	}
	return runErr
}

func publishRedis(ctx context.Context, opts Options, batch *gaitcgm.Batch, redact middleware.Middleware) error {
	var storeOpts []redis.Option
	if opts.EncryptionKey != "" {
		key, err := middleware.ParseKey(opts.EncryptionKey)
		if err != nil {
			return err
		}
		codec, err := middleware.NewEncryptionCodec(persistence.JSONCodec{}, middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return err
		}
		storeOpts = append(storeOpts, redis.WithCodec(codec))
	}

	store, err := redis.New(opts.RedisURL, storeOpts...)
	if err != nil {
		return err
	}
	defer store.Close()

	var target ports.ResultStore = store
	if len(opts.Redact) > 0 {
		target = middleware.Chain(store, redact)
	}
	return Publish(ctx, batch, target, redis.NewLocker(store.Client(), "gaitcgm:"))
}

var errNoResult = errors.New("no result")

// summaryRows lists every trial of every model. Trials without a result are
// reported as failed; the cause is the error returned by Execute.
func summaryRows(batch *gaitcgm.Batch) []tui.TrialRow {
	var rows []tui.TrialRow
	for _, m := range batch.Models() {
		for _, name := range m.Dataset().TrialNames() {
			if res, ok := m.Result(name); ok {
				rows = append(rows, tui.Rows([]*domain.Result{res})...)
				continue
			}
			rows = append(rows, tui.TrialRow{Model: m.Name, Trial: name, Err: errNoResult})
		}
	}
	return rows
}

type jsonRow struct {
	Model  string `json:"model"`
	Trial  string `json:"trial"`
	Frames int    `json:"frames"`
	Axes   int    `json:"axes"`
	Angles int    `json:"angles"`
	Error  string `json:"error,omitempty"`
}

// writeJSON prints rows as NDJSON.
func writeJSON(w io.Writer, rows []tui.TrialRow) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		row := jsonRow{Model: r.Model, Trial: r.Trial, Frames: r.Frames, Axes: r.Axes, Angles: r.Angles}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
