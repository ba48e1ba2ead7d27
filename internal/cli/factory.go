package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/internal/logging"
	"github.com/aretw0/gaitcgm/pkg/adapters/file"
	"github.com/aretw0/gaitcgm/pkg/adapters/synthetic"
	"github.com/aretw0/gaitcgm/pkg/config"
	"github.com/aretw0/gaitcgm/pkg/dataset"
	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/observability"
)

// LoadDatasets reads one dataset per fixture file, or generates synthetic
// subjects when no file is given.
func LoadDatasets(opts Options) ([]*dataset.Dataset, error) {
	if len(opts.DataPaths) == 0 {
		return syntheticDatasets(opts)
	}
	out := make([]*dataset.Dataset, 0, len(opts.DataPaths))
	for _, path := range opts.DataPaths {
		f, err := file.Load(path)
		if err != nil {
			return nil, err
		}
		data, err := dataset.Build(f.Subject(), f, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, data)
	}
	return out, nil
}

func syntheticDatasets(opts Options) ([]*dataset.Dataset, error) {
	n := opts.Subjects
	if n < 1 {
		n = 1
	}
	frames := opts.Frames
	if frames < 1 {
		frames = 120
	}
	out := make([]*dataset.Dataset, 0, n)
	for i := 0; i < n; i++ {
		w := synthetic.New(
			synthetic.WithFrames(frames+5*i),
			synthetic.WithoutMarkers(opts.DropMarkers...),
		)
		data, err := dataset.Build(fmt.Sprintf("S%02d", i+1), w, w)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

// LoadConfig reads the model configuration, falling back to an empty one.
// A non-empty Variant option wins over the file.
func LoadConfig(opts Options) (*config.ModelConfig, error) {
	cfg := &config.ModelConfig{}
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, err
		}
	}
	if opts.Variant != "" {
		cfg.Variant = opts.Variant
	}
	return cfg, nil
}

// BuildBatch creates one configured model per dataset.
func BuildBatch(opts Options, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*gaitcgm.Batch, error) {
	datasets, err := LoadDatasets(opts)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	base := []gaitcgm.Option{gaitcgm.WithLogger(logger)}
	if opts.Debug {
		base = append(base, gaitcgm.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	for _, h := range hooks {
		base = append(base, gaitcgm.WithLifecycleHooks(h))
	}

	models := make([]*gaitcgm.Model, 0, len(datasets))
	for _, data := range datasets {
		modelOpts := base
		if len(datasets) > 1 {
			// a configured name would collide across subjects
			modelOpts = append(modelOpts[:len(modelOpts):len(modelOpts)], gaitcgm.WithName(data.Subject()))
		}
		m, err := gaitcgm.NewFromConfig(data, cfg, modelOpts...)
		if err != nil {
			return nil, fmt.Errorf("subject %s: %w", data.Subject(), err)
		}
		models = append(models, m)
	}
	return gaitcgm.NewBatch(models, gaitcgm.WithParallelism(opts.Parallel))
}

// createLogger configures the application logger.
// In debug mode, it writes debug records to Stderr.
func createLogger(opts Options) *slog.Logger {
	if opts.Debug {
		return logging.New(opts.stderr(), slog.LevelDebug, opts.LogFormat)
	}
	if opts.Quiet {
		return logging.NewNop()
	}
	return logging.New(opts.stderr(), slog.LevelWarn, opts.LogFormat)
}
