package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/gaitcgm/pkg/domain"
)

// LogHooks logs trial runs at Info and step invocations at Debug. Failures
// are logged at Error.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "trial_start", "model", e.Model, "trial", e.Trial, "frames", e.Frames)
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "trial_failed", "model", e.Model, "trial", e.Trial, "err", e.Err)
				return
			}
			logger.InfoContext(ctx, "trial_finish", "model", e.Model, "trial", e.Trial, "duration", e.Duration)
		},
		OnStepFinish: func(ctx context.Context, e *domain.StepEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "step_failed", "model", e.Model, "trial", e.Trial, "step", e.Step, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "step_finish", "model", e.Model, "trial", e.Trial, "step", e.Step, "duration", e.Duration)
		},
	}
}
