package mailctl

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edvin/mailroute/internal/metrics"
	"github.com/edvin/mailroute/internal/routing"
)

// Invoker runs a remote admin command with named parameters. The session
// and transport behind it belong to the caller.
type Invoker interface {
	Invoke(ctx context.Context, command string, params *routing.Params) error
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, command string, params *routing.Params) error

func (f InvokerFunc) Invoke(ctx context.Context, command string, params *routing.Params) error {
	return f(ctx, command, params)
}

// Applier executes plans against an Invoker.
type Applier struct {
	invoker Invoker
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewApplier(invoker Invoker, logger zerolog.Logger, m *metrics.Metrics) *Applier {
	return &Applier{
		invoker: invoker,
		logger:  logger.With().Str("component", "applier").Logger(),
		metrics: m,
	}
}

// Apply runs the plan's steps in order and stops at the first failure. It
// returns the number of steps that completed.
func (a *Applier) Apply(ctx context.Context, plan *Plan) (int, error) {
	logger := a.logger.With().Str("plan_id", plan.ID).Logger()

	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("apply plan %s: %w", plan.ID, err)
		}

		stepLogger := logger.With().
			Str("kind", string(step.Kind)).
			Str("name", step.Name).
			Str("operation", step.Operation.String()).
			Str("command", step.Command).
			Logger()

		if err := a.invoker.Invoke(ctx, step.Command, step.Params); err != nil {
			a.metrics.Commands.WithLabelValues(string(step.Kind), step.Operation.String(), "error").Inc()
			stepLogger.Error().Err(err).Msg("command failed")
			return i, fmt.Errorf("%s %s: %w", step.Command, step.Name, err)
		}

		a.metrics.Commands.WithLabelValues(string(step.Kind), step.Operation.String(), "ok").Inc()
		stepLogger.Info().Msg("command applied")
	}

	logger.Info().Int("steps", len(plan.Steps)).Msg("plan applied")
	return len(plan.Steps), nil
}
