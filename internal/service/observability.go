package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger zerolog.Logger
}

// NewLogUseCaseObserver logs one structured event per use case.
func NewLogUseCaseObserver(logger zerolog.Logger) UseCaseObserver {
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	ev := o.logger.Info()
	if event.Err != nil {
		ev = o.logger.Error().Err(event.Err)
	}
	ev.Str("use_case", event.Name).
		Int64("duration_ms", event.Duration.Milliseconds()).
		Bool("success", event.Success).
		Fields(event.Fields).
		Msg("service_use_case")
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
