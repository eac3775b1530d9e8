package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/repository"
)

type runService struct {
	runs     repository.RunRepo
	observer UseCaseObserver
}

func NewRunService(runs repository.RunRepo, observers ...UseCaseObserver) RunService {
	return &runService{runs: runs, observer: useCaseObserverOrNoop(observers)}
}

func (s *runService) List(ctx context.Context, limit int) ([]*domain.DatasetRun, error) {
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (s *runService) Get(ctx context.Context, id string) (*domain.DatasetRun, error) {
	return s.runs.GetByID(ctx, id)
}

func (s *runService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-run",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"run_id": id},
		})
	}()

	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.runs.Delete(ctx, run.ID)
}
