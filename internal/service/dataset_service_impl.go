package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/devsynth/internal/dataset"
	"github.com/alexanderramin/devsynth/internal/db"
	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/generation"
	"github.com/alexanderramin/devsynth/internal/metrics"
	"github.com/alexanderramin/devsynth/internal/repository"
	"github.com/alexanderramin/devsynth/internal/template"
)

type datasetService struct {
	uow      db.UnitOfWork
	runs     repository.RunRepo
	metrics  *metrics.Metrics
	now      func() time.Time
	observer UseCaseObserver
}

// NewDatasetService builds the generate/verify use cases. uow and runs may be
// nil when no manifest is configured; m may be nil to skip metrics.
func NewDatasetService(
	uow db.UnitOfWork,
	runs repository.RunRepo,
	m *metrics.Metrics,
	observers ...UseCaseObserver,
) DatasetService {
	return &datasetService{
		uow:      uow,
		runs:     runs,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *datasetService) Generate(ctx context.Context, req GenerateRequest) (result *GenerateResult, err error) {
	startedAt := s.now()
	fields := map[string]any{
		"profile":   req.Profile,
		"num_tasks": req.NumTasks,
		"num_qa":    req.NumQA,
		"out":       req.OutDir,
	}
	defer func() {
		duration := s.now().Sub(startedAt)
		s.recordMetrics(req.MetricsFile, result, duration, err, fields)
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate",
			StartedAt: startedAt,
			Duration:  duration,
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	profile, err := generation.ProfileByName(req.Profile)
	if err != nil {
		return nil, err
	}
	registry, err := template.Load(req.TemplatesFile)
	if err != nil {
		return nil, err
	}

	seed := generation.ResolveSeed(req.Seed)
	fields["seed"] = seed

	assembler := generation.NewAssembler(registry, profile, generation.Options{Seed: seed, Workers: req.Workers})
	batch, err := assembler.GenerateBatch(ctx, req.NumTasks, req.NumQA)
	if err != nil {
		return nil, err
	}

	files, err := dataset.WriteSplit(req.OutDir, generation.Split(batch.Examples))
	if err != nil {
		return nil, fmt.Errorf("writing dataset: %w", err)
	}

	run := &domain.DatasetRun{
		ID:              uuid.New().String(),
		Seed:            seed,
		Profile:         profile.Name,
		NumTasks:        req.NumTasks,
		NumQA:           req.NumQA,
		TrainCount:      files.Train.Lines,
		ValCount:        files.Val.Lines,
		TrainPath:       absPath(files.Train.Path),
		ValPath:         absPath(files.Val.Path),
		TrainSHA256:     files.Train.SHA256,
		ValSHA256:       files.Val.SHA256,
		RegistryVersion: registry.Version(),
		CannedAnswers:   batch.Stats.CannedAnswers,
		FallbackAnswers: batch.Stats.FallbackAnswers,
		TemplateDraws:   batch.Stats.Templates,
		CreatedAt:       s.now(),
	}
	fields["run_id"] = run.ID
	fields["train"] = run.TrainCount
	fields["val"] = run.ValCount

	result = &GenerateResult{Run: run, Files: files, Stats: batch.Stats}
	if s.uow != nil {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteRunRepo(tx).Create(ctx, run)
		})
		if err != nil {
			return nil, fmt.Errorf("recording run: %w", err)
		}
		result.Recorded = true
	}
	result.Duration = s.now().Sub(startedAt)
	return result, nil
}

func (s *datasetService) recordMetrics(path string, result *GenerateResult, d time.Duration, runErr error, fields map[string]any) {
	if s.metrics == nil {
		return
	}
	sample := metrics.Run{Duration: d, Finished: s.now(), Err: runErr}
	if result != nil {
		sample.Tasks = result.Stats.Tasks
		sample.QA = result.Stats.QA
		sample.CannedAnswers = result.Stats.CannedAnswers
		sample.FallbackAnswers = result.Stats.FallbackAnswers
		sample.TemplateDraws = result.Stats.Templates
		sample.Train = result.Files.Train.Lines
		sample.Val = result.Files.Val.Lines
	}
	s.metrics.ObserveRun(sample)
	if path == "" {
		return
	}
	if err := s.metrics.WriteTextfile(path); err != nil {
		fields["metrics_error"] = err.Error()
	}
}

func (s *datasetService) Verify(ctx context.Context, req VerifyRequest) (result *VerifyResult, err error) {
	startedAt := s.now()
	fields := map[string]any{"dir": req.Dir}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "verify",
			StartedAt: startedAt,
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	result = &VerifyResult{}
	result.Train, err = dataset.VerifyFile(filepath.Join(req.Dir, dataset.TrainFile))
	if err != nil {
		return nil, err
	}
	result.Val, err = dataset.VerifyFile(filepath.Join(req.Dir, dataset.ValFile))
	if err != nil {
		return nil, err
	}
	total := result.Train.Lines + result.Val.Lines
	result.SplitOK = result.Train.Lines == domain.SplitIndex(total)
	fields["total"] = total
	fields["split_ok"] = result.SplitOK

	if req.RunID != "" {
		if s.runs == nil {
			return nil, fmt.Errorf("verifying against run %s: no manifest configured", req.RunID)
		}
		result.Run, err = s.runs.GetByID(ctx, req.RunID)
		if err != nil {
			return nil, err
		}
		result.DigestMatch = result.Run.TrainSHA256 == result.Train.SHA256 &&
			result.Run.ValSHA256 == result.Val.SHA256
		fields["run_id"] = result.Run.ID
		fields["digest_match"] = result.DigestMatch
	}
	return result, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
