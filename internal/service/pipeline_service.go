package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"ulascansenturk/energy-loader/internal/db/energy"
	"ulascansenturk/energy-loader/internal/metrics"
	"ulascansenturk/energy-loader/internal/production"
	"ulascansenturk/energy-loader/internal/providers"
)

const (
	StageCarbon     = "carbon"
	StageProduction = "production"
	StageLoad       = "load"
)

type RunResult struct {
	CarbonFactors     int
	ProductionRows    int
	ProductionColumns []string
	Duration          time.Duration
}

// StageError names the pipeline stage an error came from.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type PipelineService interface {
	Run(ctx context.Context) (RunResult, error)
}

type pipelineService struct {
	carbonFactors providers.CarbonFactorService
	production    production.ProductionService
	repo          energy.Repository
	recorder      *metrics.Recorder
	logger        zerolog.Logger
}

func NewPipelineService(
	carbonFactors providers.CarbonFactorService,
	productionService production.ProductionService,
	repo energy.Repository,
	recorder *metrics.Recorder,
	logger zerolog.Logger,
) PipelineService {
	return &pipelineService{
		carbonFactors: carbonFactors,
		production:    productionService,
		repo:          repo,
		recorder:      recorder,
		logger:        logger,
	}
}

// Run extracts both datasets side by side and then replaces the stored
// tables with them. Any error aborts the run.
func (s *pipelineService) Run(ctx context.Context) (RunResult, error) {
	started := time.Now()

	var factors []energy.CarbonFactor
	var table *energy.Production

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stageStarted := time.Now()
		fetched, err := s.carbonFactors.FetchCarbonFactors(gctx)
		if err != nil {
			return &StageError{Stage: StageCarbon, Err: err}
		}
		s.recorder.ObserveStage(StageCarbon, stageStarted)
		s.logger.Debug().Int("factors", len(fetched)).Dur("took", time.Since(stageStarted)).Msg("carbon factors fetched")
		factors = fetched
		return nil
	})

	g.Go(func() error {
		stageStarted := time.Now()
		loaded, err := s.production.LoadProduction(gctx)
		if err != nil {
			return &StageError{Stage: StageProduction, Err: err}
		}
		s.recorder.ObserveStage(StageProduction, stageStarted)
		s.logger.Debug().
			Int("rows", len(loaded.Records)).
			Strs("columns", loaded.Columns).
			Dur("took", time.Since(stageStarted)).
			Msg("production data transformed")
		table = loaded
		return nil
	})

	if err := g.Wait(); err != nil {
		return RunResult{}, s.fail(err, started)
	}

	stageStarted := time.Now()
	if err := s.repo.ReplaceAll(ctx, factors, table); err != nil {
		return RunResult{}, s.fail(&StageError{Stage: StageLoad, Err: err}, started)
	}
	s.recorder.ObserveStage(StageLoad, stageStarted)

	result := RunResult{
		CarbonFactors:     len(factors),
		ProductionRows:    len(table.Records),
		ProductionColumns: table.Columns,
		Duration:          time.Since(started),
	}
	s.recorder.RunSucceeded(result.CarbonFactors, result.ProductionRows, result.Duration)

	s.logger.Info().
		Int("carbon_factors", result.CarbonFactors).
		Int("production_rows", result.ProductionRows).
		Dur("took", result.Duration).
		Msg("energy tables replaced")

	return result, nil
}

func (s *pipelineService) fail(err error, started time.Time) error {
	stage := "unknown"
	if stageErr, ok := err.(*StageError); ok {
		stage = stageErr.Stage
	}
	s.recorder.RunFailed(stage, time.Since(started))
	s.logger.Error().Err(err).Str("stage", stage).Msg("pipeline run failed")
	return err
}
