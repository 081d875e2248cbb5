package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/energy-loader/config"
	"ulascansenturk/energy-loader/internal/db/energy"
	"ulascansenturk/energy-loader/internal/metrics"
	"ulascansenturk/energy-loader/internal/production"
	"ulascansenturk/energy-loader/internal/providers"
	"ulascansenturk/energy-loader/internal/service"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(conf, os.Stdout)

	ctx, mainCtxStop := context.WithCancel(context.Background())
	defer mainCtxStop()

	handleSignals(ctx, mainCtxStop, func() {
		logger.Warn().Msg("signal received, aborting run")
	})

	if err := run(ctx, conf, logger); err != nil {
		logger.Fatal().Err(err).Msg("energy load failed")
	}
}

func run(ctx context.Context, conf *config.Config, logger zerolog.Logger) error {
	db, err := energy.Open(conf, energy.NewGormLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := energy.Close(db); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close database")
		}
	}()

	recorder := metrics.NewRecorder()

	pipeline := service.NewPipelineService(
		providers.NewCarbonFactorService(conf.CarbonFactorsURL, conf.HTTPTimeoutDuration()),
		production.NewProductionService(conf.ProductionCSVPath),
		energy.NewRepository(db, conf.InsertBatchSize),
		recorder,
		logger,
	)

	logger.Info().
		Str("carbon_factors_url", conf.CarbonFactorsURL).
		Str("production_csv", conf.ProductionCSVPath).
		Str("database_driver", conf.DBDriver).
		Msg("starting energy load")

	_, runErr := pipeline.Run(ctx)

	if conf.MetricsFile != "" {
		if err := recorder.WriteTextfile(conf.MetricsFile); err != nil {
			logger.Error().Err(err).Str("file", conf.MetricsFile).Msg("failed to write metrics")
		}
	}

	return runErr
}

// newLogger writes JSON lines, or colourless console output when ENV is a
// local development environment.
func newLogger(conf *config.Config, out io.Writer) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	switch conf.Env {
	case "local", "development":
		out = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func()) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case <-sig:
			callback()
			cancelCtx()
		case <-ctx.Done():
		}
		signal.Stop(sig)
	}()
}
