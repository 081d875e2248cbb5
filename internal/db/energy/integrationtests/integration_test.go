package integration_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgTestContainers "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"ulascansenturk/energy-loader/config"
	"ulascansenturk/energy-loader/internal/db/energy"
	"ulascansenturk/energy-loader/internal/metrics"
	"ulascansenturk/energy-loader/internal/production"
	"ulascansenturk/energy-loader/internal/providers"
	"ulascansenturk/energy-loader/internal/service"
)

const (
	dbName     = "test_energy_database"
	dbUser     = "test_user"
	dbPassword = "test_password"
)

const generationCSV = "Area;MTU;Biomass  - Actual Aggregated [MW];Fossil Gas  - Actual Aggregated [MW];" +
	"Fossil Hard coal  - Actual Aggregated [MW];Fossil Oil  - Actual Aggregated [MW];Solar  - Actual Aggregated [MW];" +
	"Waste  - Actual Aggregated [MW];Wind Offshore  - Actual Aggregated [MW];Wind Onshore  - Actual Aggregated [MW]\n" +
	"BZN|DK2;01.02.2023 00:00 - 01.02.2023 00:15;150;300;400;n/e;0;50;600;700\n" +
	"BZN|DK2;01.02.2023 00:15 - 01.02.2023 00:30;151;301;401;n/e;0;;601;701\n"

func init() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	container, err := pgTestContainers.Run(ctx,
		"postgres:13.3",
		pgTestContainers.WithDatabase(dbName),
		pgTestContainers.WithUsername(dbUser),
		pgTestContainers.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	conf := &config.Config{
		DBDriver:   "postgres",
		DBHost:     host,
		DBPort:     endpoint[strings.LastIndex(endpoint, ":")+1:],
		DBUser:     dbUser,
		DBPassword: dbPassword,
		DBName:     dbName,
	}
	log.Info().Str("host", host).Str("port", conf.DBPort).Msg("postgres container ready")

	return conf, func() {
		if err := container.Terminate(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to terminate postgres container")
		}
	}
}

func openDB(t *testing.T, conf *config.Config) *gorm.DB {
	db, err := energy.Open(conf, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, energy.Close(db))
	})
	return db
}

func TestEnergyTablesOnPostgres(t *testing.T) {
	conf, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	db := openDB(t, conf)
	repo := energy.NewRepository(db, 1)

	t.Run("ReplaceAllRoundTrip", func(t *testing.T) {
		gas := 120.5
		day := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
		table := &energy.Production{
			Columns: []string{"gas", "date", "time"},
			Records: []energy.ProductionRecord{
				{Gas: &gas, Date: day, Time: "00:00"},
				{Gas: nil, Date: day, Time: "00:15"},
			},
		}

		err := repo.ReplaceAll(ctx, []energy.CarbonFactor{{EnergyType: "wind", Value: 12}, {EnergyType: "coal", Value: 820}}, table)
		require.NoError(t, err)

		factors, err := repo.ListCarbonFactors(ctx)
		require.NoError(t, err)
		assert.Equal(t, []energy.CarbonFactor{{EnergyType: "coal", Value: 820}, {EnergyType: "wind", Value: 12}}, factors)

		records, err := repo.ListProduction(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 120.5, *records[0].Gas)
		assert.Nil(t, records[1].Gas)
		assert.Equal(t, "00:15", records[1].Time)
		assert.Equal(t, day.Format(time.DateOnly), records[0].Date.Format(time.DateOnly))
	})

	t.Run("DuplicateFactorKeepsPreviousTables", func(t *testing.T) {
		before, err := repo.ListCarbonFactors(ctx)
		require.NoError(t, err)

		err = repo.ReplaceAll(ctx, []energy.CarbonFactor{{EnergyType: "coal", Value: 1}, {EnergyType: "coal", Value: 2}}, &energy.Production{})
		require.ErrorIs(t, err, energy.ErrStorage)

		after, err := repo.ListCarbonFactors(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("PipelineLoadsBothTables", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"emissionFactors":{"defaults":{"oil":{"value":650},"gas":{"value":490},"solar":{"value":45}}}}`))
		}))
		defer server.Close()

		csvPath := filepath.Join(t.TempDir(), "Gen_Type_DK2.csv")
		require.NoError(t, os.WriteFile(csvPath, []byte(generationCSV), 0o644))

		pipeline := service.NewPipelineService(
			providers.NewCarbonFactorService(server.URL, 5*time.Second),
			production.NewProductionService(csvPath),
			repo,
			metrics.NewRecorder(),
			log.Logger,
		)

		result, err := pipeline.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, result.CarbonFactors)
		assert.Equal(t, []string{"gas", "coal", "solar", "biomass", "wind", "date", "time"}, result.ProductionColumns)

		records, err := repo.ListProduction(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 200.0, *records[0].Biomass)
		assert.Nil(t, records[1].Biomass)
		assert.Nil(t, records[0].Oil)
		assert.Equal(t, 1302.0, *records[1].Wind)
	})
}
