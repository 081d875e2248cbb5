package energy_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"ulascansenturk/energy-loader/config"
	"ulascansenturk/energy-loader/internal/db/energy"
)

type SQLiteRepositorySuite struct {
	suite.Suite
	dbPath string
	db     *gorm.DB
	repo   energy.Repository
	ctx    context.Context
}

func (s *SQLiteRepositorySuite) SetupTest() {
	s.dbPath = filepath.Join(s.T().TempDir(), "energy.db")

	var err error
	s.db, err = energy.Open(&config.Config{DBDriver: "sqlite", DBPath: s.dbPath}, nil)
	s.Require().NoError(err)

	s.repo = energy.NewRepository(s.db, 2)
	s.ctx = context.Background()
}

func (s *SQLiteRepositorySuite) TearDownTest() {
	s.Require().NoError(energy.Close(s.db))
}

func sampleProduction() *energy.Production {
	day := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	return &energy.Production{
		Columns: []string{"gas", "coal", "solar", "biomass", "wind", "date", "time"},
		Records: []energy.ProductionRecord{
			{Gas: ptr(120), Coal: ptr(300), Solar: ptr(0), Biomass: ptr(80), Wind: ptr(1500), Date: day, Time: "00:00"},
			{Gas: ptr(118), Coal: ptr(301), Solar: ptr(0), Biomass: nil, Wind: ptr(1490), Date: day, Time: "00:15"},
			{Gas: ptr(117), Coal: ptr(299), Solar: ptr(1), Biomass: ptr(81), Wind: ptr(1503.5), Date: day, Time: "00:30"},
		},
	}
}

func (s *SQLiteRepositorySuite) TestCreatesDatabaseFile() {
	err := s.repo.ReplaceAll(s.ctx, []energy.CarbonFactor{{EnergyType: "coal", Value: 820}}, sampleProduction())
	s.Require().NoError(err)

	_, statErr := os.Stat(s.dbPath)
	s.NoError(statErr)
}

func (s *SQLiteRepositorySuite) TestCarbonRoundTrip() {
	factors := []energy.CarbonFactor{
		{EnergyType: "wind", Value: 12},
		{EnergyType: "coal", Value: 820},
		{EnergyType: "biomass", Value: 230},
		{EnergyType: "unknown", Value: 700.5},
	}

	err := s.repo.ReplaceAll(s.ctx, factors, sampleProduction())
	s.Require().NoError(err)

	stored, err := s.repo.ListCarbonFactors(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(factors, stored)
}

func (s *SQLiteRepositorySuite) TestProductionRoundTrip() {
	production := sampleProduction()

	err := s.repo.ReplaceAll(s.ctx, nil, production)
	s.Require().NoError(err)

	stored, err := s.repo.ListProduction(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(stored, 3)

	for i, want := range production.Records {
		got := stored[i]
		s.Equal(want.Time, got.Time)
		s.True(want.Date.Equal(got.Date), "date %v != %v", want.Date, got.Date)
		s.Equal(want.Gas, got.Gas)
		s.Equal(want.Coal, got.Coal)
		s.Nil(got.Oil)
		s.Equal(want.Biomass, got.Biomass)
		s.Equal(want.Wind, got.Wind)
	}
}

func (s *SQLiteRepositorySuite) TestDuplicateEnergyTypeFailsLoad() {
	factors := []energy.CarbonFactor{
		{EnergyType: "coal", Value: 820},
		{EnergyType: "coal", Value: 900},
	}

	err := s.repo.ReplaceAll(s.ctx, factors, sampleProduction())

	s.Require().Error(err)
	s.ErrorIs(err, energy.ErrStorage)
	s.Contains(err.Error(), "insert into carbon")
}

func (s *SQLiteRepositorySuite) TestReplaceAllIsIdempotent() {
	factors := []energy.CarbonFactor{
		{EnergyType: "coal", Value: 820},
		{EnergyType: "wind", Value: 12},
	}

	s.Require().NoError(s.repo.ReplaceAll(s.ctx, factors, sampleProduction()))
	firstCarbon, err := s.repo.ListCarbonFactors(s.ctx)
	s.Require().NoError(err)
	firstProduction, err := s.repo.ListProduction(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.ReplaceAll(s.ctx, factors, sampleProduction()))
	secondCarbon, err := s.repo.ListCarbonFactors(s.ctx)
	s.Require().NoError(err)
	secondProduction, err := s.repo.ListProduction(s.ctx)
	s.Require().NoError(err)

	s.Equal(firstCarbon, secondCarbon)
	s.Equal(len(firstProduction), len(secondProduction))
	for i := range firstProduction {
		s.Equal(firstProduction[i].Time, secondProduction[i].Time)
		s.Equal(firstProduction[i].Wind, secondProduction[i].Wind)
	}
}

func (s *SQLiteRepositorySuite) TestFailedProductionLoadKeepsPreviousCarbonTable() {
	previous := []energy.CarbonFactor{{EnergyType: "coal", Value: 820}}
	s.Require().NoError(s.repo.ReplaceAll(s.ctx, previous, sampleProduction()))

	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_production", func(tx *gorm.DB) {
		if tx.Statement.Table == energy.ProductionTable {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	s.Require().NoError(err)

	replacement := []energy.CarbonFactor{{EnergyType: "gas", Value: 490}}
	err = s.repo.ReplaceAll(s.ctx, replacement, sampleProduction())
	s.Require().ErrorIs(err, energy.ErrStorage)

	stored, err := s.repo.ListCarbonFactors(s.ctx)
	s.Require().NoError(err)
	s.Equal(previous, stored)

	production, err := s.repo.ListProduction(s.ctx)
	s.Require().NoError(err)
	s.Len(production, 3)
}

func (s *SQLiteRepositorySuite) TestStoresDateAsTimestampText() {
	s.Require().NoError(s.repo.ReplaceAll(s.ctx, nil, sampleProduction()))

	var stored string
	err := s.db.Raw(`SELECT CAST("date" AS TEXT) FROM "production" LIMIT 1`).Scan(&stored).Error
	s.Require().NoError(err)
	s.Equal("2023-02-01 00:00:00+00:00", stored)
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositorySuite))
}
