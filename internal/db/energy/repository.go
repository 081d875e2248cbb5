package energy

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrStorage wraps every failure of the database layer.
var ErrStorage = errors.New("storage failure")

const defaultBatchSize = 500

type Repository interface {
	ReplaceAll(ctx context.Context, factors []CarbonFactor, production *Production) error
	ListCarbonFactors(ctx context.Context) ([]CarbonFactor, error)
	ListProduction(ctx context.Context) ([]ProductionRecord, error)
}

type EnergySQLRepository struct {
	db        *gorm.DB
	batchSize int
}

func NewRepository(db *gorm.DB, batchSize int) Repository {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &EnergySQLRepository{db: db, batchSize: batchSize}
}

// ReplaceAll drops and recreates both tables and loads them in a single
// transaction. On error nothing is committed.
func (r *EnergySQLRepository) ReplaceAll(ctx context.Context, factors []CarbonFactor, production *Production) error {
	ddl, err := schemaFor(r.db.Dialector.Name())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	var records []ProductionRecord
	if production != nil {
		records = production.Records
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// already inside a transaction, batches must not open savepoints
		tx = tx.Session(&gorm.Session{SkipDefaultTransaction: true})

		if err := recreateTable(tx, CarbonTable, ddl.carbon); err != nil {
			return err
		}
		if len(factors) > 0 {
			if err := tx.CreateInBatches(&factors, r.batchSize).Error; err != nil {
				return fmt.Errorf("insert into %s: %w", CarbonTable, err)
			}
		}

		if err := recreateTable(tx, ProductionTable, ddl.production); err != nil {
			return err
		}
		if len(records) > 0 {
			if err := tx.CreateInBatches(&records, r.batchSize).Error; err != nil {
				return fmt.Errorf("insert into %s: %w", ProductionTable, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func recreateTable(tx *gorm.DB, table, create string) error {
	if err := tx.Exec(dropTableStatement(table)).Error; err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if err := tx.Exec(create).Error; err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

func (r *EnergySQLRepository) ListCarbonFactors(ctx context.Context) ([]CarbonFactor, error) {
	var factors []CarbonFactor
	if err := r.db.WithContext(ctx).Order("energy_type").Find(&factors).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return factors, nil
}

func (r *EnergySQLRepository) ListProduction(ctx context.Context) ([]ProductionRecord, error) {
	var records []ProductionRecord
	// time holds "HH:MM" text under a DATETIME declaration on SQLite; the cast
	// stops the driver from parsing it as a timestamp.
	err := r.db.WithContext(ctx).
		Select(`gas, coal, oil, solar, biomass, wind, "date", CAST("time" AS TEXT) AS "time"`).
		Order(`"date", "time"`).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return records, nil
}
