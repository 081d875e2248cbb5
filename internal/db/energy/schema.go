package energy

import (
	"fmt"
)

// tableSchema holds the CREATE statements of both tables for one dialect.
type tableSchema struct {
	carbon     string
	production string
}

// The SQLite column types follow the historical energy.db layout; SQLite's
// type affinity keeps fractional values as REAL.
var schemas = map[string]tableSchema{
	"sqlite": {
		carbon: `CREATE TABLE "carbon" (
			energy_type TEXT PRIMARY KEY,
			value INTEGER
		)`,
		production: `CREATE TABLE "production" (
			gas INTEGER,
			coal INTEGER,
			oil INTEGER,
			solar INTEGER,
			biomass INTEGER,
			wind INTEGER,
			"date" DATETIME,
			"time" DATETIME
		)`,
	},
	"postgres": {
		carbon: `CREATE TABLE "carbon" (
			energy_type TEXT PRIMARY KEY,
			value DOUBLE PRECISION
		)`,
		production: `CREATE TABLE "production" (
			gas DOUBLE PRECISION,
			coal DOUBLE PRECISION,
			oil DOUBLE PRECISION,
			solar DOUBLE PRECISION,
			biomass DOUBLE PRECISION,
			wind DOUBLE PRECISION,
			"date" DATE,
			"time" TEXT
		)`,
	},
}

func schemaFor(dialect string) (tableSchema, error) {
	s, ok := schemas[dialect]
	if !ok {
		return tableSchema{}, fmt.Errorf("no schema for dialect %q", dialect)
	}
	return s, nil
}

func dropTableStatement(table string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, table)
}
