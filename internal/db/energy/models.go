package energy

import (
	"time"
)

const (
	CarbonTable     = "carbon"
	ProductionTable = "production"
)

// CarbonFactor is the default emission factor of one energy type.
type CarbonFactor struct {
	EnergyType string  `json:"energy_type" gorm:"column:energy_type;primaryKey"`
	Value      float64 `json:"value" gorm:"column:value"`
}

func (CarbonFactor) TableName() string {
	return CarbonTable
}

// ProductionRecord is one reporting interval of generation by production type.
// A nil quantity means the source had no value for it.
type ProductionRecord struct {
	Gas     *float64  `json:"gas" gorm:"column:gas"`
	Coal    *float64  `json:"coal" gorm:"column:coal"`
	Oil     *float64  `json:"oil" gorm:"column:oil"`
	Solar   *float64  `json:"solar" gorm:"column:solar"`
	Biomass *float64  `json:"biomass" gorm:"column:biomass"`
	Wind    *float64  `json:"wind" gorm:"column:wind"`
	Date    time.Time `json:"date" gorm:"column:date"`
	Time    string    `json:"time" gorm:"column:time"`
}

func (ProductionRecord) TableName() string {
	return ProductionTable
}

// ProductionColumns is the full output column order of the production table.
var ProductionColumns = []string{"gas", "coal", "oil", "solar", "biomass", "wind", "date", "time"}

// Production is the transformed production dataset. Columns lists the output
// columns that survived pruning; a quantity column missing from it is nil in
// every record. Storage ignores Columns and writes every column, pruned ones
// as NULL.
type Production struct {
	Columns []string
	Records []ProductionRecord
}

func (p *Production) HasColumn(name string) bool {
	for _, c := range p.Columns {
		if c == name {
			return true
		}
	}
	return false
}
