package production

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"ulascansenturk/energy-loader/internal/db/energy"
)

var (
	ErrFileAccess = errors.New("production file not readable")
	ErrParse      = errors.New("production data invalid")
)

// MissingValue is the ENTSO-E token for "not expected".
const MissingValue = "n/e"

// aggregatedMeasurement is the only measurement suffix read as generation.
const aggregatedMeasurement = "actual aggregated"

const (
	colArea     = "Area"
	colMTU      = "MTU"
	colBiomass  = "Biomass"
	colGas      = "gas"
	colCoal     = "coal"
	colOil      = "oil"
	colSolar    = "solar"
	colWaste    = "waste"
	colWindOff  = "wind_off"
	colWindOn   = "wind_on"
	dateLayout  = "02.01.2006"
	dateLength  = 10
	timeOffset  = 11
	timeLength  = 5
	derivedBio  = "biomass"
	derivedWind = "wind"
)

// headerAliases maps normalized export headers to working column names.
var headerAliases = map[string]string{
	"area":          colArea,
	"mtu":           colMTU,
	"biomass":       colBiomass,
	"gas":           colGas,
	"hard_coal":     colCoal,
	"coal":          colCoal,
	"oil":           colOil,
	"solar":         colSolar,
	"waste":         colWaste,
	"wind_offshore": colWindOff,
	"wind_off":      colWindOff,
	"wind_onshore":  colWindOn,
	"wind_on":       colWindOn,
}

type ProductionService interface {
	LoadProduction(ctx context.Context) (*energy.Production, error)
}

type fileProductionService struct {
	path        string
	transformer *Transformer
}

func NewProductionService(path string) ProductionService {
	return &fileProductionService{
		path:        path,
		transformer: NewTransformer(),
	}
}

func (s *fileProductionService) LoadProduction(ctx context.Context) (*energy.Production, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.transformer.TransformFile(s.path)
}

// Transformer turns a semicolon separated generation-per-type export into
// production records.
type Transformer struct {
	Comma rune
}

func NewTransformer() *Transformer {
	return &Transformer{Comma: ';'}
}

func (t *Transformer) TransformFile(path string) (*energy.Production, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	return t.Transform(f)
}

// column is one source column after missing-value normalization; nil cells
// are missing.
type column struct {
	header string
	cells  []*string
}

func (c column) allMissing() bool {
	for _, v := range c.cells {
		if v != nil {
			return false
		}
	}
	return true
}

func (t *Transformer) Transform(r io.Reader) (*energy.Production, error) {
	reader := csv.NewReader(r)
	reader.Comma = t.Comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrParse)
	}

	columns := readColumns(rows[0], rows[1:])

	named := make(map[string]column)
	for _, c := range columns {
		if c.allMissing() {
			continue
		}
		name, ok := CanonicalColumn(c.header)
		if !ok {
			continue
		}
		if _, dup := named[name]; dup {
			return nil, fmt.Errorf("%w: more than one column maps to %s", ErrParse, name)
		}
		named[name] = c
	}

	mtu, ok := named[colMTU]
	if !ok {
		return nil, fmt.Errorf("%w: no MTU column", ErrParse)
	}

	records := make([]energy.ProductionRecord, len(rows)-1)
	quantities := map[string]func(*energy.ProductionRecord) **float64{
		colGas:   func(rec *energy.ProductionRecord) **float64 { return &rec.Gas },
		colCoal:  func(rec *energy.ProductionRecord) **float64 { return &rec.Coal },
		colOil:   func(rec *energy.ProductionRecord) **float64 { return &rec.Oil },
		colSolar: func(rec *energy.ProductionRecord) **float64 { return &rec.Solar },
	}

	values := make(map[string][]*float64)
	for _, name := range []string{colGas, colCoal, colOil, colSolar, colBiomass, colWaste, colWindOff, colWindOn} {
		c, ok := named[name]
		if !ok {
			continue
		}
		parsed, err := parseNumbers(c, name)
		if err != nil {
			return nil, err
		}
		values[name] = parsed
	}

	for i := range records {
		rec := &records[i]
		for name, field := range quantities {
			if v, ok := values[name]; ok {
				*field(rec) = v[i]
			}
		}
		if bio, waste := values[colBiomass], values[colWaste]; bio != nil && waste != nil {
			rec.Biomass = sum(bio[i], waste[i])
		}
		if off, on := values[colWindOff], values[colWindOn]; off != nil && on != nil {
			rec.Wind = sum(off[i], on[i])
		}

		if mtu.cells[i] == nil {
			return nil, fmt.Errorf("%w: row %d: MTU is missing", ErrParse, i+2)
		}
		date, clock, err := SplitMTU(*mtu.cells[i])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrParse, i+2, err)
		}
		rec.Date = date
		rec.Time = clock
	}

	return &energy.Production{
		Columns: outputColumns(values),
		Records: records,
	}, nil
}

func readColumns(header []string, rows [][]string) []column {
	columns := make([]column, len(header))
	for j, h := range header {
		if j == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[j] = column{header: h, cells: make([]*string, len(rows))}
	}

	for i, row := range rows {
		for j := range columns {
			if j >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[j])
			if v == "" || v == MissingValue {
				continue
			}
			columns[j].cells[i] = &v
		}
	}
	return columns
}

func parseNumbers(c column, name string) ([]*float64, error) {
	out := make([]*float64, len(c.cells))
	for i, cell := range c.cells {
		if cell == nil {
			continue
		}
		v, err := strconv.ParseFloat(*cell, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d column %s: %q is not a number", ErrParse, i+2, name, *cell)
		}
		out[i] = &v
	}
	return out, nil
}

func sum(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a + *b
	return &v
}

// outputColumns lists the surviving output columns in table order.
func outputColumns(values map[string][]*float64) []string {
	present := map[string]bool{
		colGas:      values[colGas] != nil,
		colCoal:     values[colCoal] != nil,
		colOil:      values[colOil] != nil,
		colSolar:    values[colSolar] != nil,
		derivedBio:  values[colBiomass] != nil && values[colWaste] != nil,
		derivedWind: values[colWindOff] != nil && values[colWindOn] != nil,
		"date":      true,
		"time":      true,
	}

	var columns []string
	for _, name := range energy.ProductionColumns {
		if present[name] {
			columns = append(columns, name)
		}
	}
	return columns
}

// CanonicalColumn maps an export header such as
// "Fossil Hard coal  - Actual Aggregated [MW]" to its working column name.
// Headers carrying any other measurement, such as "Actual Consumption", are
// not recognized.
func CanonicalColumn(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(header))

	name, measurement, hasMeasurement := strings.Cut(h, " - ")
	if hasMeasurement {
		if i := strings.Index(measurement, "["); i >= 0 {
			measurement = measurement[:i]
		}
		if strings.Join(strings.Fields(measurement), " ") != aggregatedMeasurement {
			return "", false
		}
	}

	for _, sep := range []string{"[", "("} {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "fossil ")
	name = strings.Join(strings.Fields(name), "_")

	column, ok := headerAliases[name]
	return column, ok
}

// SplitMTU splits "01.02.2023 00:00 - 01.02.2023 00:15" into the interval
// start date and its "HH:MM" text.
func SplitMTU(mtu string) (time.Time, string, error) {
	runes := []rune(mtu)
	if len(runes) < dateLength {
		return time.Time{}, "", fmt.Errorf("MTU %q too short", mtu)
	}

	date, err := time.Parse(dateLayout, string(runes[:dateLength]))
	if err != nil {
		return time.Time{}, "", fmt.Errorf("MTU %q: %w", mtu, err)
	}

	var clock string
	if len(runes) > timeOffset {
		end := timeOffset + timeLength
		if end > len(runes) {
			end = len(runes)
		}
		clock = string(runes[timeOffset:end])
	}

	return date, clock, nil
}
