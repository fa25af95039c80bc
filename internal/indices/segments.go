package indices

import (
	"autotrends/internal/aggregate"
	"autotrends/pkg/contracts/domain"
)

// Market segment names used by the index comparison view.
const (
	SegmentGas      = "gas"
	SegmentElectric = "electric"
	SegmentSports   = "sports"
)

// DefaultGasFuelTypes lists the EPA fuel-type labels treated as
// combustion for segment splitting.
func DefaultGasFuelTypes() []string {
	return []string{
		"Regular", "Premium", "Midgrade", "Gasoline or E85",
		"Premium or E85", "Diesel", "Gasoline or natural gas", "CNG",
	}
}

// DefaultElectricFuelTypes lists the EPA fuel-type labels treated as
// electrified for segment splitting.
func DefaultElectricFuelTypes() []string {
	return []string{
		"Electricity", "Regular Gas and Electricity",
		"Premium Gas or Electricity", "Premium and Electricity",
		"Regular Gas or Electricity",
	}
}

// SegmentQuery describes one per-segment index request.
type SegmentQuery struct {
	YearMin int
	YearMax int
	// Fuel-type labels defining the gas and electric segments of the
	// mainstream collection. Nil slices use the defaults.
	GasFuelTypes      []string
	ElectricFuelTypes []string
	// Segment toggles.
	IncludeGas      bool
	IncludeElectric bool
	IncludeSports   bool
}

// SegmentSeries carries one segment's base-year-normalized index series:
// performance tracks mean horsepower, efficiency tracks mean MPG. These
// series are also the input feature contract for any downstream
// clustering over segment trajectories.
type SegmentSeries struct {
	Segment     string           `json:"segment"`
	Performance *aggregate.Table `json:"performance"`
	Efficiency  *aggregate.Table `json:"efficiency"`
}

// SegmentIndices computes per-segment performance and efficiency indices
// over the two cleaned collections. Each segment is aggregated in
// isolation and normalized to its own base year, so segments with
// different starting levels stay comparable.
func SegmentIndices(vehicles []domain.VehicleRecord, sports []domain.SportsRecord, q SegmentQuery) ([]SegmentSeries, error) {
	gasTypes := q.GasFuelTypes
	if gasTypes == nil {
		gasTypes = DefaultGasFuelTypes()
	}
	electricTypes := q.ElectricFuelTypes
	if electricTypes == nil {
		electricTypes = DefaultElectricFuelTypes()
	}

	var out []SegmentSeries

	vehicleSegment := func(name string, fuelTypes []string) (SegmentSeries, error) {
		perf, err := aggregate.Yearly(vehicles, aggregate.Query{
			YearMin: q.YearMin,
			YearMax: q.YearMax,
			Metrics: []string{domain.ColHorsepower},
			Filter:  &aggregate.Filter{Field: domain.FieldFuelType, Values: fuelTypes},
		})
		if err != nil {
			return SegmentSeries{}, err
		}
		eff, err := aggregate.Yearly(vehicles, aggregate.Query{
			YearMin: q.YearMin,
			YearMax: q.YearMax,
			Metrics: []string{domain.ColCombinedMPG},
			Filter:  &aggregate.Filter{Field: domain.FieldFuelType, Values: fuelTypes},
		})
		if err != nil {
			return SegmentSeries{}, err
		}
		return SegmentSeries{
			Segment:     name,
			Performance: NormalizeToBaseYear(perf),
			Efficiency:  NormalizeToBaseYear(eff),
		}, nil
	}

	if q.IncludeGas {
		s, err := vehicleSegment(SegmentGas, gasTypes)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if q.IncludeElectric {
		s, err := vehicleSegment(SegmentElectric, electricTypes)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if q.IncludeSports {
		perf, err := aggregate.Yearly(sports, aggregate.Query{
			YearMin: q.YearMin,
			YearMax: q.YearMax,
			Metrics: []string{domain.ColHorsepower},
		})
		if err != nil {
			return nil, err
		}
		eff, err := aggregate.Yearly(sports, aggregate.Query{
			YearMin: q.YearMin,
			YearMax: q.YearMax,
			Metrics: []string{domain.ColCombinedMPG},
		})
		if err != nil {
			return nil, err
		}
		out = append(out, SegmentSeries{
			Segment:     SegmentSports,
			Performance: NormalizeToBaseYear(perf),
			Efficiency:  NormalizeToBaseYear(eff),
		})
	}

	return out, nil
}
