package domain

// Metric column names shared by the aggregation layer. Both record types
// expose their numeric fields under these canonical names so callers can
// request metrics without knowing which dataset they are querying.
const (
	ColCombinedMPG        = "combined_mpg"
	ColCO2Tailpipe        = "co2_tailpipe"
	ColEngineDisplacement = "engine_displacement"
	ColHorsepower         = "horsepower"
	ColZeroToSixty        = "zero_to_sixty"
	ColEngineSize         = "engine_size"
	ColTorque             = "torque"
	ColPrice              = "price"
)

// Categorical field names usable in aggregation filters and share pivots.
const (
	FieldFuelType = "fuel_type"
	FieldMake     = "make"
)

// VehicleRecord is a single row of the mainstream (EPA-sourced) vehicle
// dataset after normalization. Numeric fields are pointers: nil means the
// source value was absent or unparsable, never zero.
type VehicleRecord struct {
	Make               string   `json:"make" csv:"Make" validate:"required"`
	Model              string   `json:"model" csv:"Model" validate:"required"`
	Year               int      `json:"year" csv:"Year" validate:"required,min=1900,max=2100"`
	FuelType           string   `json:"fuel_type,omitempty" csv:"FuelType"`
	CombinedMPG        *float64 `json:"combined_mpg,omitempty" csv:"CombinedMPG"`
	CO2Tailpipe        *float64 `json:"co2_tailpipe,omitempty" csv:"CO2Tailpipe"`
	EngineDisplacement *float64 `json:"engine_displacement,omitempty" csv:"EngineDisplacement"`
	HorsepowerEst      *float64 `json:"horsepower_est,omitempty" csv:"HorsepowerEst"`
	ZeroToSixtyEst     *float64 `json:"zero_to_sixty_est,omitempty" csv:"ZeroToSixtyEst"`
}

// ModelYear returns the record's model year.
func (r VehicleRecord) ModelYear() int { return r.Year }

// Columns lists the metric columns present in the mainstream schema.
func (r VehicleRecord) Columns() []string {
	return []string{
		ColCombinedMPG,
		ColCO2Tailpipe,
		ColEngineDisplacement,
		ColHorsepower,
		ColZeroToSixty,
	}
}

// Metric returns the value of a canonical metric column, or nil when the
// column is not part of the mainstream schema or the value is absent.
func (r VehicleRecord) Metric(name string) *float64 {
	switch name {
	case ColCombinedMPG:
		return r.CombinedMPG
	case ColCO2Tailpipe:
		return r.CO2Tailpipe
	case ColEngineDisplacement:
		return r.EngineDisplacement
	case ColHorsepower:
		return r.HorsepowerEst
	case ColZeroToSixty:
		return r.ZeroToSixtyEst
	default:
		return nil
	}
}

// Category returns the value of a categorical field and whether the field
// exists in the mainstream schema.
func (r VehicleRecord) Category(field string) (string, bool) {
	switch field {
	case FieldFuelType:
		return r.FuelType, true
	case FieldMake:
		return r.Make, true
	default:
		return "", false
	}
}

// Key returns the record's natural key.
func (r VehicleRecord) Key() NaturalKey {
	return NaturalKey{Make: r.Make, Model: r.Model, Year: r.Year}
}
