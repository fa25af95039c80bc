package domain

import "fmt"

// NaturalKey identifies a logically unique vehicle across both datasets.
type NaturalKey struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// String formats the key for logs and error messages.
func (k NaturalKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.Make, k.Model, k.Year)
}

// SportsRecord is a single row of the curated sports-car dataset, or a
// mainstream record reclassified into the sports schema. Price and torque
// are frequently nil for reclassified records because the mainstream
// source does not carry them.
type SportsRecord struct {
	Make        string   `json:"make" csv:"Make" validate:"required"`
	Model       string   `json:"model" csv:"Model" validate:"required"`
	Year        int      `json:"year" csv:"Year" validate:"required,min=1900,max=2100"`
	EngineSize  *float64 `json:"engine_size,omitempty" csv:"EngineSize"`
	Horsepower  *float64 `json:"horsepower,omitempty" csv:"Horsepower"`
	Torque      *float64 `json:"torque,omitempty" csv:"Torque"`
	ZeroToSixty *float64 `json:"zero_to_sixty,omitempty" csv:"ZeroToSixty"`
	Price       *float64 `json:"price,omitempty" csv:"Price"`
	CombinedMPG *float64 `json:"combined_mpg,omitempty" csv:"CombinedMPG"`
}

// ModelYear returns the record's model year.
func (r SportsRecord) ModelYear() int { return r.Year }

// Columns lists the metric columns present in the sports schema.
func (r SportsRecord) Columns() []string {
	return []string{
		ColEngineSize,
		ColHorsepower,
		ColTorque,
		ColZeroToSixty,
		ColPrice,
		ColCombinedMPG,
	}
}

// Metric returns the value of a canonical metric column, or nil when the
// column is not part of the sports schema or the value is absent.
func (r SportsRecord) Metric(name string) *float64 {
	switch name {
	case ColEngineSize:
		return r.EngineSize
	case ColHorsepower:
		return r.Horsepower
	case ColTorque:
		return r.Torque
	case ColZeroToSixty:
		return r.ZeroToSixty
	case ColPrice:
		return r.Price
	case ColCombinedMPG:
		return r.CombinedMPG
	default:
		return nil
	}
}

// Category returns the value of a categorical field and whether the field
// exists in the sports schema. The sports dataset has no fuel type column.
func (r SportsRecord) Category(field string) (string, bool) {
	switch field {
	case FieldMake:
		return r.Make, true
	default:
		return "", false
	}
}

// Key returns the record's natural key, used for de-duplication when the
// two datasets are reconciled.
func (r SportsRecord) Key() NaturalKey {
	return NaturalKey{Make: r.Make, Model: r.Model, Year: r.Year}
}

// HasPrice reports whether the record carries pricing data. Records with a
// price are authoritative when natural keys collide during reconciliation.
func (r SportsRecord) HasPrice() bool { return r.Price != nil }
