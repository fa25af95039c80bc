// Package aggregate groups cleaned vehicle records by model year and
// computes per-year mean values of requested metric columns.
//
// The aggregator is a pure transform: it never mutates its input, holds
// no state between calls, and concurrent callers are safe. Both record
// types satisfy Row through canonical column names, so one implementation
// serves the mainstream and sports collections alike.
package aggregate

import (
	"sort"

	apperrors "autotrends/internal/errors"
)

// Row is the record surface the aggregator needs. Both domain record
// types implement it with value receivers.
type Row interface {
	// ModelYear returns the record's model year.
	ModelYear() int
	// Columns lists the metric columns of the record's schema.
	Columns() []string
	// Metric returns the value of a canonical metric column; nil when the
	// value is absent or the column is not in the schema.
	Metric(name string) *float64
	// Category returns a categorical field value and whether the field
	// exists in the schema.
	Category(field string) (string, bool)
}

// Filter restricts records to those whose categorical field value is a
// member of Values. A nil Filter or an empty Values list disables the
// restriction.
type Filter struct {
	Field  string
	Values []string
}

func (f *Filter) matches(r Row) bool {
	if f == nil || len(f.Values) == 0 {
		return true
	}
	v, ok := r.Category(f.Field)
	if !ok {
		return false
	}
	for _, want := range f.Values {
		if v == want {
			return true
		}
	}
	return false
}

// Query describes one aggregation request.
type Query struct {
	YearMin int
	YearMax int
	Metrics []string
	Filter  *Filter
}

// YearRow is one output row: a model year and the mean of each requested
// metric over that year's records. A nil mean marks a (year, metric) pair
// with zero non-nil contributing values.
type YearRow struct {
	Year   int                 `json:"year"`
	Values map[string]*float64 `json:"values"`
}

// Table is an ordered yearly aggregate: rows ascend strictly by year and
// no two rows share one. Years with zero matching records are omitted
// entirely (sparse policy; contrast with the zero-filled share tables in
// the indices package).
type Table struct {
	Metrics []string  `json:"metrics"`
	Rows    []YearRow `json:"rows"`
}

// Yearly aggregates records into per-year metric means.
//
// Every requested metric must exist in the record schema; unknown columns
// fail the whole call with a schema error naming them all. An empty input
// or a filter matching nothing yields a well-formed empty table so the
// presentation layer can render a "no data" state.
func Yearly[R Row](records []R, q Query) (*Table, error) {
	if err := validateMetrics[R](q.Metrics); err != nil {
		return nil, err
	}

	type accum struct {
		sum   float64
		count int
	}
	byYear := make(map[int]map[string]*accum)

	for _, r := range records {
		year := r.ModelYear()
		if year < q.YearMin || year > q.YearMax {
			continue
		}
		if !q.Filter.matches(r) {
			continue
		}
		cells, ok := byYear[year]
		if !ok {
			cells = make(map[string]*accum, len(q.Metrics))
			byYear[year] = cells
		}
		for _, m := range q.Metrics {
			v := r.Metric(m)
			if v == nil {
				continue
			}
			a := cells[m]
			if a == nil {
				a = &accum{}
				cells[m] = a
			}
			a.sum += *v
			a.count++
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	table := &Table{
		Metrics: append([]string(nil), q.Metrics...),
		Rows:    make([]YearRow, 0, len(years)),
	}
	for _, y := range years {
		row := YearRow{Year: y, Values: make(map[string]*float64, len(q.Metrics))}
		for _, m := range q.Metrics {
			if a := byYear[y][m]; a != nil && a.count > 0 {
				mean := a.sum / float64(a.count)
				row.Values[m] = &mean
			} else {
				row.Values[m] = nil
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// validateMetrics checks requested metric columns against the record
// type's schema. The schema belongs to the type, not the data, so an
// empty collection still validates correctly.
func validateMetrics[R Row](metrics []string) error {
	if len(metrics) == 0 {
		return apperrors.NewValidationError("at least one metric column is required")
	}

	var zero R
	known := make(map[string]struct{})
	for _, c := range zero.Columns() {
		known[c] = struct{}{}
	}

	var missing []string
	for _, m := range metrics {
		if _, ok := known[m]; !ok {
			missing = append(missing, m)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError("input", missing)
	}
	return nil
}
