// Package indices derives comparison views on top of yearly aggregates:
// base-year-normalized index series and fuel-type market-share tables.
package indices

import (
	"autotrends/internal/aggregate"
)

// NormalizeToBaseYear rescales every metric column of a yearly aggregate
// so that its first non-nil value (in year order) becomes 100. When the
// base value is nil or zero the whole series for that metric is pinned to
// 100: a degenerate but defined result, never NaN or Inf. The input table
// is not modified.
func NormalizeToBaseYear(table *aggregate.Table) *aggregate.Table {
	out := &aggregate.Table{
		Metrics: append([]string(nil), table.Metrics...),
		Rows:    make([]aggregate.YearRow, 0, len(table.Rows)),
	}

	base := make(map[string]float64, len(table.Metrics))
	for _, m := range table.Metrics {
		for _, row := range table.Rows {
			if v := row.Values[m]; v != nil {
				base[m] = *v
				break
			}
		}
	}

	for _, row := range table.Rows {
		norm := aggregate.YearRow{
			Year:   row.Year,
			Values: make(map[string]*float64, len(table.Metrics)),
		}
		for _, m := range table.Metrics {
			v := row.Values[m]
			if v == nil {
				norm.Values[m] = nil
				continue
			}
			b, ok := base[m]
			indexed := 100.0
			if ok && b != 0 {
				indexed = 100.0 * *v / b
			}
			norm.Values[m] = &indexed
		}
		out.Rows = append(out.Rows, norm)
	}

	return out
}
