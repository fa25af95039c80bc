package indices

import (
	"sort"

	"autotrends/internal/aggregate"
)

// OtherCategory buckets raw labels the category map does not cover, so
// percentage rows still close at 100 instead of silently losing records.
const OtherCategory = "Other"

// ShareQuery describes one fuel-share pivot request.
type ShareQuery struct {
	YearMin int
	YearMax int
	// Field is the categorical column to pivot on, e.g. "fuel_type".
	Field string
	// CategoryMap maps raw labels onto display categories ("Premium" →
	// "Gas"). An empty map keeps raw labels as-is; with a non-empty map,
	// unmapped labels fall into OtherCategory.
	CategoryMap map[string]string
	// UsePercent divides each row by its row-sum.
	UsePercent bool
}

// ShareRow is one pivot row: a year and a cell per observed category.
// Cells for (year, category) pairs with zero occurrences are 0, not nil:
// share tables count, they do not average, so absence really is zero.
type ShareRow struct {
	Year   int                `json:"year"`
	Values map[string]float64 `json:"values"`
}

// ShareTable is a year-by-category count or percentage table. Categories
// are whatever mapped labels the filtered records produce, sorted for
// deterministic column order.
type ShareTable struct {
	Categories []string   `json:"categories"`
	Percent    bool       `json:"percent"`
	Rows       []ShareRow `json:"rows"`
}

// FuelShare groups records by (year, mapped category), counts
// occurrences, and pivots into a dense table. In percent mode each row is
// divided by its row-sum; a zero row-sum divides by 1 instead, yielding an
// all-zero row for an empty year rather than an error.
func FuelShare[R aggregate.Row](records []R, q ShareQuery) *ShareTable {
	counts := make(map[int]map[string]float64)
	catSet := make(map[string]struct{})

	for _, r := range records {
		year := r.ModelYear()
		if year < q.YearMin || year > q.YearMax {
			continue
		}
		raw, ok := r.Category(q.Field)
		if !ok {
			continue
		}
		cat := raw
		if len(q.CategoryMap) > 0 {
			if mapped, found := q.CategoryMap[raw]; found {
				cat = mapped
			} else {
				cat = OtherCategory
			}
		}
		catSet[cat] = struct{}{}
		row, ok := counts[year]
		if !ok {
			row = make(map[string]float64)
			counts[year] = row
		}
		row[cat]++
	}

	categories := make([]string, 0, len(catSet))
	for c := range catSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	rowCount := q.YearMax - q.YearMin + 1
	if rowCount < 0 {
		rowCount = 0
	}
	table := &ShareTable{
		Categories: categories,
		Percent:    q.UsePercent,
		Rows:       make([]ShareRow, 0, rowCount),
	}

	// Dense over the requested range: years with zero records render as
	// all-zero rows rather than disappearing.
	for y := q.YearMin; y <= q.YearMax; y++ {
		row := ShareRow{Year: y, Values: make(map[string]float64, len(categories))}
		var total float64
		for _, c := range categories {
			v := counts[y][c]
			row.Values[c] = v
			total += v
		}
		if q.UsePercent {
			if total == 0 {
				total = 1
			}
			for _, c := range categories {
				row.Values[c] = 100.0 * row.Values[c] / total
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}
