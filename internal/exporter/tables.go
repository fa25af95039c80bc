package exporter

import (
	"strconv"

	"autotrends/internal/aggregate"
	"autotrends/internal/indices"
)

// WriteTable writes a yearly aggregate (or normalized index) table.
// A nil cell, meaning no contributing values for that year and metric,
// exports as an empty cell, not a zero.
func (w *CSVWriter) WriteTable(path string, table *aggregate.Table) error {
	headers := append([]string{"Year"}, table.Metrics...)
	rows := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(r.Year))
		for _, m := range table.Metrics {
			row = append(row, formatFloat(r.Values[m]))
		}
		rows = append(rows, row)
	}
	return w.WriteCSV(path, WriteOptions{Headers: headers, Records: rows, BOMPrefix: true})
}

// WriteShareTable writes a fuel-share pivot. Share cells are counts (or
// percentages) and always present, zero included.
func (w *CSVWriter) WriteShareTable(path string, table *indices.ShareTable) error {
	headers := append([]string{"Year"}, table.Categories...)
	rows := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(r.Year))
		for _, c := range table.Categories {
			row = append(row, strconv.FormatFloat(r.Values[c], 'f', -1, 64))
		}
		rows = append(rows, row)
	}
	return w.WriteCSV(path, WriteOptions{Headers: headers, Records: rows, BOMPrefix: true})
}
