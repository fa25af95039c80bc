package exporter

import (
	"strconv"

	"autotrends/pkg/contracts/domain"
)

// WriteVehicles writes the cleaned mainstream collection. Column names
// match the header variants the ingest layer accepts, so exported files
// round-trip.
func (w *CSVWriter) WriteVehicles(path string, records []domain.VehicleRecord) error {
	headers := []string{
		"Make", "Model", "Year", "Fuel Type",
		"Combined Mpg For Fuel Type1", "Co2 Tailpipe For Fuel Type1",
		"Engine Displacement", "Horsepower (est)", "0-60 Time (est)",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Make,
			r.Model,
			strconv.Itoa(r.Year),
			r.FuelType,
			formatFloat(r.CombinedMPG),
			formatFloat(r.CO2Tailpipe),
			formatFloat(r.EngineDisplacement),
			formatFloat(r.HorsepowerEst),
			formatFloat(r.ZeroToSixtyEst),
		})
	}
	return w.WriteCSV(path, WriteOptions{Headers: headers, Records: rows, BOMPrefix: true})
}

// WriteSports writes the merged sports collection.
func (w *CSVWriter) WriteSports(path string, records []domain.SportsRecord) error {
	headers := []string{
		"Car Make", "Car Model", "Year",
		"Engine Size (L)", "Horsepower", "Torque (lb-ft)",
		"0-60 MPH Time (seconds)", "Price (in USD)", "MPG",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Make,
			r.Model,
			strconv.Itoa(r.Year),
			formatFloat(r.EngineSize),
			formatFloat(r.Horsepower),
			formatFloat(r.Torque),
			formatFloat(r.ZeroToSixty),
			formatFloat(r.Price),
			formatFloat(r.CombinedMPG),
		})
	}
	return w.WriteCSV(path, WriteOptions{Headers: headers, Records: rows, BOMPrefix: true})
}
