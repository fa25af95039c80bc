package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first worksheet that looks like a vehicle table.
// Government portals distribute the same extracts as Excel workbooks,
// sometimes with a notes sheet ahead of the data, so each sheet's first
// row is probed for the expected headers instead of trusting sheet order.
func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}
		if looksLikeVehicleHeader(rows[0]) {
			return rows[0], rows[1:], nil
		}
	}

	return nil, nil, fmt.Errorf("no sheet with vehicle data headers in %s", path)
}

func looksLikeVehicleHeader(header []string) bool {
	var hasYear, hasMake bool
	for _, h := range header {
		switch normalizeHeader(h) {
		case "year":
			hasYear = true
		case "make", "car make":
			hasMake = true
		}
	}
	return hasYear && hasMake
}
