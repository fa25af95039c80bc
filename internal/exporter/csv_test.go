package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotrends/internal/aggregate"
	"autotrends/internal/indices"
	"autotrends/internal/ingest"
	"autotrends/pkg/contracts/domain"
)

func f(v float64) *float64 { return &v }

func TestWriteCSVCreatesDirectoriesAndBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")

	w := NewCSVWriter(nil)
	err := w.WriteCSV(path, WriteOptions{
		Headers:   []string{"A", "B"},
		Records:   [][]string{{"1", "2"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "A,B\n1,2\n", string(data[3:]))
}

func TestWriteVehiclesRoundTrip(t *testing.T) {
	records := []domain.VehicleRecord{
		{
			Make: "Toyota", Model: "Camry", Year: 2020, FuelType: "Regular",
			CombinedMPG: f(32), CO2Tailpipe: f(280), EngineDisplacement: f(2.5),
			HorsepowerEst: f(203), ZeroToSixtyEst: f(7.5),
		},
		{Make: "Honda", Model: "Accord", Year: 2019, FuelType: "Regular", CombinedMPG: f(30)},
	}

	path := filepath.Join(t.TempDir(), "vehicles.csv")
	require.NoError(t, NewCSVWriter(nil).WriteVehicles(path, records))

	loader := ingest.NewLoader(nil, 2000, 2025)
	loaded, _, err := loader.LoadVehicles(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, loaded, 2)
	assert.Equal(t, records[0], loaded[0])
	// Nil optional fields survive the round trip as nil.
	assert.Nil(t, loaded[1].CO2Tailpipe)
	assert.Equal(t, 30.0, *loaded[1].CombinedMPG)
}

func TestWriteSportsRoundTrip(t *testing.T) {
	records := []domain.SportsRecord{
		{
			Make: "Porsche", Model: "911", Year: 2020,
			EngineSize: f(3.0), Horsepower: f(443), Torque: f(390),
			ZeroToSixty: f(3.5), Price: f(120000), CombinedMPG: f(20),
		},
	}

	path := filepath.Join(t.TempDir(), "sports.csv")
	require.NoError(t, NewCSVWriter(nil).WriteSports(path, records))

	loader := ingest.NewLoader(nil, 2000, 2025)
	loaded, _, err := loader.LoadSports(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, loaded, 1)
	assert.Equal(t, records[0], loaded[0])
}

func TestWriteTable(t *testing.T) {
	table := &aggregate.Table{
		Metrics: []string{domain.ColHorsepower, domain.ColZeroToSixty},
		Rows: []aggregate.YearRow{
			{Year: 2020, Values: map[string]*float64{
				domain.ColHorsepower:  f(450),
				domain.ColZeroToSixty: nil,
			}},
		},
	}

	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, NewCSVWriter(nil).WriteTable(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Nil cells come out empty, not zero.
	assert.Contains(t, string(data), "Year,horsepower,zero_to_sixty\n2020,450,\n")
}

func TestWriteShareTable(t *testing.T) {
	table := &indices.ShareTable{
		Categories: []string{"Electric", "Gas"},
		Rows: []indices.ShareRow{
			{Year: 2020, Values: map[string]float64{"Electric": 0, "Gas": 12}},
		},
	}

	path := filepath.Join(t.TempDir(), "shares.csv")
	require.NoError(t, NewCSVWriter(nil).WriteShareTable(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Zero share cells are written as explicit zeros.
	assert.Contains(t, string(data), "Year,Electric,Gas\n2020,0,12\n")
}

func TestWriteCSVBadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// Parent "directory" is a regular file, so MkdirAll fails.
	err := NewCSVWriter(nil).WriteCSV(filepath.Join(blocker, "out.csv"), WriteOptions{})
	require.Error(t, err)
}
