package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "autotrends/internal/errors"
	"autotrends/pkg/contracts/domain"
)

func f(v float64) *float64 { return &v }

func vehicle(year int, fuel string, mpg *float64, hp *float64) domain.VehicleRecord {
	return domain.VehicleRecord{
		Make:          "Make",
		Model:         "Model",
		Year:          year,
		FuelType:      fuel,
		CombinedMPG:   mpg,
		HorsepowerEst: hp,
	}
}

func TestYearlyMeanSkipsNil(t *testing.T) {
	records := []domain.VehicleRecord{
		vehicle(2015, "Regular", f(10), nil),
		vehicle(2015, "Regular", f(20), nil),
		vehicle(2015, "Regular", nil, nil),
	}

	table, err := Yearly(records, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColCombinedMPG},
	})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, 2015, table.Rows[0].Year)
	require.NotNil(t, table.Rows[0].Values[domain.ColCombinedMPG])
	// The nil cell is excluded from the mean, not treated as zero.
	assert.Equal(t, 15.0, *table.Rows[0].Values[domain.ColCombinedMPG])
}

func TestYearlyAllNilYieldsNilCell(t *testing.T) {
	records := []domain.VehicleRecord{
		vehicle(2016, "Regular", nil, nil),
	}

	table, err := Yearly(records, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColCombinedMPG},
	})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Nil(t, table.Rows[0].Values[domain.ColCombinedMPG])
}

func TestYearlyRespectsYearBounds(t *testing.T) {
	records := []domain.VehicleRecord{
		vehicle(1999, "Regular", f(10), nil),
		vehicle(2000, "Regular", f(20), nil),
		vehicle(2025, "Regular", f(30), nil),
		vehicle(2026, "Regular", f(40), nil),
	}

	table, err := Yearly(records, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColCombinedMPG},
	})
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2000, table.Rows[0].Year)
	assert.Equal(t, 2025, table.Rows[1].Year)
}

func TestYearlyRowsSortedAndSparse(t *testing.T) {
	records := []domain.VehicleRecord{
		vehicle(2020, "Regular", f(30), nil),
		vehicle(2010, "Regular", f(25), nil),
		vehicle(2015, "Regular", f(28), nil),
	}

	table, err := Yearly(records, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColCombinedMPG},
	})
	require.NoError(t, err)

	// Empty years are omitted, present years ascend.
	require.Len(t, table.Rows, 3)
	assert.Equal(t, 2010, table.Rows[0].Year)
	assert.Equal(t, 2015, table.Rows[1].Year)
	assert.Equal(t, 2020, table.Rows[2].Year)
}

func TestYearlyFilter(t *testing.T) {
	records := []domain.VehicleRecord{
		vehicle(2020, "Regular", f(30), nil),
		vehicle(2020, "Electricity", f(100), nil),
	}

	table, err := Yearly(records, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColCombinedMPG},
		Filter:  &Filter{Field: domain.FieldFuelType, Values: []string{"Regular"}},
	})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, 30.0, *table.Rows[0].Values[domain.ColCombinedMPG])
}

func TestYearlyFilterMatchingNothing(t *testing.T) {
	records := []domain.VehicleRecord{
		vehicle(2020, "Regular", f(30), nil),
	}

	table, err := Yearly(records, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColCombinedMPG},
		Filter:  &Filter{Field: domain.FieldFuelType, Values: []string{"Hydrogen"}},
	})
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.Equal(t, []string{domain.ColCombinedMPG}, table.Metrics)
}

func TestYearlyUnknownMetricFails(t *testing.T) {
	records := []domain.VehicleRecord{
		vehicle(2020, "Regular", f(30), nil),
	}

	_, err := Yearly(records, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColCombinedMPG, "top_speed", "weight"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsSchemaError(err))
	// Every unknown column is named, not just the first.
	assert.ElementsMatch(t, []string{"top_speed", "weight"}, apperrors.MissingColumns(err))
}

func TestYearlyNoMetricsFails(t *testing.T) {
	_, err := Yearly([]domain.VehicleRecord{}, Query{YearMin: 2000, YearMax: 2025})
	require.Error(t, err)
	assert.False(t, apperrors.IsSchemaError(err))
}

func TestYearlyEmptyInput(t *testing.T) {
	// Schema validation works on an empty collection because the schema
	// belongs to the type.
	table, err := Yearly([]domain.SportsRecord{}, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColHorsepower},
	})
	require.NoError(t, err)
	assert.Empty(t, table.Rows)

	_, err = Yearly([]domain.SportsRecord{}, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{"fuel_economy"},
	})
	assert.True(t, apperrors.IsSchemaError(err))
}

func TestYearlySportsMetrics(t *testing.T) {
	records := []domain.SportsRecord{
		{Make: "Porsche", Model: "911", Year: 2020, Horsepower: f(443), Price: f(120000)},
		{Make: "Porsche", Model: "Cayman", Year: 2020, Horsepower: f(300), Price: f(60000)},
	}

	table, err := Yearly(records, Query{
		YearMin: 2000,
		YearMax: 2025,
		Metrics: []string{domain.ColHorsepower, domain.ColPrice},
	})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, 371.5, *table.Rows[0].Values[domain.ColHorsepower])
	assert.Equal(t, 90000.0, *table.Rows[0].Values[domain.ColPrice])
}
