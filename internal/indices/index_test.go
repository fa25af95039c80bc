package indices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotrends/internal/aggregate"
	"autotrends/pkg/contracts/domain"
)

func f(v float64) *float64 { return &v }

func yearlyTable(metric string, values map[int]*float64, years ...int) *aggregate.Table {
	t := &aggregate.Table{Metrics: []string{metric}}
	for _, y := range years {
		t.Rows = append(t.Rows, aggregate.YearRow{
			Year:   y,
			Values: map[string]*float64{metric: values[y]},
		})
	}
	return t
}

func TestNormalizeToBaseYear(t *testing.T) {
	table := yearlyTable(domain.ColHorsepower, map[int]*float64{
		2000: f(40),
		2001: f(44),
		2002: f(48),
	}, 2000, 2001, 2002)

	out := NormalizeToBaseYear(table)

	require.Len(t, out.Rows, 3)
	assert.InDelta(t, 100, *out.Rows[0].Values[domain.ColHorsepower], 1e-9)
	assert.InDelta(t, 110, *out.Rows[1].Values[domain.ColHorsepower], 1e-9)
	assert.InDelta(t, 120, *out.Rows[2].Values[domain.ColHorsepower], 1e-9)
}

func TestNormalizeToBaseYearSkipsLeadingNil(t *testing.T) {
	// The base is the first non-nil value in year order, not the first row.
	table := yearlyTable(domain.ColHorsepower, map[int]*float64{
		2000: nil,
		2001: f(50),
		2002: f(75),
	}, 2000, 2001, 2002)

	out := NormalizeToBaseYear(table)

	assert.Nil(t, out.Rows[0].Values[domain.ColHorsepower])
	assert.InDelta(t, 100, *out.Rows[1].Values[domain.ColHorsepower], 1e-9)
	assert.InDelta(t, 150, *out.Rows[2].Values[domain.ColHorsepower], 1e-9)
}

func TestNormalizeToBaseYearZeroBase(t *testing.T) {
	table := yearlyTable(domain.ColHorsepower, map[int]*float64{
		2000: f(0),
		2001: f(50),
	}, 2000, 2001)

	out := NormalizeToBaseYear(table)

	// A zero base pins the series to 100 instead of dividing by zero.
	assert.InDelta(t, 100, *out.Rows[0].Values[domain.ColHorsepower], 1e-9)
	assert.InDelta(t, 100, *out.Rows[1].Values[domain.ColHorsepower], 1e-9)
}

func TestNormalizeToBaseYearAllNil(t *testing.T) {
	table := yearlyTable(domain.ColHorsepower, map[int]*float64{
		2000: nil,
		2001: nil,
	}, 2000, 2001)

	out := NormalizeToBaseYear(table)

	assert.Nil(t, out.Rows[0].Values[domain.ColHorsepower])
	assert.Nil(t, out.Rows[1].Values[domain.ColHorsepower])
}

func TestNormalizeToBaseYearDoesNotMutateInput(t *testing.T) {
	table := yearlyTable(domain.ColHorsepower, map[int]*float64{
		2000: f(40),
		2001: f(80),
	}, 2000, 2001)

	_ = NormalizeToBaseYear(table)

	assert.Equal(t, 40.0, *table.Rows[0].Values[domain.ColHorsepower])
	assert.Equal(t, 80.0, *table.Rows[1].Values[domain.ColHorsepower])
}

func TestNormalizeToBaseYearEmptyTable(t *testing.T) {
	out := NormalizeToBaseYear(&aggregate.Table{Metrics: []string{domain.ColHorsepower}})
	assert.Empty(t, out.Rows)
	assert.Equal(t, []string{domain.ColHorsepower}, out.Metrics)
}
