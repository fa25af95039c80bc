package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotrends/pkg/contracts/domain"
)

func TestIsPerformance(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		name  string
		make  string
		model string
		want  bool
	}{
		{name: "sports brand matches any model", make: "Ferrari", model: "Roma", want: true},
		{name: "brand match is case sensitive", make: "ferrari", model: "Roma", want: false},
		{name: "BMW M3 keyword", make: "BMW", model: "M3", want: true},
		{name: "keyword is case insensitive", make: "BMW", model: "m3 competition", want: true},
		{name: "Toyota Camry is mainstream", make: "Toyota", model: "Camry", want: false},
		{name: "Corvette keyword", make: "Chevrolet", model: "Corvette Stingray", want: true},
		{name: "substring keyword inside model name", make: "Toyota", model: "GR86", want: true},
		{name: "plain sedan", make: "Honda", model: "Accord", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsPerformance(tt.make, tt.model))
		})
	}
}

func TestIsPerformanceCustomConfig(t *testing.T) {
	c := New(Config{
		Brands:        []string{"Lotus"},
		ModelKeywords: []string{"GT", " "},
	})

	assert.True(t, c.IsPerformance("Lotus", "Emira"))
	assert.True(t, c.IsPerformance("Ford", "Mustang GT"))
	// Blank keywords are dropped, not treated as match-everything.
	assert.False(t, c.IsPerformance("Honda", "Civic"))
}

func TestPartition(t *testing.T) {
	c := New(DefaultConfig())

	records := []domain.VehicleRecord{
		{Make: "Toyota", Model: "Camry", Year: 2020},
		{Make: "BMW", Model: "M3", Year: 2020},
		{Make: "Ferrari", Model: "Roma", Year: 2021},
		{Make: "Honda", Model: "Accord", Year: 2019},
	}

	mainstream, performance := c.Partition(records)

	require.Len(t, mainstream, 2)
	require.Len(t, performance, 2)
	assert.Equal(t, "Camry", mainstream[0].Model)
	assert.Equal(t, "Accord", mainstream[1].Model)
	assert.Equal(t, "M3", performance[0].Model)
	assert.Equal(t, "Roma", performance[1].Model)
}

func TestPartitionEmpty(t *testing.T) {
	c := New(DefaultConfig())
	mainstream, performance := c.Partition(nil)
	assert.Empty(t, mainstream)
	assert.Empty(t, performance)
}
