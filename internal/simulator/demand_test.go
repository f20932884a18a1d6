package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCompositeMultiplierDefaultsToNeutral(t *testing.T) {
	d := NewDemandEstimator(models.DataGenerationConfig{BaseCustomersPerHour: 5})
	date := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1.0, d.CompositeMultiplier(date, 10, models.WeatherSunny))
	assert.Equal(t, 5.0, d.ExpectedArrivals(date, 10, models.WeatherSunny))
}

func TestCompositeMultiplier(t *testing.T) {
	valentine := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC) // Wednesday
	d := NewDemandEstimator(models.DataGenerationConfig{
		BaseCustomersPerHour: 10,
		WeekdayMultiplier:    map[int]float64{2: 0.5},
		HourMultiplier:       map[int]float64{12: 2},
		WeatherMultiplier:    map[string]float64{"Rainy": 0.8},
		SeasonalMultiplier:   map[int]float64{2: 1.5},
		SpecialEvents: []models.SpecialEvent{
			{Date: valentine, Name: "valentine", Multiplier: 3},
			{Date: valentine, Name: "shadowed", Multiplier: 100},
		},
	})

	// 0.5 * 2 * 0.8 * 1.5 * 3
	assert.InDelta(t, 3.6, d.CompositeMultiplier(valentine.Add(12*time.Hour), 12, models.WeatherRainy), 1e-9)
	assert.InDelta(t, 36.0, d.ExpectedArrivals(valentine, 12, models.WeatherRainy), 1e-9)

	// next day: no event, Thursday, sunny, 9am
	assert.InDelta(t, 1.5, d.CompositeMultiplier(valentine.AddDate(0, 0, 1), 9, models.WeatherSunny), 1e-9)
}

func TestArrivalsWithZeroDemand(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := NewDemandEstimator(models.DataGenerationConfig{
		BaseCustomersPerHour: 5,
		HourMultiplier:       map[int]float64{7: 0},
	})
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		assert.Equal(t, 0, d.Arrivals(rng, date, 7, models.WeatherSunny))
	}
}
