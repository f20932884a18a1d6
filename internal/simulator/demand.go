package simulator

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
)

// DemandEstimator turns the configured multiplier tables into hourly arrival counts.
type DemandEstimator struct {
	base        float64
	multipliers models.Multipliers
	events      []models.SpecialEvent
}

func NewDemandEstimator(cfg models.DataGenerationConfig) *DemandEstimator {
	return &DemandEstimator{
		base:        cfg.BaseCustomersPerHour,
		multipliers: cfg.Multipliers(),
		events:      cfg.SpecialEvents,
	}
}

// CompositeMultiplier multiplies the weekday, hour, weather and month factors, then the
// factor of the first special event falling on date. Missing table entries count as 1.0.
func (d *DemandEstimator) CompositeMultiplier(date time.Time, hour int, weather models.Weather) float64 {
	multiplier := 1.0
	multiplier *= d.multipliers.Weekday(date.Weekday())
	multiplier *= d.multipliers.Hour(hour)
	multiplier *= d.multipliers.Weather(weather)
	multiplier *= d.multipliers.Month(date.Month())

	for _, event := range d.events {
		if sameDay(event.Date, date) {
			multiplier *= event.Multiplier
			break
		}
	}
	return multiplier
}

// ExpectedArrivals is the Poisson mean for one business hour.
func (d *DemandEstimator) ExpectedArrivals(date time.Time, hour int, weather models.Weather) float64 {
	return d.base * d.CompositeMultiplier(date, hour, weather)
}

// Arrivals draws the realised number of visits for one business hour.
func (d *DemandEstimator) Arrivals(rng *rand.Rand, date time.Time, hour int, weather models.Weather) int {
	return poisson(rng, d.ExpectedArrivals(date, hour, weather))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
