package simulator

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
)

type seasonalWeather struct {
	probs    map[string]float64
	baseTemp float64
}

var weatherKeys = func() []string {
	keys := make([]string, len(models.Weathers))
	for i, w := range models.Weathers {
		keys[i] = string(w)
	}
	return keys
}()

var seasonalWeathers = map[models.Season]seasonalWeather{
	models.SeasonWinter: {
		probs:    map[string]float64{"sunny": 0.4, "cloudy": 0.3, "rainy": 0.2, "snowy": 0.1},
		baseTemp: 5,
	},
	models.SeasonSpring: {
		probs:    map[string]float64{"sunny": 0.5, "cloudy": 0.3, "rainy": 0.2},
		baseTemp: 15,
	},
	models.SeasonSummer: {
		probs:    map[string]float64{"sunny": 0.6, "cloudy": 0.2, "rainy": 0.2},
		baseTemp: 25,
	},
	models.SeasonAutumn: {
		probs:    map[string]float64{"sunny": 0.5, "cloudy": 0.3, "rainy": 0.2},
		baseTemp: 15,
	},
}

const temperatureStdDev = 5.0

// DayWeather is the condition and temperature shared by every visit on one day.
type DayWeather struct {
	Condition   models.Weather
	Temperature float64
}

// SampleWeather draws the day's weather from its season's table.
func SampleWeather(rng *rand.Rand, date time.Time) DayWeather {
	table := seasonalWeathers[models.SeasonOf(date.Month())]
	condition := categorical(rng, weatherKeys, table.probs)
	return DayWeather{
		Condition:   models.Weather(condition),
		Temperature: normal(rng, table.baseTemp, temperatureStdDev),
	}
}
