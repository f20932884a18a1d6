package models

import (
	"strings"
	"time"
)

type Weather string

const (
	WeatherSunny  Weather = "sunny"
	WeatherCloudy Weather = "cloudy"
	WeatherRainy  Weather = "rainy"
	WeatherSnowy  Weather = "snowy"
)

// Weathers lists every weather condition in the order the day sampler draws them.
var Weathers = []Weather{WeatherSunny, WeatherCloudy, WeatherRainy, WeatherSnowy}

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// SeasonOf maps a calendar month onto its (northern hemisphere) season.
func SeasonOf(month time.Month) Season {
	switch month {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// ParseSeason accepts the configured season names case-insensitively. Unknown names
// return false.
func ParseSeason(s string) (Season, bool) {
	switch Season(strings.ToLower(strings.TrimSpace(s))) {
	case SeasonSpring:
		return SeasonSpring, true
	case SeasonSummer:
		return SeasonSummer, true
	case SeasonAutumn:
		return SeasonAutumn, true
	case SeasonWinter:
		return SeasonWinter, true
	}
	return "", false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

// DayTypeOf classifies Saturday and Sunday as weekend.
func DayTypeOf(date time.Time) DayType {
	if IsWeekend(date) {
		return DayTypeWeekend
	}
	return DayTypeWeekday
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekdayIndex converts a time.Weekday into the configuration convention where
// Monday is 0 and Sunday is 6.
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

const (
	VisitFrequencyRegular    = "regular"
	VisitFrequencyOccasional = "occasional"
	VisitFrequencyRare       = "rare"
)

const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatXLSX    = "xlsx"
	FormatParquet = "parquet"
	FormatDB      = "db"
	FormatKafka   = "kafka"
	FormatConsole = "console"
)

const DateLayout = "2006-01-02"
