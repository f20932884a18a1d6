package summary

import (
	"math"
	"testing"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var menu = []models.MenuItem{
	{ID: 1, CategoryName: "coffee", Name: "Blend", Price: 400, Cost: 100},
	{ID: 2, CategoryName: "food", Name: "Toast", Price: 600, Cost: 300},
	{ID: 3, CategoryName: "coffee", Name: "Latte", Price: 500, Cost: 200},
}

var ageGroups = []string{"teens", "twenties", "thirties", "forties", "seniors"}

func at(d, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 30, 0, 0, time.UTC)
}

func fixture() ([]models.Order, []models.OrderItem) {
	orders := []models.Order{
		// Saturday 6th, out of date order on purpose
		{ID: 4, CustomerID: 30, OrderedAt: at(6, 11), Weather: models.WeatherSnowy, Temperature: 1, IsWeekend: true,
			Gender: models.GenderFemale, AgeGroup: "twenties", TotalAmount: 500},
		{ID: 1, CustomerID: 10, OrderedAt: at(1, 9), Weather: models.WeatherSunny, Temperature: 4,
			Gender: models.GenderFemale, AgeGroup: "thirties", TotalAmount: 1400},
		{ID: 2, CustomerID: 11, OrderedAt: at(1, 10), Weather: models.WeatherSunny, Temperature: math.NaN(),
			Gender: models.GenderMale, AgeGroup: "thirties", TotalAmount: 400},
		{ID: 3, CustomerID: 10, OrderedAt: at(1, 12), Weather: models.WeatherSunny, Temperature: 6,
			Gender: models.GenderMale, AgeGroup: "teens", TotalAmount: 1200},
	}
	items := []models.OrderItem{
		{OrderID: 1, MenuItemID: 1, Quantity: 2, UnitPrice: 400, Subtotal: 800},
		{OrderID: 1, MenuItemID: 2, Quantity: 1, UnitPrice: 600, Subtotal: 600},
		{OrderID: 2, MenuItemID: 1, Quantity: 1, UnitPrice: 400, Subtotal: 400},
		{OrderID: 3, MenuItemID: 1, Quantity: 3, UnitPrice: 400, Subtotal: 1200},
		{OrderID: 4, MenuItemID: 3, Quantity: 1, UnitPrice: 500, Subtotal: 500},
	}
	return orders, items
}

func TestDaily(t *testing.T) {
	orders, items := fixture()
	rows := NewAggregator(menu, ageGroups).Daily(orders, items)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Monday", first.Weekday)
	assert.Equal(t, models.DayTypeWeekday, first.DayType)
	assert.Equal(t, models.SeasonWinter, first.Season)
	assert.Equal(t, 3, first.TotalOrders)
	assert.Equal(t, 2, first.UniqueCustomers)
	assert.Equal(t, int64(3000), first.TotalSales)
	assert.Equal(t, 7, first.TotalItemsSold)
	// 2*(400-100) + (600-300) + (400-100) + 3*(400-100)
	assert.Equal(t, int64(2100), first.TotalProfit)
	assert.InDelta(t, 5.0, first.AvgTemperature, 1e-9)
	assert.Equal(t, models.WeatherSunny, first.Weather)
	assert.False(t, first.IsWeekend)
	assert.InDelta(t, 1000.0, first.AvgOrderValue, 1e-9)
	assert.InDelta(t, 7.0/3, first.AvgItemsPerOrder, 1e-9)

	second := rows[1]
	assert.Equal(t, "Saturday", second.Weekday)
	assert.True(t, second.IsWeekend)
	assert.Equal(t, models.DayTypeWeekend, second.DayType)
	assert.Equal(t, models.WeatherSnowy, second.Weather)
}

func TestDailyWithoutOrders(t *testing.T) {
	assert.Empty(t, NewAggregator(menu, ageGroups).Daily(nil, nil))
}

func TestDailyAllTemperaturesMissing(t *testing.T) {
	orders := []models.Order{{ID: 1, CustomerID: 1, OrderedAt: at(2, 9), Weather: models.WeatherRainy, Temperature: math.NaN()}}
	rows := NewAggregator(menu, ageGroups).Daily(orders, nil)
	require.Len(t, rows, 1)
	assert.True(t, math.IsNaN(rows[0].AvgTemperature))
}

func TestDailyIsIdempotent(t *testing.T) {
	orders, items := fixture()
	agg := NewAggregator(menu, ageGroups)
	first := agg.Daily(orders, items)
	second := agg.Daily(orders, items)
	require.Len(t, second, len(first))
	for i := range first {
		// NaN never equals itself, compare the rest field by field
		a, b := first[i], second[i]
		a.AvgTemperature, b.AvgTemperature = 0, 0
		assert.Equal(t, a, b)
	}

	fresh, freshItems := fixture()
	assert.Equal(t, fresh[0].ID, orders[0].ID)
	assert.Equal(t, freshItems, items)
}

func TestModalWeatherTieBreak(t *testing.T) {
	assert.Equal(t, models.WeatherCloudy, modalWeather(map[models.Weather]int{
		models.WeatherSunny:  2,
		models.WeatherCloudy: 2,
		models.WeatherRainy:  1,
	}))
	assert.Equal(t, models.WeatherRainy, modalWeather(map[models.Weather]int{
		models.WeatherSunny: 1,
		models.WeatherRainy: 3,
	}))
}

func TestProducts(t *testing.T) {
	_, items := fixture()
	rows := NewAggregator(menu, ageGroups).Products(items)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].MenuItemID)
	assert.Equal(t, "Blend", rows[0].ItemName)
	assert.Equal(t, 3, rows[0].OrderCount)
	assert.Equal(t, 6, rows[0].QuantitySold)
	assert.Equal(t, int64(2400), rows[0].TotalSales)
	assert.Equal(t, int64(1800), rows[0].TotalProfit)
	assert.InDelta(t, 400.0, rows[0].AverageUnitPrice, 1e-9)
	assert.InDelta(t, 300.0, rows[0].ProfitPerUnit, 1e-9)

	// equal quantities fall back to menu id
	assert.Equal(t, 2, rows[1].MenuItemID)
	assert.Equal(t, 3, rows[2].MenuItemID)
}

func TestSegments(t *testing.T) {
	orders, items := fixture()
	rows := NewAggregator(menu, ageGroups).Segments(orders, items)
	require.Len(t, rows, 4)

	got := make([][2]string, len(rows))
	for i, r := range rows {
		got[i] = [2]string{string(r.Gender), r.AgeGroup}
	}
	assert.Equal(t, [][2]string{
		{"male", "teens"},
		{"male", "thirties"},
		{"female", "twenties"},
		{"female", "thirties"},
	}, got)

	assert.Equal(t, int64(1200), rows[0].TotalSales)
	assert.Equal(t, int64(900), rows[0].TotalProfit)
	assert.Equal(t, 1, rows[0].UniqueCustomers)
	assert.InDelta(t, 1200.0, rows[0].AvgOrderValue, 1e-9)
}

func TestDemographics(t *testing.T) {
	orders, items := fixture()
	rows := NewAggregator(menu, ageGroups).Demographics(orders, items)
	require.Len(t, rows, 5)

	// female thirties ordered coffee and food in one order
	var femaleThirties []models.DemographicSummary
	for _, r := range rows {
		if r.Gender == models.GenderFemale && r.AgeGroup == "thirties" {
			femaleThirties = append(femaleThirties, r)
		}
	}
	require.Len(t, femaleThirties, 2)
	assert.Equal(t, "coffee", femaleThirties[0].CategoryName)
	assert.Equal(t, 1, femaleThirties[0].OrderCount)
	assert.Equal(t, 2, femaleThirties[0].QuantitySold)
	assert.Equal(t, "food", femaleThirties[1].CategoryName)
	assert.Equal(t, int64(600), femaleThirties[1].TotalSales)
}

func TestSummarize(t *testing.T) {
	orders, items := fixture()
	ds := &models.Dataset{MenuItems: menu, Orders: orders, OrderItems: items}
	NewAggregator(ds.MenuItems, ageGroups).Summarize(ds)

	assert.Len(t, ds.DailySummary, 2)
	assert.Len(t, ds.ProductSummary, 3)
	assert.Len(t, ds.SegmentSummary, 4)
	assert.Len(t, ds.DemographicSummary, 5)

	var daily int64
	for _, d := range ds.DailySummary {
		daily += d.TotalSales
	}
	assert.Equal(t, ds.TotalSales(), daily)
}
