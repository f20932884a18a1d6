package summary

import (
	"math"
	"sort"
	"strings"
	"time"

	roaring "github.com/RoaringBitmap/roaring/roaring64"
	"github.com/chrisdamba/cafesim/internal/models"
)

// Aggregator rolls orders and order items up into summary tables. It never mutates its
// inputs; summarising the same records twice yields identical rows.
type Aggregator struct {
	menu     map[int]*models.MenuItem
	ageOrder map[string]int
}

// NewAggregator indexes the menu for cost lookups. ageGroups fixes the row order of the
// segment tables; brackets not listed sort after it alphabetically.
func NewAggregator(menu []models.MenuItem, ageGroups []string) *Aggregator {
	a := &Aggregator{
		menu:     make(map[int]*models.MenuItem, len(menu)),
		ageOrder: make(map[string]int, len(ageGroups)),
	}
	for i := range menu {
		a.menu[menu[i].ID] = &menu[i]
	}
	for i, g := range ageGroups {
		a.ageOrder[strings.ToLower(g)] = i
	}
	return a
}

// Summarize fills every summary table of the dataset from its orders and order items.
func (a *Aggregator) Summarize(ds *models.Dataset) {
	ds.DailySummary = a.Daily(ds.Orders, ds.OrderItems)
	ds.ProductSummary = a.Products(ds.OrderItems)
	ds.SegmentSummary = a.Segments(ds.Orders, ds.OrderItems)
	ds.DemographicSummary = a.Demographics(ds.Orders, ds.OrderItems)
}

type dailyAcc struct {
	date         time.Time
	isWeekend    bool
	orders       int
	customers    *roaring.Bitmap
	sales        int64
	items        int
	profit       int64
	tempSum      float64
	tempCount    int
	weatherCount map[models.Weather]int
}

// Daily produces one row per calendar date that has at least one order, ordered by date.
func (a *Aggregator) Daily(orders []models.Order, items []models.OrderItem) []models.DailySummary {
	byOrder := itemsByOrder(items)
	groups := make(map[string]*dailyAcc)
	var keys []string

	for i := range orders {
		o := &orders[i]
		key := o.OrderedAt.Format(models.DateLayout)
		acc, ok := groups[key]
		if !ok {
			// the weekend flag is carried from the group's first order
			acc = &dailyAcc{
				date:         o.Date(),
				isWeekend:    o.IsWeekend,
				customers:    roaring.New(),
				weatherCount: make(map[models.Weather]int),
			}
			groups[key] = acc
			keys = append(keys, key)
		}
		acc.orders++
		acc.customers.Add(uint64(o.CustomerID))
		if o.HasTemperature() {
			acc.tempSum += o.Temperature
			acc.tempCount++
		}
		acc.weatherCount[o.Weather]++
		for _, item := range byOrder[o.ID] {
			acc.sales += item.Subtotal
			acc.items += item.Quantity
			acc.profit += a.lineProfit(item)
		}
	}

	sort.Strings(keys)
	rows := make([]models.DailySummary, 0, len(keys))
	for _, key := range keys {
		acc := groups[key]
		row := models.DailySummary{
			Date:            acc.date,
			Weekday:         acc.date.Weekday().String(),
			Season:          models.SeasonOf(acc.date.Month()),
			DayType:         models.DayTypeOf(acc.date),
			TotalOrders:     acc.orders,
			UniqueCustomers: int(acc.customers.GetCardinality()),
			TotalSales:      acc.sales,
			TotalItemsSold:  acc.items,
			TotalProfit:     acc.profit,
			AvgTemperature:  math.NaN(),
			Weather:         modalWeather(acc.weatherCount),
			IsWeekend:       acc.isWeekend,
		}
		if acc.tempCount > 0 {
			row.AvgTemperature = acc.tempSum / float64(acc.tempCount)
		}
		// groups are never empty, the guard keeps the ratios finite regardless
		if acc.orders > 0 {
			row.AvgOrderValue = float64(acc.sales) / float64(acc.orders)
			row.AvgItemsPerOrder = float64(acc.items) / float64(acc.orders)
		}
		rows = append(rows, row)
	}
	return rows
}

// Products summarises sales per menu item, best sellers first.
func (a *Aggregator) Products(items []models.OrderItem) []models.ProductSummary {
	groups := make(map[int]*models.ProductSummary)
	for _, item := range items {
		row, ok := groups[item.MenuItemID]
		if !ok {
			row = &models.ProductSummary{MenuItemID: item.MenuItemID}
			if m, found := a.menu[item.MenuItemID]; found {
				row.ItemName = m.Name
				row.CategoryName = m.CategoryName
			}
			groups[item.MenuItemID] = row
		}
		row.OrderCount++
		row.QuantitySold += item.Quantity
		row.TotalSales += item.Subtotal
		row.TotalProfit += a.lineProfit(item)
	}

	rows := make([]models.ProductSummary, 0, len(groups))
	for _, row := range groups {
		if row.QuantitySold > 0 {
			row.AverageUnitPrice = float64(row.TotalSales) / float64(row.QuantitySold)
			row.ProfitPerUnit = float64(row.TotalProfit) / float64(row.QuantitySold)
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].QuantitySold != rows[j].QuantitySold {
			return rows[i].QuantitySold > rows[j].QuantitySold
		}
		return rows[i].MenuItemID < rows[j].MenuItemID
	})
	return rows
}

type segmentKey struct {
	gender   models.Gender
	ageGroup string
}

type segmentAcc struct {
	orders    int
	sales     int64
	profit    int64
	customers *roaring.Bitmap
}

// Segments summarises orders per (gender, age group) segment.
func (a *Aggregator) Segments(orders []models.Order, items []models.OrderItem) []models.SegmentSummary {
	byOrder := itemsByOrder(items)
	groups := make(map[segmentKey]*segmentAcc)
	for i := range orders {
		o := &orders[i]
		key := segmentKey{o.Gender, o.AgeGroup}
		acc, ok := groups[key]
		if !ok {
			acc = &segmentAcc{customers: roaring.New()}
			groups[key] = acc
		}
		acc.orders++
		acc.sales += o.TotalAmount
		acc.customers.Add(uint64(o.CustomerID))
		for _, item := range byOrder[o.ID] {
			acc.profit += a.lineProfit(item)
		}
	}

	keys := make([]segmentKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return a.segmentLess(keys[i], keys[j]) })

	rows := make([]models.SegmentSummary, 0, len(keys))
	for _, k := range keys {
		acc := groups[k]
		row := models.SegmentSummary{
			Gender:          k.gender,
			AgeGroup:        k.ageGroup,
			OrderCount:      acc.orders,
			TotalSales:      acc.sales,
			TotalProfit:     acc.profit,
			UniqueCustomers: int(acc.customers.GetCardinality()),
		}
		if acc.orders > 0 {
			row.AvgOrderValue = float64(acc.sales) / float64(acc.orders)
		}
		rows = append(rows, row)
	}
	return rows
}

type demographicKey struct {
	segmentKey
	category string
}

// Demographics breaks item sales down by gender, age group and menu category.
func (a *Aggregator) Demographics(orders []models.Order, items []models.OrderItem) []models.DemographicSummary {
	byOrder := itemsByOrder(items)
	groups := make(map[demographicKey]*models.DemographicSummary)
	customers := make(map[demographicKey]*roaring.Bitmap)
	orderSeen := make(map[demographicKey]int64)

	for i := range orders {
		o := &orders[i]
		for _, item := range byOrder[o.ID] {
			category := ""
			if m, ok := a.menu[item.MenuItemID]; ok {
				category = m.CategoryName
			}
			key := demographicKey{segmentKey{o.Gender, o.AgeGroup}, category}
			row, ok := groups[key]
			if !ok {
				row = &models.DemographicSummary{Gender: o.Gender, AgeGroup: o.AgeGroup, CategoryName: category}
				groups[key] = row
				customers[key] = roaring.New()
				orderSeen[key] = -1
			}
			// an order counts once per category even with several lines in it
			if orderSeen[key] != o.ID {
				row.OrderCount++
				orderSeen[key] = o.ID
			}
			row.QuantitySold += item.Quantity
			row.TotalSales += item.Subtotal
			customers[key].Add(uint64(o.CustomerID))
		}
	}

	keys := make([]demographicKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].segmentKey != keys[j].segmentKey {
			return a.segmentLess(keys[i].segmentKey, keys[j].segmentKey)
		}
		return keys[i].category < keys[j].category
	})

	rows := make([]models.DemographicSummary, 0, len(keys))
	for _, k := range keys {
		row := groups[k]
		row.UniqueCustomers = int(customers[k].GetCardinality())
		rows = append(rows, *row)
	}
	return rows
}

func (a *Aggregator) lineProfit(item models.OrderItem) int64 {
	m, ok := a.menu[item.MenuItemID]
	if !ok {
		return item.Subtotal
	}
	return item.Subtotal - m.Cost*int64(item.Quantity)
}

func (a *Aggregator) segmentLess(x, y segmentKey) bool {
	if x.gender != y.gender {
		return genderRank(x.gender) < genderRank(y.gender)
	}
	xi, xok := a.ageOrder[strings.ToLower(x.ageGroup)]
	yi, yok := a.ageOrder[strings.ToLower(y.ageGroup)]
	switch {
	case xok && yok:
		return xi < yi
	case xok != yok:
		return xok
	default:
		return x.ageGroup < y.ageGroup
	}
}

func genderRank(g models.Gender) int {
	switch g {
	case models.GenderMale:
		return 0
	case models.GenderFemale:
		return 1
	default:
		return 2
	}
}

// modalWeather returns the most frequent condition; ties go to the alphabetically
// first name.
func modalWeather(counts map[models.Weather]int) models.Weather {
	var best models.Weather
	bestCount := -1
	for w, c := range counts {
		if c > bestCount || (c == bestCount && w < best) {
			best, bestCount = w, c
		}
	}
	return best
}

func itemsByOrder(items []models.OrderItem) map[int64][]models.OrderItem {
	byOrder := make(map[int64][]models.OrderItem)
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	return byOrder
}
