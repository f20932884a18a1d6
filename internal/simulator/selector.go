package simulator

import (
	"math/rand"
	"strings"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
)

// a visit performs 1, 2 or 3 independent draws
var (
	drawCounts       = []int{1, 2, 3}
	drawCountWeights = []float64{0.6, 0.3, 0.1}
)

// Selection is one order line: an item and how many times it was drawn.
type Selection struct {
	Item     *models.MenuItem
	Quantity int
}

// ItemSelector draws the items of a visit, weighting each available item by
// popularity, seasonal adjustment and the visitor's category preference.
type ItemSelector struct {
	menu        []*models.MenuItem
	preferences map[string]map[string]map[string]float64 // gender -> age group -> category
}

func NewItemSelector(menu []models.MenuItem, preferences map[string]map[string]map[string]float64) *ItemSelector {
	s := &ItemSelector{
		menu:        make([]*models.MenuItem, len(menu)),
		preferences: make(map[string]map[string]map[string]float64, len(preferences)),
	}
	for i := range menu {
		s.menu[i] = &menu[i]
	}
	for gender, byAge := range preferences {
		ages := make(map[string]map[string]float64, len(byAge))
		for age, byCategory := range byAge {
			ages[strings.ToLower(age)] = lowerKeys(byCategory)
		}
		s.preferences[strings.ToLower(gender)] = ages
	}
	return s
}

// Candidates returns the items orderable during hour, in menu order.
func (s *ItemSelector) Candidates(hour int) []*models.MenuItem {
	var candidates []*models.MenuItem
	for _, item := range s.menu {
		if item.AvailableAt(hour) {
			candidates = append(candidates, item)
		}
	}
	return candidates
}

// Weight is popularity x seasonal adjustment x category preference.
func (s *ItemSelector) Weight(item *models.MenuItem, profile models.Profile, date time.Time) float64 {
	return item.PopularityWeight * seasonalAdjustment(item, date) * s.categoryPreference(profile, item.CategoryName)
}

func (s *ItemSelector) categoryPreference(profile models.Profile, category string) float64 {
	byAge, ok := s.preferences[strings.ToLower(string(profile.Gender))]
	if !ok {
		return 1.0
	}
	byCategory, ok := byAge[strings.ToLower(profile.AgeGroup)]
	if !ok {
		return 1.0
	}
	if v, ok := byCategory[strings.ToLower(category)]; ok {
		return v
	}
	return 1.0
}

func seasonalAdjustment(item *models.MenuItem, date time.Time) float64 {
	if item.IsSeasonal && models.SeasonOf(date.Month()) == item.SeasonalPreference {
		return item.SeasonalMultiplier
	}
	return 1.0
}

// Select draws the items of one visit. Repeat draws of an item raise its quantity;
// lines keep the order in which items were first drawn. The result is empty when
// nothing is available at hour or every candidate weight is zero.
func (s *ItemSelector) Select(rng *rand.Rand, hour int, profile models.Profile, date time.Time) []Selection {
	candidates := s.Candidates(hour)
	if len(candidates) == 0 {
		return nil
	}

	weights := make([]float64, len(candidates))
	for i, item := range candidates {
		weights[i] = s.Weight(item, profile, date)
	}

	draws := drawCounts[weightedIndex(rng, drawCountWeights)]

	var selections []Selection
	lineOf := make(map[int]int)
	for i := 0; i < draws; i++ {
		idx := weightedIndex(rng, weights)
		if idx < 0 {
			return nil
		}
		item := candidates[idx]
		if line, ok := lineOf[item.ID]; ok {
			selections[line].Quantity++
			continue
		}
		lineOf[item.ID] = len(selections)
		selections = append(selections, Selection{Item: item, Quantity: 1})
	}
	return selections
}
