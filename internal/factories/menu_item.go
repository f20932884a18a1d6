package factories

import (
	"sort"

	"github.com/chrisdamba/cafesim/internal/models"
)

type MenuItemFactory struct{}

// CreateCategories copies the configured categories in configuration order.
func (mf *MenuItemFactory) CreateCategories(cfg models.MenuConfig) []models.Category {
	categories := make([]models.Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		categories = append(categories, models.Category{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
		})
	}
	return categories
}

// CreateMenuItems resolves category names and seasonal settings for every configured
// item. Items keep their configuration order.
func (mf *MenuItemFactory) CreateMenuItems(cfg models.MenuConfig) []models.MenuItem {
	names := make(map[int]string, len(cfg.Categories))
	for _, c := range cfg.Categories {
		names[c.ID] = c.Name
	}

	items := make([]models.MenuItem, 0, len(cfg.Items))
	for _, ic := range cfg.Items {
		items = append(items, mf.CreateMenuItem(ic, names[ic.CategoryID]))
	}
	return items
}

func (mf *MenuItemFactory) CreateMenuItem(ic models.MenuItemConfig, categoryName string) models.MenuItem {
	hours := append([]int(nil), ic.AvailableHours...)
	sort.Ints(hours)

	item := models.MenuItem{
		ID:                 ic.ID,
		CategoryID:         ic.CategoryID,
		CategoryName:       categoryName,
		Name:               ic.Name,
		Price:              ic.Price,
		Cost:               ic.Cost,
		AvailableHours:     hours,
		PopularityWeight:   ic.PopularityWeight,
		IsSeasonal:         ic.IsSeasonal,
		SeasonalMultiplier: 1.0,
	}
	if ic.IsSeasonal {
		item.SeasonalPreference, _ = models.ParseSeason(ic.SeasonalPreference)
		if ic.SeasonalMultiplier != nil {
			item.SeasonalMultiplier = *ic.SeasonalMultiplier
		}
	}
	return item
}
