package models

type Category struct {
	ID          int    `json:"category_id"`
	Name        string `json:"category_name"`
	Description string `json:"description"`
}

type MenuItem struct {
	ID                 int     `json:"menu_id"`
	CategoryID         int     `json:"category_id"`
	CategoryName       string  `json:"category_name"`
	Name               string  `json:"item_name"`
	Price              int64   `json:"price"`
	Cost               int64   `json:"cost"`
	AvailableHours     []int   `json:"available_hours"`
	PopularityWeight   float64 `json:"popularity_weight"`
	IsSeasonal         bool    `json:"is_seasonal"`
	SeasonalPreference Season  `json:"seasonal_preference"`
	SeasonalMultiplier float64 `json:"seasonal_multiplier"`
}

// AvailableAt reports whether the item can be ordered during the given hour of day.
func (m *MenuItem) AvailableAt(hour int) bool {
	for _, h := range m.AvailableHours {
		if h == hour {
			return true
		}
	}
	return false
}

// ProfitMargin is (price - cost) / price, or 0 for items given away for free.
func (m *MenuItem) ProfitMargin() float64 {
	if m.Price == 0 {
		return 0
	}
	return float64(m.Price-m.Cost) / float64(m.Price)
}

// UnitProfit is the profit of a single sold unit.
func (m *MenuItem) UnitProfit() int64 {
	return m.Price - m.Cost
}
