package models

import "time"

type DailySummary struct {
	Date             time.Time `json:"date"`
	Weekday          string    `json:"weekday"`
	Season           Season    `json:"season"`
	DayType          DayType   `json:"day_type"`
	TotalOrders      int       `json:"total_orders"`
	UniqueCustomers  int       `json:"unique_customers"`
	TotalSales       int64     `json:"total_sales"`
	TotalItemsSold   int       `json:"total_items_sold"`
	TotalProfit      int64     `json:"total_profit"`
	AvgTemperature   float64   `json:"avg_temperature"` // NaN when no order carried a temperature
	Weather          Weather   `json:"weather_condition"`
	IsWeekend        bool      `json:"is_weekend"`
	AvgOrderValue    float64   `json:"avg_order_value"`
	AvgItemsPerOrder float64   `json:"avg_items_per_order"`
}

type ProductSummary struct {
	MenuItemID       int     `json:"menu_id"`
	ItemName         string  `json:"item_name"`
	CategoryName     string  `json:"category_name"`
	OrderCount       int     `json:"order_count"`
	QuantitySold     int     `json:"quantity_sold"`
	TotalSales       int64   `json:"total_sales"`
	AverageUnitPrice float64 `json:"avg_unit_price"`
	TotalProfit      int64   `json:"total_profit"`
	ProfitPerUnit    float64 `json:"profit_per_unit"`
}

type SegmentSummary struct {
	Gender          Gender  `json:"gender"`
	AgeGroup        string  `json:"age_group"`
	OrderCount      int     `json:"order_count"`
	TotalSales      int64   `json:"total_sales"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	TotalProfit     int64   `json:"total_profit"`
	UniqueCustomers int     `json:"unique_customers"`
}

type DemographicSummary struct {
	Gender          Gender `json:"gender"`
	AgeGroup        string `json:"age_group"`
	CategoryName    string `json:"category_name"`
	OrderCount      int    `json:"order_count"`
	QuantitySold    int    `json:"quantity_sold"`
	TotalSales      int64  `json:"total_sales"`
	UniqueCustomers int    `json:"unique_customers"`
}
