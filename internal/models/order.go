package models

import (
	"math"
	"time"
)

type Order struct {
	ID          int64     `json:"order_id"`
	CustomerID  int64     `json:"customer_id"`
	OrderedAt   time.Time `json:"order_datetime"`
	Hour        int       `json:"hour"`
	Weather     Weather   `json:"weather_condition"`
	Temperature float64   `json:"temperature"` // NaN when missing
	IsWeekend   bool      `json:"is_weekend"`
	Season      Season    `json:"season"`
	Gender      Gender    `json:"gender"`
	AgeGroup    string    `json:"age_group"`
	Age         int       `json:"age"`
	TotalAmount int64     `json:"total_amount"`
}

// Date truncates the order timestamp to its calendar day.
func (o *Order) Date() time.Time {
	y, m, d := o.OrderedAt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, o.OrderedAt.Location())
}

func (o *Order) HasTemperature() bool {
	return !math.IsNaN(o.Temperature)
}

type OrderItem struct {
	OrderID    int64 `json:"order_id"`
	MenuItemID int   `json:"menu_id"`
	Quantity   int   `json:"quantity"`
	UnitPrice  int64 `json:"unit_price"`
	Subtotal   int64 `json:"subtotal"`
}
