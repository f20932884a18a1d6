package simulator

import (
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
)

// Sequence hands out monotonically increasing identifiers for one run.
type Sequence struct {
	next int64
}

func NewSequence(start int64) *Sequence {
	if start < 1 {
		start = 1
	}
	return &Sequence{next: start}
}

func (s *Sequence) Next() int64 {
	id := s.next
	s.next++
	return id
}

// Peek returns the identifier the next call to Next will hand out.
func (s *Sequence) Peek() int64 {
	return s.next
}

// Visit carries everything about one arrival except what was ordered.
type Visit struct {
	CustomerID int64
	Profile    models.Profile
	Date       time.Time
	Hour       int
	Minute     int
	Second     int
	Weather    DayWeather
}

func (v Visit) Timestamp() time.Time {
	y, m, d := v.Date.Date()
	return time.Date(y, m, d, v.Hour, v.Minute, v.Second, 0, v.Date.Location())
}

// OrderAssembler prices selections into orders.
type OrderAssembler struct {
	orderIDs *Sequence
}

func NewOrderAssembler(orderIDs *Sequence) *OrderAssembler {
	return &OrderAssembler{orderIDs: orderIDs}
}

// Assemble builds one order and a line per selection. An empty selection produces no
// order and consumes no identifier.
func (a *OrderAssembler) Assemble(visit Visit, selections []Selection) (models.Order, []models.OrderItem, bool) {
	if len(selections) == 0 {
		return models.Order{}, nil, false
	}

	order := models.Order{
		ID:          a.orderIDs.Next(),
		CustomerID:  visit.CustomerID,
		OrderedAt:   visit.Timestamp(),
		Hour:        visit.Hour,
		Weather:     visit.Weather.Condition,
		Temperature: visit.Weather.Temperature,
		IsWeekend:   models.IsWeekend(visit.Date),
		Season:      models.SeasonOf(visit.Date.Month()),
		Gender:      visit.Profile.Gender,
		AgeGroup:    visit.Profile.AgeGroup,
		Age:         visit.Profile.Age,
	}

	items := make([]models.OrderItem, 0, len(selections))
	for _, sel := range selections {
		subtotal := sel.Item.Price * int64(sel.Quantity)
		items = append(items, models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: sel.Item.ID,
			Quantity:   sel.Quantity,
			UnitPrice:  sel.Item.Price,
			Subtotal:   subtotal,
		})
		order.TotalAmount += subtotal
	}
	return order, items, true
}
