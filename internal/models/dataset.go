package models

import "time"

// RunInfo identifies one generation run.
type RunInfo struct {
	RunID       string    `json:"run_id"`
	Seed        int64     `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// Dataset holds every table produced by one run.
type Dataset struct {
	Run                RunInfo
	Categories         []Category
	MenuItems          []MenuItem
	Customers          []Customer
	Orders             []Order
	OrderItems         []OrderItem
	DailySummary       []DailySummary
	ProductSummary     []ProductSummary
	SegmentSummary     []SegmentSummary
	DemographicSummary []DemographicSummary
}

func (d *Dataset) MenuItemByID() map[int]*MenuItem {
	index := make(map[int]*MenuItem, len(d.MenuItems))
	for i := range d.MenuItems {
		index[d.MenuItems[i].ID] = &d.MenuItems[i]
	}
	return index
}

// TotalSales sums order totals.
func (d *Dataset) TotalSales() int64 {
	var total int64
	for _, o := range d.Orders {
		total += o.TotalAmount
	}
	return total
}
