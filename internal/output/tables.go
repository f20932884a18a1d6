package output

import (
	"strconv"
	"strings"

	"github.com/chrisdamba/cafesim/internal/models"
)

const (
	TableCategories         = "categories"
	TableMenuItems          = "menu_items"
	TableCustomers          = "customers"
	TableOrders             = "orders"
	TableOrderItems         = "order_items"
	TableDailySummary       = "daily_summary"
	TableProductSummary     = "product_summary"
	TableSegmentSummary     = "segment_summary"
	TableDemographicSummary = "demographic_summary"
)

func col(name string, t models.ColumnType) models.Column {
	return models.Column{Name: name, Type: t}
}

// Tables flattens a dataset into the tables every sink writes. The customers table is
// only present when the run kept a customer registry.
func Tables(ds *models.Dataset) []models.Table {
	tables := []models.Table{
		categoriesTable(ds.Categories),
		menuItemsTable(ds.MenuItems),
	}
	if len(ds.Customers) > 0 {
		tables = append(tables, customersTable(ds.Customers))
	}
	return append(tables,
		ordersTable(ds.Orders),
		orderItemsTable(ds.OrderItems),
		dailySummaryTable(ds.DailySummary),
		productSummaryTable(ds.ProductSummary),
		segmentSummaryTable(ds.SegmentSummary),
		demographicSummaryTable(ds.DemographicSummary),
	)
}

func categoriesTable(categories []models.Category) models.Table {
	t := models.Table{
		Name: TableCategories,
		Columns: []models.Column{
			col("category_id", models.ColumnInt),
			col("category_name", models.ColumnString),
			col("description", models.ColumnString),
		},
	}
	for _, c := range categories {
		t.Rows = append(t.Rows, []interface{}{int64(c.ID), c.Name, c.Description})
	}
	return t
}

func menuItemsTable(items []models.MenuItem) models.Table {
	t := models.Table{
		Name: TableMenuItems,
		Columns: []models.Column{
			col("menu_id", models.ColumnInt),
			col("category_id", models.ColumnInt),
			col("category_name", models.ColumnString),
			col("item_name", models.ColumnString),
			col("price", models.ColumnInt),
			col("cost", models.ColumnInt),
			col("profit_margin", models.ColumnFloat),
			col("available_hours", models.ColumnString),
			col("popularity_weight", models.ColumnFloat),
			col("is_seasonal", models.ColumnBool),
			col("seasonal_preference", models.ColumnString),
			col("seasonal_multiplier", models.ColumnFloat),
		},
	}
	for _, m := range items {
		t.Rows = append(t.Rows, []interface{}{
			int64(m.ID), int64(m.CategoryID), m.CategoryName, m.Name,
			m.Price, m.Cost, m.ProfitMargin(), joinHours(m.AvailableHours),
			m.PopularityWeight, m.IsSeasonal, string(m.SeasonalPreference), m.SeasonalMultiplier,
		})
	}
	return t
}

func customersTable(customers []models.Customer) models.Table {
	t := models.Table{
		Name: TableCustomers,
		Columns: []models.Column{
			col("customer_id", models.ColumnInt),
			col("name", models.ColumnString),
			col("age", models.ColumnInt),
			col("age_group", models.ColumnString),
			col("gender", models.ColumnString),
			col("visit_frequency", models.ColumnString),
			col("average_order_value", models.ColumnFloat),
			col("order_count", models.ColumnInt),
			col("registration_date", models.ColumnDate),
			col("is_active", models.ColumnBool),
		},
	}
	for _, c := range customers {
		t.Rows = append(t.Rows, []interface{}{
			c.ID, c.Name, int64(c.Age), c.AgeGroup, string(c.Gender), c.VisitFrequency,
			c.AverageOrderValue, int64(c.OrderCount), c.RegistrationDate, c.IsActive,
		})
	}
	return t
}

func ordersTable(orders []models.Order) models.Table {
	t := models.Table{
		Name: TableOrders,
		Columns: []models.Column{
			col("order_id", models.ColumnInt),
			col("customer_id", models.ColumnInt),
			col("order_datetime", models.ColumnTimestamp),
			col("hour", models.ColumnInt),
			col("weather_condition", models.ColumnString),
			col("temperature", models.ColumnFloat),
			col("is_weekend", models.ColumnBool),
			col("season", models.ColumnString),
			col("gender", models.ColumnString),
			col("age_group", models.ColumnString),
			col("age", models.ColumnInt),
			col("total_amount", models.ColumnInt),
		},
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []interface{}{
			o.ID, o.CustomerID, o.OrderedAt, int64(o.Hour), string(o.Weather), o.Temperature,
			o.IsWeekend, string(o.Season), string(o.Gender), o.AgeGroup, int64(o.Age), o.TotalAmount,
		})
	}
	return t
}

func orderItemsTable(items []models.OrderItem) models.Table {
	t := models.Table{
		Name: TableOrderItems,
		Columns: []models.Column{
			col("order_id", models.ColumnInt),
			col("menu_id", models.ColumnInt),
			col("quantity", models.ColumnInt),
			col("unit_price", models.ColumnInt),
			col("subtotal", models.ColumnInt),
		},
	}
	for _, it := range items {
		t.Rows = append(t.Rows, []interface{}{
			it.OrderID, int64(it.MenuItemID), int64(it.Quantity), it.UnitPrice, it.Subtotal,
		})
	}
	return t
}

func dailySummaryTable(rows []models.DailySummary) models.Table {
	t := models.Table{
		Name: TableDailySummary,
		Columns: []models.Column{
			col("date", models.ColumnDate),
			col("weekday", models.ColumnString),
			col("season", models.ColumnString),
			col("day_type", models.ColumnString),
			col("total_orders", models.ColumnInt),
			col("unique_customers", models.ColumnInt),
			col("total_sales", models.ColumnInt),
			col("total_items_sold", models.ColumnInt),
			col("total_profit", models.ColumnInt),
			col("avg_temperature", models.ColumnFloat),
			col("weather_condition", models.ColumnString),
			col("is_weekend", models.ColumnBool),
			col("avg_order_value", models.ColumnFloat),
			col("avg_items_per_order", models.ColumnFloat),
		},
	}
	for _, d := range rows {
		t.Rows = append(t.Rows, []interface{}{
			d.Date, d.Weekday, string(d.Season), string(d.DayType),
			int64(d.TotalOrders), int64(d.UniqueCustomers), d.TotalSales, int64(d.TotalItemsSold),
			d.TotalProfit, d.AvgTemperature, string(d.Weather), d.IsWeekend,
			d.AvgOrderValue, d.AvgItemsPerOrder,
		})
	}
	return t
}

func productSummaryTable(rows []models.ProductSummary) models.Table {
	t := models.Table{
		Name: TableProductSummary,
		Columns: []models.Column{
			col("menu_id", models.ColumnInt),
			col("item_name", models.ColumnString),
			col("category_name", models.ColumnString),
			col("order_count", models.ColumnInt),
			col("quantity_sold", models.ColumnInt),
			col("total_sales", models.ColumnInt),
			col("avg_unit_price", models.ColumnFloat),
			col("total_profit", models.ColumnInt),
			col("profit_per_unit", models.ColumnFloat),
		},
	}
	for _, p := range rows {
		t.Rows = append(t.Rows, []interface{}{
			int64(p.MenuItemID), p.ItemName, p.CategoryName, int64(p.OrderCount),
			int64(p.QuantitySold), p.TotalSales, p.AverageUnitPrice, p.TotalProfit, p.ProfitPerUnit,
		})
	}
	return t
}

func segmentSummaryTable(rows []models.SegmentSummary) models.Table {
	t := models.Table{
		Name: TableSegmentSummary,
		Columns: []models.Column{
			col("gender", models.ColumnString),
			col("age_group", models.ColumnString),
			col("order_count", models.ColumnInt),
			col("total_sales", models.ColumnInt),
			col("avg_order_value", models.ColumnFloat),
			col("total_profit", models.ColumnInt),
			col("unique_customers", models.ColumnInt),
		},
	}
	for _, s := range rows {
		t.Rows = append(t.Rows, []interface{}{
			string(s.Gender), s.AgeGroup, int64(s.OrderCount), s.TotalSales,
			s.AvgOrderValue, s.TotalProfit, int64(s.UniqueCustomers),
		})
	}
	return t
}

func demographicSummaryTable(rows []models.DemographicSummary) models.Table {
	t := models.Table{
		Name: TableDemographicSummary,
		Columns: []models.Column{
			col("gender", models.ColumnString),
			col("age_group", models.ColumnString),
			col("category_name", models.ColumnString),
			col("order_count", models.ColumnInt),
			col("quantity_sold", models.ColumnInt),
			col("total_sales", models.ColumnInt),
			col("unique_customers", models.ColumnInt),
		},
	}
	for _, d := range rows {
		t.Rows = append(t.Rows, []interface{}{
			string(d.Gender), d.AgeGroup, d.CategoryName, int64(d.OrderCount),
			int64(d.QuantitySold), d.TotalSales, int64(d.UniqueCustomers),
		})
	}
	return t
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ",")
}
