package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/chrisdamba/cafesim/internal/models"
)

const consolePreviewRows = 5

// ConsoleOutput prints a data overview followed by the first rows of every table.
type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteDataset(ds *models.Dataset) error {
	var b strings.Builder
	fmt.Fprintln(&b, "=== Data overview ===")
	fmt.Fprintf(&b, "Run: %s (seed %d)\n", ds.Run.RunID, ds.Run.Seed)
	fmt.Fprintf(&b, "Period: %s to %s\n",
		ds.Run.StartDate.Format(models.DateLayout), ds.Run.EndDate.Format(models.DateLayout))
	fmt.Fprintf(&b, "Orders: %d, order items: %d, days with sales: %d\n",
		len(ds.Orders), len(ds.OrderItems), len(ds.DailySummary))
	if len(ds.Customers) > 0 {
		fmt.Fprintf(&b, "Registered customers: %d\n", len(ds.Customers))
	}

	var profit int64
	for _, d := range ds.DailySummary {
		profit += d.TotalProfit
	}
	sales := ds.TotalSales()
	fmt.Fprintf(&b, "Total sales: %d, total profit: %d\n", sales, profit)
	if len(ds.Orders) > 0 {
		fmt.Fprintf(&b, "Average order value: %.1f\n", float64(sales)/float64(len(ds.Orders)))
	}

	byGender := make(map[models.Gender]int)
	var genders []models.Gender
	for _, s := range ds.SegmentSummary {
		if _, ok := byGender[s.Gender]; !ok {
			genders = append(genders, s.Gender)
		}
		byGender[s.Gender] += s.OrderCount
	}
	fmt.Fprintln(&b, "\nOrders by gender:")
	for _, g := range genders {
		fmt.Fprintf(&b, "  %-8s %d\n", g, byGender[g])
	}

	byAge := make(map[string]int)
	var ages []string
	for _, s := range ds.SegmentSummary {
		if _, ok := byAge[s.AgeGroup]; !ok {
			ages = append(ages, s.AgeGroup)
		}
		byAge[s.AgeGroup] += s.OrderCount
	}
	fmt.Fprintln(&b, "\nOrders by age group:")
	for _, a := range ages {
		fmt.Fprintf(&b, "  %-10s %d\n", a, byAge[a])
	}

	byCategory := make(map[string]int64)
	for _, p := range ds.ProductSummary {
		byCategory[p.CategoryName] += p.TotalSales
	}
	categories := make([]string, 0, len(byCategory))
	for name := range byCategory {
		categories = append(categories, name)
	}
	sort.Slice(categories, func(i, j int) bool {
		if byCategory[categories[i]] != byCategory[categories[j]] {
			return byCategory[categories[i]] > byCategory[categories[j]]
		}
		return categories[i] < categories[j]
	})
	fmt.Fprintln(&b, "\nSales by category:")
	for _, name := range categories {
		fmt.Fprintf(&b, "  %-12s %d\n", name, byCategory[name])
	}
	fmt.Fprintln(&b)

	_, err := io.WriteString(c.w, b.String())
	return err
}

func (c *ConsoleOutput) WriteTable(table *models.Table) error {
	if _, err := fmt.Fprintf(c.w, "[%s] %d rows\n", table.Name, len(table.Rows)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	tw := tabwriter.NewWriter(c.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Header(), "\t"))
	for i, row := range table.Rows {
		if i == consolePreviewRows {
			break
		}
		cells := make([]string, len(row))
		for j, column := range table.Columns {
			cells[j] = models.FormatCell(column, row[j])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.w)
	return err
}

func (c *ConsoleOutput) Close() error {
	return nil
}
