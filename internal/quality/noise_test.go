package quality

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(n int) ([]models.Order, []models.OrderItem) {
	orders := make([]models.Order, n)
	items := make([]models.OrderItem, n)
	for i := 0; i < n; i++ {
		orders[i] = models.Order{
			ID:          int64(i + 1),
			OrderedAt:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			Temperature: 12,
			TotalAmount: 500,
		}
		items[i] = models.OrderItem{OrderID: int64(i + 1), MenuItemID: 1, Quantity: 1, UnitPrice: 500, Subtotal: 500}
	}
	return orders, items
}

func TestNoiseInjectorApply(t *testing.T) {
	orders, items := records(50)
	injector := NewNoiseInjector(models.NoiseInjectionConfig{
		MissingDataRate: 0.1,
		OutlierRate:     0.05,
		OutlierFactor:   10,
	}, rand.New(rand.NewSource(1)))

	noisyOrders, noisyItems := injector.Apply(orders, items)
	require.Len(t, noisyOrders, 50)
	require.Len(t, noisyItems, 50)

	missing := 0
	for i, o := range noisyOrders {
		if math.IsNaN(o.Temperature) {
			missing++
		} else {
			assert.Equal(t, 12.0, o.Temperature)
		}
		// totals are left as generated
		assert.Equal(t, int64(500), o.TotalAmount)
		assert.Equal(t, orders[i].ID, o.ID)
	}
	assert.Equal(t, 5, missing)

	outliers := 0
	for _, it := range noisyItems {
		switch it.UnitPrice {
		case 5000:
			outliers++
			assert.Equal(t, int64(5000), it.Subtotal)
		case 500:
			assert.Equal(t, int64(500), it.Subtotal)
		default:
			t.Fatalf("unexpected unit price %d", it.UnitPrice)
		}
	}
	assert.Equal(t, 2, outliers)
}

func TestNoiseInjectorLeavesInputsUntouched(t *testing.T) {
	orders, items := records(20)
	injector := NewNoiseInjector(models.NoiseInjectionConfig{MissingDataRate: 1, OutlierRate: 1}, rand.New(rand.NewSource(2)))

	noisyOrders, noisyItems := injector.Apply(orders, items)
	for i := range orders {
		assert.Equal(t, 12.0, orders[i].Temperature)
		assert.Equal(t, int64(500), items[i].UnitPrice)
		assert.True(t, math.IsNaN(noisyOrders[i].Temperature))
		// default factor
		assert.Equal(t, int64(5000), noisyItems[i].UnitPrice)
	}
}

func TestNoiseInjectorZeroRates(t *testing.T) {
	orders, items := records(10)
	noisyOrders, noisyItems := NewNoiseInjector(models.NoiseInjectionConfig{}, rand.New(rand.NewSource(3))).Apply(orders, items)
	assert.Equal(t, orders, noisyOrders)
	assert.Equal(t, items, noisyItems)

	emptyOrders, emptyItems := NewNoiseInjector(models.NoiseInjectionConfig{MissingDataRate: 0.5}, rand.New(rand.NewSource(3))).Apply(nil, nil)
	assert.Empty(t, emptyOrders)
	assert.Empty(t, emptyItems)
}
