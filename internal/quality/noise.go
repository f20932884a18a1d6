package quality

import (
	"math"
	"math/rand"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("cafesim")

const defaultOutlierFactor = 10

// NoiseInjector degrades a copy of the generated records for data-cleaning exercises:
// it blanks order temperatures and inflates order-line prices.
type NoiseInjector struct {
	cfg models.NoiseInjectionConfig
	rng *rand.Rand
}

func NewNoiseInjector(cfg models.NoiseInjectionConfig, rng *rand.Rand) *NoiseInjector {
	if cfg.OutlierFactor <= 0 {
		cfg.OutlierFactor = defaultOutlierFactor
	}
	return &NoiseInjector{cfg: cfg, rng: rng}
}

// Apply returns noisy copies of orders and items; the inputs are left untouched.
// floor(n x rate) distinct orders lose their temperature and floor(m x rate) distinct
// lines get unit price and subtotal multiplied by the outlier factor. Order totals are
// not recomputed, so outlier lines no longer add up to their order.
func (n *NoiseInjector) Apply(orders []models.Order, items []models.OrderItem) ([]models.Order, []models.OrderItem) {
	noisyOrders := append([]models.Order(nil), orders...)
	noisyItems := append([]models.OrderItem(nil), items...)

	missing := n.pick(len(noisyOrders), n.cfg.MissingDataRate)
	for _, i := range missing {
		noisyOrders[i].Temperature = math.NaN()
	}

	outliers := n.pick(len(noisyItems), n.cfg.OutlierRate)
	for _, i := range outliers {
		noisyItems[i].UnitPrice *= n.cfg.OutlierFactor
		noisyItems[i].Subtotal *= n.cfg.OutlierFactor
	}

	log.Infof("noise injection: %d missing temperatures, %d price outliers", len(missing), len(outliers))
	return noisyOrders, noisyItems
}

// pick samples floor(size x rate) distinct indices.
func (n *NoiseInjector) pick(size int, rate float64) []int {
	if size == 0 || rate <= 0 {
		return nil
	}
	count := int(float64(size) * rate)
	if count > size {
		count = size
	}
	return n.rng.Perm(size)[:count]
}
