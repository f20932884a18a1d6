package simulator

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/cafesim/internal/factories"
	"github.com/chrisdamba/cafesim/internal/models"
)

// CustomerRegistry is the fixed population visits are drawn from when the registry is
// enabled. Customers accumulate order statistics as the run progresses.
type CustomerRegistry struct {
	customers []models.Customer
	index     map[int64]int
}

func NewCustomerRegistry(rng *rand.Rand, size int, sampler *ProfileSampler, ids *Sequence, startDate time.Time) *CustomerRegistry {
	factory := factories.NewCustomerFactory(rng)
	r := &CustomerRegistry{
		customers: make([]models.Customer, 0, size),
		index:     make(map[int64]int, size),
	}
	for i := 0; i < size; i++ {
		profile := sampler.SampleBase(rng)
		c := factory.CreateCustomer(ids.Next(), profile, startDate)
		r.index[c.ID] = len(r.customers)
		r.customers = append(r.customers, c)
	}
	return r
}

// Pick draws a customer uniformly.
func (r *CustomerRegistry) Pick(rng *rand.Rand) *models.Customer {
	if len(r.customers) == 0 {
		return nil
	}
	return &r.customers[rng.Intn(len(r.customers))]
}

func (r *CustomerRegistry) RecordOrder(order models.Order) {
	if i, ok := r.index[order.CustomerID]; ok {
		r.customers[i].RecordOrder(order.TotalAmount)
	}
}

func (r *CustomerRegistry) Len() int {
	return len(r.customers)
}

// Customers returns a snapshot of the registry.
func (r *CustomerRegistry) Customers() []models.Customer {
	return append([]models.Customer(nil), r.customers...)
}
