package factories

import (
	"math"
	"math/rand"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/jaswdr/faker"
)

const (
	priorOrderValueMean   = 800.0
	priorOrderValueStdDev = 200.0
	priorOrderValueFloor  = 300.0
	registrationWindow    = 365 // days after the start date
)

var visitFrequencyRatios = []struct {
	name  string
	ratio float64
}{
	{models.VisitFrequencyRegular, 0.3},
	{models.VisitFrequencyOccasional, 0.5},
	{models.VisitFrequencyRare, 0.2},
}

// CustomerFactory creates registry customers. Names come from a faker seeded off the
// run's random source so a fixed seed reproduces the whole registry.
type CustomerFactory struct {
	rng  *rand.Rand
	fake faker.Faker
}

func NewCustomerFactory(rng *rand.Rand) *CustomerFactory {
	return &CustomerFactory{
		rng:  rng,
		fake: faker.NewWithSeed(rand.NewSource(rng.Int63())),
	}
}

func (cf *CustomerFactory) CreateCustomer(id int64, profile models.Profile, startDate time.Time) models.Customer {
	return models.Customer{
		ID:                id,
		Name:              cf.name(profile.Gender),
		Age:               profile.Age,
		AgeGroup:          profile.AgeGroup,
		Gender:            profile.Gender,
		VisitFrequency:    cf.assignVisitFrequency(),
		AverageOrderValue: cf.priorOrderValue(),
		RegistrationDate:  startDate.AddDate(0, 0, cf.rng.Intn(registrationWindow)),
		IsActive:          true,
	}
}

func (cf *CustomerFactory) name(gender models.Gender) string {
	person := cf.fake.Person()
	if gender == models.GenderMale {
		return person.FirstNameMale() + " " + person.LastName()
	}
	return person.FirstNameFemale() + " " + person.LastName()
}

func (cf *CustomerFactory) assignVisitFrequency() string {
	r := cf.rng.Float64()
	cumulative := 0.0
	for _, f := range visitFrequencyRatios {
		cumulative += f.ratio
		if r < cumulative {
			return f.name
		}
	}
	return models.VisitFrequencyRare
}

func (cf *CustomerFactory) priorOrderValue() float64 {
	v := priorOrderValueMean + cf.rng.NormFloat64()*priorOrderValueStdDev
	return math.Max(priorOrderValueFloor, v)
}
