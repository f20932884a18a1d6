package models

import "time"

// Profile is the demographic draw behind a single visit.
type Profile struct {
	Gender   Gender `json:"gender"`
	AgeGroup string `json:"age_group"`
	Age      int    `json:"age"`
}

// Customer is a registered customer. Only the registry variant of the generator
// creates these; otherwise every visit is an anonymous Profile.
type Customer struct {
	ID                int64     `json:"customer_id"`
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	AgeGroup          string    `json:"age_group"`
	Gender            Gender    `json:"gender"`
	VisitFrequency    string    `json:"visit_frequency"`
	AverageOrderValue float64   `json:"average_order_value"`
	OrderCount        int       `json:"order_count"`
	RegistrationDate  time.Time `json:"registration_date"`
	IsActive          bool      `json:"is_active"`
}

func (c *Customer) Profile() Profile {
	return Profile{Gender: c.Gender, AgeGroup: c.AgeGroup, Age: c.Age}
}

// RecordOrder folds an order total into the running average. The first order replaces
// the prior the registry was seeded with.
func (c *Customer) RecordOrder(total int64) {
	if c.OrderCount == 0 {
		c.AverageOrderValue = float64(total)
	} else {
		c.AverageOrderValue += (float64(total) - c.AverageOrderValue) / float64(c.OrderCount+1)
	}
	c.OrderCount++
}
