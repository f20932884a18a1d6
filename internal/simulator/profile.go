package simulator

import (
	"math/rand"
	"strings"

	"github.com/chrisdamba/cafesim/internal/models"
)

var genderKeys = []string{string(models.GenderMale), string(models.GenderFemale)}

// DefaultDemographics apply to visits no behavioral pattern covers.
var DefaultDemographics = models.Demographics{
	GenderRatio: map[string]float64{
		"male":   0.45,
		"female": 0.55,
	},
	AgeDistribution: map[string]float64{
		"teens":    0.15,
		"twenties": 0.35,
		"thirties": 0.25,
		"forties":  0.15,
		"seniors":  0.10,
	},
}

// ProfileSampler draws visitor demographics. Age brackets are walked in the order they
// are configured so draws are reproducible for a given seed.
type ProfileSampler struct {
	patterns   []models.BehavioralPattern
	groupKeys  []string
	groups     map[string]models.AgeGroupConfig
	baseGender map[string]float64
	baseAge    map[string]float64
}

func NewProfileSampler(cfg models.CustomersConfig) *ProfileSampler {
	p := &ProfileSampler{
		patterns:   cfg.BehavioralPatterns,
		groups:     make(map[string]models.AgeGroupConfig, len(cfg.AgeGroups)),
		baseGender: lowerKeys(cfg.GenderDistribution),
		baseAge:    make(map[string]float64, len(cfg.AgeGroups)),
	}
	for _, g := range cfg.AgeGroups {
		key := strings.ToLower(g.Name)
		p.groupKeys = append(p.groupKeys, key)
		p.groups[key] = g
		p.baseAge[key] = g.BaseRatio
	}
	// default brackets missing from the configuration still need a slot in the walk
	for _, name := range models.DefaultAgeGroups {
		if _, ok := p.groups[name]; !ok {
			p.groupKeys = append(p.groupKeys, name)
		}
	}
	if len(p.baseGender) == 0 {
		p.baseGender = DefaultDemographics.GenderRatio
	}
	return p
}

// Demographics returns the distribution of the first pattern matching the visit, or
// the default distribution with an empty pattern name.
func (p *ProfileSampler) Demographics(dayType models.DayType, hour int) (models.Demographics, string) {
	for _, pattern := range p.patterns {
		if pattern.Conditions.Matches(dayType, hour) {
			return pattern.Demographics, pattern.Name
		}
	}
	return DefaultDemographics, ""
}

// Sample draws the profile of one visit on the given day type and hour.
func (p *ProfileSampler) Sample(rng *rand.Rand, dayType models.DayType, hour int) models.Profile {
	demographics, _ := p.Demographics(dayType, hour)
	return p.draw(rng, lowerKeys(demographics.GenderRatio), lowerKeys(demographics.AgeDistribution))
}

// SampleBase draws from the population-wide gender distribution and bracket base
// ratios. The customer registry is built from these.
func (p *ProfileSampler) SampleBase(rng *rand.Rand) models.Profile {
	return p.draw(rng, p.baseGender, p.baseAge)
}

func (p *ProfileSampler) draw(rng *rand.Rand, genderProbs, ageProbs map[string]float64) models.Profile {
	gender := categorical(rng, genderKeys, genderProbs)
	groupKey := categorical(rng, p.groupKeys, ageProbs)

	profile := models.Profile{Gender: models.Gender(gender), AgeGroup: groupKey}
	if group, ok := p.groups[groupKey]; ok {
		profile.AgeGroup = group.Name
		profile.Age = uniformInt(rng, group.MinAge, group.MaxAge)
	}
	return profile
}

func lowerKeys(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
