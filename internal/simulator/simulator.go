package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/chrisdamba/cafesim/internal/factories"
	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/output"
	"github.com/chrisdamba/cafesim/internal/quality"
	"github.com/chrisdamba/cafesim/internal/summary"
	"github.com/lucsky/cuid"
	"github.com/op/go-logging"
	"github.com/schollz/progressbar/v3"
)

var log = logging.MustGetLogger("cafesim")

// Simulator generates one dataset. All randomness flows from Rng, so a fixed seed
// reproduces the run exactly.
type Simulator struct {
	Config     *models.Config
	Seed       int64
	Rng        *rand.Rand
	Categories []models.Category
	MenuItems  []models.MenuItem

	demand      *DemandEstimator
	profiles    *ProfileSampler
	selector    *ItemSelector
	assembler   *OrderAssembler
	customerIDs *Sequence
	registry    *CustomerRegistry
}

func NewSimulator(config *models.Config) *Simulator {
	seed := config.DataGeneration.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		log.Infof("no seed configured, using %d", seed)
	}

	menuItemFactory := &factories.MenuItemFactory{}
	sim := &Simulator{
		Config:     config,
		Seed:       seed,
		Rng:        rand.New(rand.NewSource(seed)),
		Categories: menuItemFactory.CreateCategories(config.Menu),
		MenuItems:  menuItemFactory.CreateMenuItems(config.Menu),
	}
	sim.demand = NewDemandEstimator(config.DataGeneration)
	sim.profiles = NewProfileSampler(config.Customers)
	sim.selector = NewItemSelector(sim.MenuItems, config.Customers.Preferences)
	sim.assembler = NewOrderAssembler(NewSequence(config.DataGeneration.IDGeneration.OrderIDStart))
	sim.customerIDs = NewSequence(config.DataGeneration.IDGeneration.CustomerIDStart)
	return sim
}

// Run generates the dataset, summarises it, optionally injects noise and exports it
// to every configured sink.
func (s *Simulator) Run(ctx context.Context) error {
	ds, err := s.Generate()
	if err != nil {
		return err
	}

	ageGroups := make([]string, len(s.Config.Customers.AgeGroups))
	for i, g := range s.Config.Customers.AgeGroups {
		ageGroups[i] = g.Name
	}
	summary.NewAggregator(ds.MenuItems, ageGroups).Summarize(ds)

	if noise := s.Config.DataQuality.NoiseInjection; noise.Enabled() {
		log.Info("injecting noise into orders and order items")
		ds.Orders, ds.OrderItems = quality.NewNoiseInjector(noise, s.Rng).Apply(ds.Orders, ds.OrderItems)
	}

	if err := output.NewExporter(s.Config).Export(ctx, ds); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

// Generate walks every day and business hour of the configured range and records the
// resulting orders. Summary tables are left empty.
func (s *Simulator) Generate() (*models.Dataset, error) {
	gen := s.Config.DataGeneration
	start, end := truncateDay(gen.StartDate), truncateDay(gen.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			end.Format(models.DateLayout), start.Format(models.DateLayout))
	}

	if reg := s.Config.Customers.Registry; reg.Enabled {
		s.registry = NewCustomerRegistry(s.Rng, reg.Size, s.profiles, s.customerIDs, start)
		log.Infof("created customer registry with %d customers", s.registry.Len())
	}

	ds := &models.Dataset{
		Run: models.RunInfo{
			RunID:       cuid.New(),
			Seed:        s.Seed,
			GeneratedAt: time.Now().UTC(),
			StartDate:   start,
			EndDate:     end,
		},
		Categories: s.Categories,
		MenuItems:  s.MenuItems,
	}

	days := int(end.Sub(start).Hours()/24) + 1
	bar := s.newProgressBar(days)
	log.Infof("simulation starts from %s to %s (%d days)",
		start.Format(models.DateLayout), end.Format(models.DateLayout), days)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		s.simulateDay(date, ds)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if s.registry != nil {
		ds.Customers = s.registry.Customers()
	}
	log.Infof("generated %d orders with %d order items", len(ds.Orders), len(ds.OrderItems))
	return ds, nil
}

func (s *Simulator) simulateDay(date time.Time, ds *models.Dataset) {
	hours := s.Config.DataGeneration.BusinessHours
	if hours.IsClosed(date) {
		log.Debugf("%s is a closed day", date.Format(models.DateLayout))
		return
	}

	weather := SampleWeather(s.Rng, date)
	dayType := models.DayTypeOf(date)
	for hour := hours.Open; hour < hours.Close; hour++ {
		arrivals := s.demand.Arrivals(s.Rng, date, hour, weather.Condition)
		for i := 0; i < arrivals; i++ {
			s.simulateVisit(date, hour, dayType, weather, ds)
		}
	}
}

func (s *Simulator) simulateVisit(date time.Time, hour int, dayType models.DayType, weather DayWeather, ds *models.Dataset) {
	var customer *models.Customer
	var profile models.Profile
	if s.registry != nil {
		customer = s.registry.Pick(s.Rng)
		profile = customer.Profile()
	} else {
		profile = s.profiles.Sample(s.Rng, dayType, hour)
	}

	selections := s.selector.Select(s.Rng, hour, profile, date)
	if len(selections) == 0 {
		return
	}

	visit := Visit{
		Profile: profile,
		Date:    date,
		Hour:    hour,
		Minute:  s.Rng.Intn(60),
		Second:  s.Rng.Intn(60),
		Weather: weather,
	}
	if customer != nil {
		visit.CustomerID = customer.ID
	} else {
		visit.CustomerID = s.customerIDs.Next()
	}

	order, items, ok := s.assembler.Assemble(visit, selections)
	if !ok {
		return
	}
	ds.Orders = append(ds.Orders, order)
	ds.OrderItems = append(ds.OrderItems, items...)
	if s.registry != nil {
		s.registry.RecordOrder(order)
	}
}

func (s *Simulator) newProgressBar(days int) *progressbar.ProgressBar {
	if !s.Config.Output.ShowProgress {
		return progressbar.DefaultSilent(int64(days))
	}
	return progressbar.NewOptions(days,
		progressbar.OptionSetDescription("generating orders"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
