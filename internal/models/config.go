package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	DataGeneration DataGenerationConfig `mapstructure:"data_generation"`
	Menu           MenuConfig           `mapstructure:"menu"`
	Customers      CustomersConfig      `mapstructure:"customers"`
	Output         OutputConfig         `mapstructure:"output"`
	DataQuality    DataQualityConfig    `mapstructure:"data_quality"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Kafka          KafkaConfig          `mapstructure:"kafka"`
	CloudStorage   CloudStorageConfig   `mapstructure:"cloud_storage"`
	Logging        LoggingConfig        `mapstructure:"logging"`
}

type DataGenerationConfig struct {
	Seed                 int64              `mapstructure:"seed"` // 0 derives a seed from the clock
	StartDate            time.Time          `mapstructure:"start_date"`
	EndDate              time.Time          `mapstructure:"end_date"`
	BaseCustomersPerHour float64            `mapstructure:"base_customers_per_hour"`
	BusinessHours        BusinessHours      `mapstructure:"business_hours"`
	WeekdayMultiplier    map[int]float64    `mapstructure:"weekday_multiplier"` // 0=Monday .. 6=Sunday
	HourMultiplier       map[int]float64    `mapstructure:"hour_multiplier"`
	WeatherMultiplier    map[string]float64 `mapstructure:"weather_multiplier"`
	SeasonalMultiplier   map[int]float64    `mapstructure:"seasonal_multiplier"` // month 1-12
	SpecialEvents        []SpecialEvent     `mapstructure:"special_events"`
	IDGeneration         IDGenerationConfig `mapstructure:"id_generation"`
}

type BusinessHours struct {
	Open       int   `mapstructure:"open"`
	Close      int   `mapstructure:"close"`
	ClosedDays []int `mapstructure:"closed_days"` // 0=Monday .. 6=Sunday
}

type SpecialEvent struct {
	Date       time.Time `mapstructure:"date"`
	Name       string    `mapstructure:"name"`
	Multiplier float64   `mapstructure:"multiplier"`
}

type IDGenerationConfig struct {
	OrderIDStart    int64 `mapstructure:"order_id_start"`
	CustomerIDStart int64 `mapstructure:"customer_id_start"`
}

type MenuConfig struct {
	Categories []CategoryConfig `mapstructure:"categories"`
	Items      []MenuItemConfig `mapstructure:"items"`
}

type CategoryConfig struct {
	ID          int    `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

type MenuItemConfig struct {
	ID                 int      `mapstructure:"id"`
	CategoryID         int      `mapstructure:"category_id"`
	Name               string   `mapstructure:"name"`
	Price              int64    `mapstructure:"price"`
	Cost               int64    `mapstructure:"cost"`
	AvailableHours     []int    `mapstructure:"available_hours"`
	PopularityWeight   float64  `mapstructure:"popularity_weight"`
	IsSeasonal         bool     `mapstructure:"is_seasonal"`
	SeasonalPreference string   `mapstructure:"seasonal_preference"`
	SeasonalMultiplier *float64 `mapstructure:"seasonal_multiplier"`
}

type CustomersConfig struct {
	AgeGroups          []AgeGroupConfig                         `mapstructure:"age_groups"`
	GenderDistribution map[string]float64                       `mapstructure:"gender_distribution"`
	Preferences        map[string]map[string]map[string]float64 `mapstructure:"preferences"`
	BehavioralPatterns []BehavioralPattern                      `mapstructure:"behavioral_patterns"`
	Registry           RegistryConfig                           `mapstructure:"registry"`
}

type AgeGroupConfig struct {
	Name      string  `mapstructure:"name"`
	MinAge    int     `mapstructure:"min_age"`
	MaxAge    int     `mapstructure:"max_age"`
	BaseRatio float64 `mapstructure:"base_ratio"`
}

type BehavioralPattern struct {
	Name         string       `mapstructure:"name"`
	Conditions   Conditions   `mapstructure:"conditions"`
	Demographics Demographics `mapstructure:"demographics"`
}

type Conditions struct {
	DayTypes []string `mapstructure:"day_types"`
	Hours    []int    `mapstructure:"hours"`
}

// Matches reports whether a visit on the given day type and hour falls under the
// pattern. Both condition sets must contain the visit.
func (c Conditions) Matches(dayType DayType, hour int) bool {
	dayMatch := false
	for _, d := range c.DayTypes {
		if strings.EqualFold(d, string(dayType)) {
			dayMatch = true
			break
		}
	}
	if !dayMatch {
		return false
	}
	for _, h := range c.Hours {
		if h == hour {
			return true
		}
	}
	return false
}

type Demographics struct {
	GenderRatio     map[string]float64 `mapstructure:"gender_ratio"`
	AgeDistribution map[string]float64 `mapstructure:"age_distribution"`
}

type RegistryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Size    int  `mapstructure:"size"`
}

type OutputConfig struct {
	Formats      []string  `mapstructure:"formats"`
	FilePaths    FilePaths `mapstructure:"file_paths"`
	XLSXFile     string    `mapstructure:"xlsx_file"`
	ShowProgress bool      `mapstructure:"show_progress"`
}

type FilePaths struct {
	CSVDir     string `mapstructure:"csv_dir"`
	JSONDir    string `mapstructure:"json_dir"`
	XLSXDir    string `mapstructure:"xlsx_dir"`
	ParquetDir string `mapstructure:"parquet_dir"`
}

type DataQualityConfig struct {
	NoiseInjection NoiseInjectionConfig `mapstructure:"noise_injection"`
}

type NoiseInjectionConfig struct {
	MissingDataRate float64 `mapstructure:"missing_data_rate"`
	OutlierRate     float64 `mapstructure:"outlier_rate"`
	OutlierFactor   int64   `mapstructure:"outlier_factor"`
}

func (n NoiseInjectionConfig) Enabled() bool {
	return n.MissingDataRate > 0 || n.OutlierRate > 0
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Schema   string `mapstructure:"schema"`
}

// ConnString builds a libpq style keyword/value connection string.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type KafkaConfig struct {
	BrokerList       string `mapstructure:"broker_list"`
	TopicPrefix      string `mapstructure:"topic_prefix"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`
}

type CloudStorageConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	Prefix     string `mapstructure:"prefix"`
	Endpoint   string `mapstructure:"endpoint"` // S3 compatible store, empty for AWS
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

var requiredFields = []string{
	"data_generation.start_date",
	"data_generation.end_date",
	"data_generation.base_customers_per_hour",
	"data_generation.business_hours.open",
	"data_generation.business_hours.close",
	"menu.categories",
	"menu.items",
	"customers.age_groups",
}

// field: default value
var optionalFields = map[string]interface{}{
	"data_generation.id_generation.order_id_start":    1,
	"data_generation.id_generation.customer_id_start": 1,
	"customers.registry.size":                         500,
	"output.formats":                                  []string{FormatCSV},
	"output.file_paths.csv_dir":                       "data/csv",
	"output.file_paths.json_dir":                      "data/json",
	"output.file_paths.xlsx_dir":                      "data/xlsx",
	"output.file_paths.parquet_dir":                   "data/parquet",
	"output.xlsx_file":                                "cafe_mock_data.xlsx",
	"output.show_progress":                            true,
	"data_quality.noise_injection.outlier_factor":     10,
	"database.host":                                   "localhost",
	"database.port":                                   5432,
	"database.user":                                   "postgres",
	"database.password":                               "",
	"database.dbname":                                 "cafe_mock_sales",
	"database.sslmode":                                "disable",
	"database.schema":                                 "public",
	"kafka.broker_list":                               "localhost:9092",
	"kafka.topic_prefix":                              "cafesim",
	"cloud_storage.provider":                          "s3",
	"logging.level":                                   "INFO",
}

// flag name: config key
var flagBindings = map[string]string{
	"seed":       "data_generation.seed",
	"start-date": "data_generation.start_date",
	"end-date":   "data_generation.end_date",
	"formats":    "output.formats",
	"log-level":  "logging.level",
}

// LoadConfig reads the configuration file with Viper. Command line flags (when given)
// override file values and CAFESIM_* environment variables override both.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("examples")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("cafesim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for field, defaultValue := range optionalFields {
		v.SetDefault(field, defaultValue)
	}

	if flags != nil {
		for name, key := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var missing []string
	for _, field := range requiredFields {
		if !v.IsSet(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config fields: %s", strings.Join(missing, ", "))
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(DateLayout),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	// an unset --formats flag shadows the default with an empty list
	if len(config.Output.Formats) == 0 {
		config.Output.Formats = []string{FormatCSV}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the cross references a generation run relies on. Every problem found
// is reported, not only the first.
func (cfg *Config) Validate() error {
	var errs []error
	gen := cfg.DataGeneration

	if gen.EndDate.Before(gen.StartDate) {
		errs = append(errs, fmt.Errorf("end_date %s is before start_date %s",
			gen.EndDate.Format(DateLayout), gen.StartDate.Format(DateLayout)))
	}
	if gen.BaseCustomersPerHour < 0 {
		errs = append(errs, fmt.Errorf("base_customers_per_hour must not be negative, got %v", gen.BaseCustomersPerHour))
	}
	bh := gen.BusinessHours
	if bh.Open < 0 || bh.Close > 24 || bh.Open >= bh.Close {
		errs = append(errs, fmt.Errorf("business_hours must satisfy 0 <= open < close <= 24, got open=%d close=%d", bh.Open, bh.Close))
	}
	for _, d := range bh.ClosedDays {
		if d < 0 || d > 6 {
			errs = append(errs, fmt.Errorf("closed_days entry %d outside 0 (Monday) .. 6 (Sunday)", d))
		}
	}

	categories := make(map[int]bool, len(cfg.Menu.Categories))
	for _, c := range cfg.Menu.Categories {
		if categories[c.ID] {
			errs = append(errs, fmt.Errorf("duplicate category id %d", c.ID))
		}
		categories[c.ID] = true
	}
	items := make(map[int]bool, len(cfg.Menu.Items))
	for _, item := range cfg.Menu.Items {
		if items[item.ID] {
			errs = append(errs, fmt.Errorf("duplicate menu item id %d", item.ID))
		}
		items[item.ID] = true
		if !categories[item.CategoryID] {
			errs = append(errs, fmt.Errorf("menu item %d references unknown category %d", item.ID, item.CategoryID))
		}
		if item.PopularityWeight < 0 {
			errs = append(errs, fmt.Errorf("menu item %d has negative popularity_weight", item.ID))
		}
		if item.IsSeasonal {
			if _, ok := ParseSeason(item.SeasonalPreference); !ok {
				errs = append(errs, fmt.Errorf("menu item %d has unknown seasonal_preference %q", item.ID, item.SeasonalPreference))
			}
		}
	}

	groups := make(map[string]bool, len(cfg.Customers.AgeGroups))
	for _, g := range cfg.Customers.AgeGroups {
		groups[strings.ToLower(g.Name)] = true
		if g.MinAge > g.MaxAge {
			errs = append(errs, fmt.Errorf("age group %s has min_age %d above max_age %d", g.Name, g.MinAge, g.MaxAge))
		}
	}
	for _, p := range cfg.Customers.BehavioralPatterns {
		for name := range p.Demographics.AgeDistribution {
			if !groups[strings.ToLower(name)] {
				errs = append(errs, fmt.Errorf("behavioral pattern %s references unknown age group %s", p.Name, name))
			}
		}
	}
	if cfg.usesDefaultDemographics() {
		for _, name := range DefaultAgeGroups {
			if !groups[name] {
				errs = append(errs, fmt.Errorf("age_groups must define %s, the default visitor distribution uses it", name))
			}
		}
	}
	if cfg.Customers.Registry.Enabled && cfg.Customers.Registry.Size <= 0 {
		errs = append(errs, fmt.Errorf("customers.registry.size must be positive when the registry is enabled"))
	}

	nq := cfg.DataQuality.NoiseInjection
	if nq.MissingDataRate < 0 || nq.MissingDataRate > 1 || nq.OutlierRate < 0 || nq.OutlierRate > 1 {
		errs = append(errs, fmt.Errorf("noise injection rates must lie in [0, 1]"))
	}

	for _, f := range cfg.Output.Formats {
		switch strings.ToLower(f) {
		case FormatCSV, FormatJSON, FormatXLSX, FormatParquet, FormatDB, FormatKafka, FormatConsole:
		default:
			errs = append(errs, fmt.Errorf("unsupported output format %q", f))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// DefaultAgeGroups are the brackets drawn when no behavioral pattern matches a visit.
var DefaultAgeGroups = []string{"teens", "twenties", "thirties", "forties", "seniors"}

// usesDefaultDemographics reports whether some open (day type, hour) slot is left
// uncovered by every behavioral pattern.
func (cfg *Config) usesDefaultDemographics() bool {
	bh := cfg.DataGeneration.BusinessHours
	for _, dt := range []DayType{DayTypeWeekday, DayTypeWeekend} {
		for h := bh.Open; h < bh.Close; h++ {
			covered := false
			for _, p := range cfg.Customers.BehavioralPatterns {
				if p.Conditions.Matches(dt, h) {
					covered = true
					break
				}
			}
			if !covered {
				return true
			}
		}
	}
	return false
}

// Multipliers returns the typed demand tables.
func (g DataGenerationConfig) Multipliers() Multipliers {
	m := Multipliers{
		weekday: g.WeekdayMultiplier,
		hour:    g.HourMultiplier,
		weather: make(map[Weather]float64, len(g.WeatherMultiplier)),
		month:   make(map[time.Month]float64, len(g.SeasonalMultiplier)),
	}
	for k, v := range g.WeatherMultiplier {
		m.weather[Weather(strings.ToLower(k))] = v
	}
	for k, v := range g.SeasonalMultiplier {
		m.month[time.Month(k)] = v
	}
	return m
}

// IsClosed reports whether the cafe is closed on the given date's weekday.
func (b BusinessHours) IsClosed(date time.Time) bool {
	idx := WeekdayIndex(date.Weekday())
	for _, d := range b.ClosedDays {
		if d == idx {
			return true
		}
	}
	return false
}

// Multipliers is the read-only set of demand adjustment tables. Every lookup falls
// back to the neutral factor 1.0 when the table has no entry.
type Multipliers struct {
	weekday map[int]float64
	hour    map[int]float64
	weather map[Weather]float64
	month   map[time.Month]float64
}

const neutralFactor = 1.0

func (m Multipliers) Weekday(wd time.Weekday) float64 {
	return lookupFactor(m.weekday, WeekdayIndex(wd))
}

func (m Multipliers) Hour(hour int) float64 {
	return lookupFactor(m.hour, hour)
}

func (m Multipliers) Weather(w Weather) float64 {
	return lookupFactor(m.weather, w)
}

func (m Multipliers) Month(month time.Month) float64 {
	return lookupFactor(m.month, month)
}

func lookupFactor[K comparable](table map[K]float64, key K) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return neutralFactor
}
