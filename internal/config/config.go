package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DateLayout is the ISO calendar date format used for all date parameters.
const DateLayout = "2006-01-02"

// Config holds all configuration for finsynth
type Config struct {
	// Dataset generation configuration
	Generate GenerateConfig `mapstructure:"generate"`

	// Warehouse connection settings (load command)
	Database DatabaseConfig `mapstructure:"database"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
}

// GenerateConfig holds the parameters of one dataset generation run.
// Everything here is an input of the pipeline; the fixed probability tables
// live in defaults.go and are compile-time constants.
type GenerateConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	// Output directory for generated CSV files
	OutputDir string `mapstructure:"output_dir"`

	// Compress output with xz (creates .csv.xz files)
	Compress bool `mapstructure:"compress"`

	// Dataset window, inclusive ISO dates
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// Volume settings
	NumCustomers   int `mapstructure:"num_customers"`
	NumProducts    int `mapstructure:"num_products"`
	NumCostCenters int `mapstructure:"num_cost_centers"`

	// Economic parameters, all in [0,1]
	AnnualChurnRate float64 `mapstructure:"annual_churn_rate"`
	BaseMargin      float64 `mapstructure:"base_margin"`
	OpexRatio       float64 `mapstructure:"opex_ratio"`

	// Per-year macro shock multipliers; unlisted years default to 1.0
	MacroShocks map[int]float64 `mapstructure:"macro_shocks"`

	// Per-quarter revenue seasonality multipliers (keys 1-4);
	// unlisted quarters default to 1.0
	Seasonality map[int]float64 `mapstructure:"seasonality"`
}

// DatabaseConfig holds warehouse connection settings
type DatabaseConfig struct {
	// Connection string (DSN)
	// Format: user:password@tcp(host:port)/database
	DSN string `mapstructure:"dsn"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Seed:            DefaultSeed,
			OutputDir:       "./output",
			StartDate:       DefaultStartDate,
			EndDate:         DefaultEndDate,
			NumCustomers:    DefaultNumCustomers,
			NumProducts:     DefaultNumProducts,
			NumCostCenters:  DefaultNumCostCenters,
			AnnualChurnRate: DefaultAnnualChurnRate,
			BaseMargin:      DefaultBaseMargin,
			OpexRatio:       DefaultOpexRatio,
			MacroShocks:     DefaultMacroShocks(),
			Seasonality:     DefaultSeasonality(),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 1 * time.Minute,
		},
		Verbose: false,
	}
}

// Load reads configuration from viper into a Config struct
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Window parses the configured dataset window. Call Validate first.
func (g *GenerateConfig) Window() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, g.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", g.StartDate, err)
	}
	end, err = time.Parse(DateLayout, g.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", g.EndDate, err)
	}
	return start, end, nil
}

// Validate checks if the configuration is valid. All violations are
// collected so a user can fix them in one pass; generation must not start
// if this returns an error.
func (c *Config) Validate() error {
	var errs []string

	g := &c.Generate

	start, serr := time.Parse(DateLayout, g.StartDate)
	if serr != nil {
		errs = append(errs, fmt.Sprintf("generate.start_date %q is not a valid ISO date", g.StartDate))
	}
	end, eerr := time.Parse(DateLayout, g.EndDate)
	if eerr != nil {
		errs = append(errs, fmt.Sprintf("generate.end_date %q is not a valid ISO date", g.EndDate))
	}
	if serr == nil && eerr == nil && end.Before(start) {
		errs = append(errs, "generate.end_date must not be before generate.start_date")
	}

	if g.NumCustomers <= 0 {
		errs = append(errs, "generate.num_customers must be positive")
	}
	if g.NumProducts <= 0 {
		errs = append(errs, "generate.num_products must be positive")
	}
	if g.NumCostCenters <= 0 {
		errs = append(errs, "generate.num_cost_centers must be positive")
	}

	if g.AnnualChurnRate < 0 || g.AnnualChurnRate > 1 {
		errs = append(errs, "generate.annual_churn_rate must be between 0.0 and 1.0")
	}
	if g.BaseMargin < 0 || g.BaseMargin > 1 {
		errs = append(errs, "generate.base_margin must be between 0.0 and 1.0")
	}
	if g.OpexRatio < 0 || g.OpexRatio > 1 {
		errs = append(errs, "generate.opex_ratio must be between 0.0 and 1.0")
	}

	for year, mult := range g.MacroShocks {
		if mult < 0 {
			errs = append(errs, fmt.Sprintf("generate.macro_shocks[%d] must be non-negative", year))
		}
	}
	for quarter, mult := range g.Seasonality {
		if quarter < 1 || quarter > 4 {
			errs = append(errs, fmt.Sprintf("generate.seasonality key %d must be a quarter (1-4)", quarter))
		}
		if mult < 0 {
			errs = append(errs, fmt.Sprintf("generate.seasonality[%d] must be non-negative", quarter))
		}
	}

	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "database.max_open_conns must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "database.max_idle_conns must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
