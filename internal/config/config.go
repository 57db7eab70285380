package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/chairflow/chairflow/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Pricing    PricingConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// GetDSN returns the postgres connection string
func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// PricingConfig holds the configurable business constants of the pricing
// engine. Values are plain floats/strings at the config boundary and are
// converted to decimals in Policy().
type PricingConfig struct {
	Currency                  string  `mapstructure:"currency"`
	HourlyLaborRate           float64 `mapstructure:"hourly_labor_rate"`
	OverheadRate              float64 `mapstructure:"overhead_rate"`
	UrgentSurchargePercent    float64 `mapstructure:"urgent_surcharge_percent"`
	EmergencySurchargePercent float64 `mapstructure:"emergency_surcharge_percent"`
	FreeTravelRadiusKm        float64 `mapstructure:"free_travel_radius_km"`
	TravelBlockKm             float64 `mapstructure:"travel_block_km"`
	TravelBlockFee            float64 `mapstructure:"travel_block_fee"`
	BulkSelection             string  `mapstructure:"bulk_selection"`
}

// Policy converts the config section into the engine's policy value object.
func (c PricingConfig) Policy() types.PricingPolicy {
	policy := types.DefaultPricingPolicy()
	if c.Currency != "" {
		policy.Currency = c.Currency
	}
	if c.HourlyLaborRate > 0 {
		policy.HourlyLaborRate = decimal.NewFromFloat(c.HourlyLaborRate)
	}
	if c.OverheadRate > 0 {
		policy.OverheadRate = decimal.NewFromFloat(c.OverheadRate)
	}
	if c.UrgentSurchargePercent > 0 {
		policy.UrgentSurchargePercent = decimal.NewFromFloat(c.UrgentSurchargePercent)
	}
	if c.EmergencySurchargePercent > 0 {
		policy.EmergencySurchargePercent = decimal.NewFromFloat(c.EmergencySurchargePercent)
	}
	if c.FreeTravelRadiusKm > 0 {
		policy.FreeTravelRadiusKm = decimal.NewFromFloat(c.FreeTravelRadiusKm)
	}
	if c.TravelBlockKm > 0 {
		policy.TravelBlockKm = decimal.NewFromFloat(c.TravelBlockKm)
	}
	if c.TravelBlockFee > 0 {
		policy.TravelBlockFee = decimal.NewFromFloat(c.TravelBlockFee)
	}
	if c.BulkSelection != "" {
		policy.BulkSelection = types.BulkSelectionPolicy(c.BulkSelection)
	}
	return policy
}

func NewConfig() (*Configuration, error) {
	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/chairflow")

	v.SetEnvPrefix("CHAIRFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !asConfigFileNotFound(err, &notFound) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func asConfigFileNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	if e, ok := err.(viper.ConfigFileNotFoundError); ok {
		*target = e
		return true
	}
	return false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "chairflow")
	v.SetDefault("postgres.dbname", "chairflow")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("pricing.currency", "ZAR")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return c.Pricing.Policy().Validate()
}

// GetDefaultConfig returns a default configuration for local development.
// This is useful for running scripts or tests without a config file.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Pricing:    PricingConfig{Currency: "ZAR"},
	}
}
