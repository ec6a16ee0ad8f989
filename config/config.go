package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider names accepted by MARKETDATA_PROVIDER.
const (
	ProviderYahoo    = "yahoo"
	ProviderFMP      = "fmp"
	ProviderPostgres = "postgres"
)

// DateLayout is the calendar date format used by the collector and the API.
const DateLayout = "2006-01-02"

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	MARKETDATA_PROVIDER=fmp
//	FMP_API_KEY=secret
//	DASHBOARD_SYMBOL=AAPL
//	DASHBOARD_START=2022-01-01
//	DASHBOARD_END=2022-12-31
type Config struct {
	Server     ServerConfig     // HTTP server configuration
	MarketData MarketDataConfig // Upstream price provider selection
	Postgres   PostgresConfig   // Only used when MarketData.Provider is "postgres"
	Dashboard  DashboardConfig  // Initial values of the collector form
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Requests per client IP per minute
}

// MarketDataConfig selects and configures the price provider.
//
// Fields:
//   - Provider: one of "yahoo", "fmp", "postgres".
//   - FMPAPIKey: API key for financialmodelingprep.com (required for "fmp").
//   - FMPBaseURL: base URL of the FMP stable API.
//   - Timeout: per-fetch HTTP timeout.
type MarketDataConfig struct {
	Provider   string
	FMPAPIKey  string
	FMPBaseURL string
	Timeout    time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// DashboardConfig holds the defaults shown in the collector before the first trigger.
type DashboardConfig struct {
	Symbol    string
	StartDate string
	EndDate   string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("MARKETDATA_PROVIDER", ProviderYahoo)
	viper.SetDefault("MARKETDATA_TIMEOUT", 30)
	viper.SetDefault("FMP_API_KEY", "")
	viper.SetDefault("FMP_BASE_URL", "https://financialmodelingprep.com/stable")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "candleview")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("DASHBOARD_SYMBOL", "AAPL")
	viper.SetDefault("DASHBOARD_START", "2022-01-01")
	viper.SetDefault("DASHBOARD_END", "2022-12-31")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		MarketData: MarketDataConfig{
			Provider:   strings.ToLower(strings.TrimSpace(viper.GetString("MARKETDATA_PROVIDER"))),
			FMPAPIKey:  viper.GetString("FMP_API_KEY"),
			FMPBaseURL: strings.TrimRight(viper.GetString("FMP_BASE_URL"), "/"),
			Timeout:    time.Duration(viper.GetInt("MARKETDATA_TIMEOUT")) * time.Second,
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Dashboard: DashboardConfig{
			Symbol:    viper.GetString("DASHBOARD_SYMBOL"),
			StartDate: viper.GetString("DASHBOARD_START"),
			EndDate:   viper.GetString("DASHBOARD_END"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig terminates the application if required variables are missing.
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}

// missingKeys lists every required key that is absent or invalid in cfg.
// Provider-specific keys are only checked for the selected provider.
func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.MarketData.Timeout <= 0 {
		missing = append(missing, "MARKETDATA_TIMEOUT")
	}
	if _, err := time.Parse(DateLayout, cfg.Dashboard.StartDate); err != nil {
		missing = append(missing, "DASHBOARD_START")
	}
	if _, err := time.Parse(DateLayout, cfg.Dashboard.EndDate); err != nil {
		missing = append(missing, "DASHBOARD_END")
	}

	switch cfg.MarketData.Provider {
	case ProviderYahoo:
	case ProviderFMP:
		if cfg.MarketData.FMPAPIKey == "" {
			missing = append(missing, "FMP_API_KEY")
		}
		if cfg.MarketData.FMPBaseURL == "" {
			missing = append(missing, "FMP_BASE_URL")
		}
	case ProviderPostgres:
		if cfg.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if cfg.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	default:
		missing = append(missing, "MARKETDATA_PROVIDER")
	}

	return missing
}
