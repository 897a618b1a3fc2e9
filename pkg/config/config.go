package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Plan defaults
	BaseBudget  int64 // default monthly investment in yen
	MinPurchase int64 // default per-fund purchase floor for rebalancing

	// External data
	Market    MarketConfig
	Valuation ValuationConfig

	// Crash thresholds
	Thresholds ThresholdConfig

	// Notification
	LINE LINEConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// MarketConfig holds market index data source configuration.
type MarketConfig struct {
	BaseURL       string
	VIXSymbol     string
	HomeSymbol    string // Nikkei 225
	ForeignSymbol string // S&P 500
}

// ValuationConfig holds Buffett indicator configuration.
type ValuationConfig struct {
	HomeURL        string
	ForeignURL     string
	HomeDefault    float64 // manual fallback, percent
	ForeignDefault float64
}

// ThresholdConfig holds the three crash-signal thresholds.
type ThresholdConfig struct {
	VolatilityHigh float64 // VIX above this is a fear spike
	ValuationLow   float64 // Buffett indicator below this is cheap, percent
	DrawdownSevere float64 // 3-month index change at or below this, percent
}

// LINEConfig holds LINE Notify configuration.
type LINEConfig struct {
	Token  string
	APIURL string
}

// SchedulerConfig holds the monthly evaluation schedule.
type SchedulerConfig struct {
	Enabled bool
	// Cron spec with seconds. The plan is evaluated on the 14th of every
	// month, the day before the automatic purchase on the 15th.
	EvaluationSpec string
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		BaseBudget:  getEnvAsInt64("BASE_BUDGET", 300_000),
		MinPurchase: getEnvAsInt64("MIN_PURCHASE", 3_000),

		Market: MarketConfig{
			BaseURL:       getEnv("MARKET_BASE_URL", "https://query1.finance.yahoo.com"),
			VIXSymbol:     getEnv("MARKET_VIX_SYMBOL", "^VIX"),
			HomeSymbol:    getEnv("MARKET_HOME_SYMBOL", "^N225"),
			ForeignSymbol: getEnv("MARKET_FOREIGN_SYMBOL", "^GSPC"),
		},

		Valuation: ValuationConfig{
			HomeURL:        getEnv("BUFFETT_HOME_URL", "https://nikkeiyosoku.com/buffett/"),
			ForeignURL:     getEnv("BUFFETT_FOREIGN_URL", "https://nikkeiyosoku.com/buffett_us/"),
			HomeDefault:    getEnvAsFloat("BUFFETT_HOME_DEFAULT", 120.0),
			ForeignDefault: getEnvAsFloat("BUFFETT_FOREIGN_DEFAULT", 180.0),
		},

		Thresholds: ThresholdConfig{
			VolatilityHigh: getEnvAsFloat("THRESHOLD_VIX", 30.0),
			ValuationLow:   getEnvAsFloat("THRESHOLD_VALUATION", 80.0),
			DrawdownSevere: getEnvAsFloat("THRESHOLD_DRAWDOWN", -20.0),
		},

		LINE: LINEConfig{
			Token:  getEnv("LINE_NOTIFY_TOKEN", ""),
			APIURL: getEnv("LINE_NOTIFY_URL", "https://notify-api.line.me/api/notify"),
		},

		Scheduler: SchedulerConfig{
			Enabled:        getEnvAsBool("SCHEDULER_ENABLED", true),
			EvaluationSpec: getEnv("SCHEDULER_EVALUATION_SPEC", "0 0 9 14 * *"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.BaseBudget <= 0 {
		return fmt.Errorf("BASE_BUDGET must be positive, got %d", c.BaseBudget)
	}

	if c.MinPurchase < 0 {
		return fmt.Errorf("MIN_PURCHASE must not be negative, got %d", c.MinPurchase)
	}

	return nil
}

// LINEConfigured reports whether a LINE Notify token is present.
func (c *Config) LINEConfigured() bool {
	return c.LINE.Token != ""
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
