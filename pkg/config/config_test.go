package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8089" {
		t.Errorf("Expected Port to be 8089, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.BaseBudget != 300_000 {
		t.Errorf("Expected BaseBudget to be 300000, got %d", cfg.BaseBudget)
	}

	if cfg.MinPurchase != 3_000 {
		t.Errorf("Expected MinPurchase to be 3000, got %d", cfg.MinPurchase)
	}

	if cfg.Market.VIXSymbol != "^VIX" {
		t.Errorf("Expected VIX symbol ^VIX, got %s", cfg.Market.VIXSymbol)
	}

	if cfg.Thresholds.DrawdownSevere != -20.0 {
		t.Errorf("Expected drawdown threshold -20, got %f", cfg.Thresholds.DrawdownSevere)
	}

	if cfg.Scheduler.EvaluationSpec != "0 0 9 14 * *" {
		t.Errorf("Expected monthly evaluation spec, got %s", cfg.Scheduler.EvaluationSpec)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("BASE_BUDGET", "500000")
	os.Setenv("THRESHOLD_VIX", "35")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("BASE_BUDGET")
		os.Unsetenv("THRESHOLD_VIX")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.BaseBudget != 500_000 {
		t.Errorf("Expected BaseBudget to be 500000, got %d", cfg.BaseBudget)
	}

	if cfg.Thresholds.VolatilityHigh != 35.0 {
		t.Errorf("Expected VIX threshold 35, got %f", cfg.Thresholds.VolatilityHigh)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateNonPositiveBudget(t *testing.T) {
	os.Setenv("BASE_BUDGET", "0")
	defer os.Unsetenv("BASE_BUDGET")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when BASE_BUDGET is zero, got nil")
	}
}

func TestLINEConfigured(t *testing.T) {
	os.Setenv("LINE_NOTIFY_TOKEN", "token-abc")
	defer os.Unsetenv("LINE_NOTIFY_TOKEN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.LINEConfigured() {
		t.Error("Expected LINEConfigured() to be true when token is set")
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	os.Setenv("TEST_FLOAT", "12.5")
	defer os.Unsetenv("TEST_FLOAT")

	value := getEnvAsFloat("TEST_FLOAT", 1.0)
	if value != 12.5 {
		t.Errorf("Expected value to be 12.5, got %f", value)
	}
}

func TestGetEnvAsInt64(t *testing.T) {
	os.Setenv("TEST_INT", "100000")
	defer os.Unsetenv("TEST_INT")

	value := getEnvAsInt64("TEST_INT", 50)
	if value != 100_000 {
		t.Errorf("Expected value to be 100000, got %d", value)
	}
}
