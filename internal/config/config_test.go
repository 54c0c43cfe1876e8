package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// 1. Setup Required Envs (to bypass validation)
	required := map[string]string{
		"TELEGRAM_BOT_TOKEN": "test_token",
		"OPENROUTER_API_KEY": "test_key",
	}

	for k, v := range required {
		os.Setenv(k, v)
		defer os.Unsetenv(k) // Clean up
	}

	// 2. Ensure Optional Envs are Unset
	optionals := []string{
		"OPENROUTER_MODEL",
		"MONITOR_INTERVAL_MINS",
		"UP_THRESHOLD_PCT",
		"DOWN_THRESHOLD_PCT",
		"POSITIONS_FILE",
	}

	for _, k := range optionals {
		os.Unsetenv(k)
	}

	// 3. Load Config
	cfg := Load()

	// 4. Verify Defaults
	if cfg.Model != "mistralai/mistral-7b-instruct" {
		t.Errorf("Expected default model, got '%s'", cfg.Model)
	}

	if cfg.MonitorIntervalMins != 60 {
		t.Errorf("Expected MonitorIntervalMins 60, got %d", cfg.MonitorIntervalMins)
	}

	if cfg.UpThresholdPct != 3.0 {
		t.Errorf("Expected UpThresholdPct 3.0, got %f", cfg.UpThresholdPct)
	}

	if cfg.DownThresholdPct != -2.0 {
		t.Errorf("Expected DownThresholdPct -2.0, got %f", cfg.DownThresholdPct)
	}

	if cfg.PositionsFile != "positions.json" {
		t.Errorf("Expected positions.json, got %s", cfg.PositionsFile)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	envs := map[string]string{
		"TELEGRAM_BOT_TOKEN":    "test_token",
		"OPENROUTER_API_KEY":    "test_key",
		"MONITOR_INTERVAL_MINS": "15",
		"UP_THRESHOLD_PCT":      "5.5",
		"DOWN_THRESHOLD_PCT":    "-1.0",
	}
	for k, v := range envs {
		os.Setenv(k, v)
		defer os.Unsetenv(k)
	}

	cfg := Load()

	if cfg.MonitorIntervalMins != 15 {
		t.Errorf("Expected MonitorIntervalMins 15, got %d", cfg.MonitorIntervalMins)
	}
	if cfg.UpThresholdPct != 5.5 {
		t.Errorf("Expected UpThresholdPct 5.5, got %f", cfg.UpThresholdPct)
	}
	if cfg.DownThresholdPct != -1.0 {
		t.Errorf("Expected DownThresholdPct -1.0, got %f", cfg.DownThresholdPct)
	}
}

func TestGetEnvAsFloat64_Invalid(t *testing.T) {
	os.Setenv("BAD_FLOAT", "not-a-number")
	defer os.Unsetenv("BAD_FLOAT")

	if got := getEnvAsFloat64("BAD_FLOAT", 3.0); got != 3.0 {
		t.Errorf("Expected fallback 3.0, got %f", got)
	}
}
