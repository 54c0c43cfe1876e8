package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every process-level setting. It is constructed once at
// startup and handed to each constructor explicitly; nothing else in the
// codebase reads the environment.
type Config struct {
	TelegramToken string
	OpenRouterKey string
	Model         string

	// Monitoring loop
	MonitorIntervalMins int
	UpThresholdPct      float64
	DownThresholdPct    float64

	// File-backed state
	PositionsFile string
	ChatIDFile    string
	FlagFile      string

	// Logging
	MaxLogSizeMB  int64
	MaxLogBackups int
}

// Load initializes the configuration.
// It tries to read a .env file, checks for the required credentials and
// fills everything else from the environment with sensible defaults.
func Load() *Config {
	// Load .env variables into the process environment
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	requiredSecretVars := []string{
		"TELEGRAM_BOT_TOKEN",
		"OPENROUTER_API_KEY",
	}

	var missing []string
	for _, key := range requiredSecretVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("CRITICAL: Missing required environment variables: %v", missing)
	}

	cfg := &Config{
		TelegramToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenRouterKey:       os.Getenv("OPENROUTER_API_KEY"),
		Model:               getEnv("OPENROUTER_MODEL", "mistralai/mistral-7b-instruct"),
		MonitorIntervalMins: getEnvAsInt("MONITOR_INTERVAL_MINS", 60),
		UpThresholdPct:      getEnvAsFloat64("UP_THRESHOLD_PCT", 3.0),
		DownThresholdPct:    getEnvAsFloat64("DOWN_THRESHOLD_PCT", -2.0),
		PositionsFile:       getEnv("POSITIONS_FILE", "positions.json"),
		ChatIDFile:          getEnv("CHAT_ID_FILE", ".chatid"),
		FlagFile:            getEnv("MONITOR_FLAG_FILE", ".monitor_active"),
		MaxLogSizeMB:        int64(getEnvAsInt("MAX_LOG_SIZE_MB", 5)),
		MaxLogBackups:       getEnvAsInt("MAX_LOG_BACKUPS", 3),
	}

	log.Printf("Config: model=%s interval=%dm thresholds=[%+.1f%%, %+.1f%%]",
		cfg.Model, cfg.MonitorIntervalMins, cfg.UpThresholdPct, cfg.DownThresholdPct)

	return cfg
}
