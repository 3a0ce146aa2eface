package config

import (
	"MindTrace/pkg/logger"
	"MindTrace/pkg/util"
	"log"
	"os"
	"time"
)

// DefaultBaseURL is used when API_BASE_URL is not configured. The backend
// dev server listens on 8000.
const DefaultBaseURL = "http://localhost:8000"

type Config struct {
	BaseURL         string        `env:"API_BASE_URL"`
	RequestTimeout  time.Duration `env:"API_REQUEST_TIMEOUT"`
	PollInterval    time.Duration `env:"SOS_POLL_INTERVAL"`
	PollMaxBackoff  time.Duration `env:"SOS_POLL_MAX_BACKOFF"`
	HistoryLimit    int           `env:"SOS_HISTORY_LIMIT"`
	GeocoderURL     string        `env:"GEOCODER_URL"`
	CameraDevice    string        `env:"CAMERA_DEVICE"`
	MetricsAddr     string        `env:"METRICS_ADDR"`
	ContactsRefresh string        `env:"CONTACTS_REFRESH_CRON"`
	Mode            string        `env:"MODE"`
	Log             logger.LogConfig
}

var GlobalConfig *Config

func Load() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := util.LoadEnv(env); err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	GlobalConfig = &Config{
		BaseURL:         util.GetEnvDefault("API_BASE_URL", DefaultBaseURL),
		RequestTimeout:  util.GetDurationEnv("API_REQUEST_TIMEOUT", 15*time.Second),
		PollInterval:    util.GetDurationEnv("SOS_POLL_INTERVAL", 3*time.Second),
		PollMaxBackoff:  util.GetDurationEnv("SOS_POLL_MAX_BACKOFF", 30*time.Second),
		HistoryLimit:    int(util.GetIntEnv("SOS_HISTORY_LIMIT")),
		GeocoderURL:     util.GetEnv("GEOCODER_URL"),
		CameraDevice:    util.GetEnvDefault("CAMERA_DEVICE", "/dev/video0"),
		MetricsAddr:     util.GetEnv("METRICS_ADDR"),
		ContactsRefresh: util.GetEnvDefault("CONTACTS_REFRESH_CRON", "@every 5m"),
		Mode:            util.GetEnv("MODE"),
		Log: logger.LogConfig{
			Level:      util.GetEnv("LOG_LEVEL"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnv("LOG_MAX_SIZE")),
			MaxAge:     int(util.GetIntEnv("LOG_MAX_AGE")),
			MaxBackups: int(util.GetIntEnv("LOG_MAX_BACKUPS")),
		},
	}
	if GlobalConfig.HistoryLimit <= 0 {
		GlobalConfig.HistoryLimit = 50
	}
	return nil
}
