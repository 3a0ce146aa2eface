package util

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// LoadEnv loads the .env file for the given environment. Lookup order:
// .env.<env>, then .env. Variables already present in the process
// environment win over file values.
func LoadEnv(env string) error {
	candidates := []string{fmt.Sprintf(".env.%s", env), ".env"}
	for _, name := range candidates {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		return godotenv.Load(name)
	}
	return fmt.Errorf("no env file found for %q", env)
}

func GetEnv(key string) string { return os.Getenv(key) }

func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetIntEnv(key string) int64 { return cast.ToInt64(os.Getenv(key)) }

func GetBoolEnv(key string) bool { return cast.ToBool(os.Getenv(key)) }

// GetDurationEnv parses values like "3s" or "500ms", returning fallback on
// absence or parse failure.
func GetDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
