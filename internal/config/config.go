package config

import (
	"os"
	"strings"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPath        string
	SessionSecret string
	GinMode       string
	Port          string
	Roster        []string
}

func Load() *Config {
	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "choresuser"),
		DBPassword:    getEnv("DB_PASSWORD", "chorespassword"),
		DBName:        getEnv("DB_NAME", "chores"),
		DBPath:        getEnv("DB_PATH", "chores.db"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		Port:          getEnv("PORT", "8080"),
		Roster:        splitRoster(getEnv("HOUSEHOLD_ROSTER", "Mom,Dad,Alex,Sam")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitRoster(value string) []string {
	parts := strings.Split(value, ",")
	roster := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			roster = append(roster, name)
		}
	}
	return roster
}
