// Package config loads application configuration from environment
// variables.  Required variables abort startup when missing; optional ones
// fall back to sensible defaults so a bare dev environment still boots.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// one environment variable.
type Config struct {
	Env            string // APP_ENV, e.g. "dev" or "prod"
	Port           string // APP_PORT, HTTP port to listen on
	DBUser         string
	DBPass         string // empty allowed
	DBHost         string
	DBPort         string
	DBName         string
	JWTSecret      string
	AccessTTLMin   int // access token time-to-live in minutes
	RefreshTTLDays int // refresh token time-to-live in days
	BcryptCost     int
}

// Load reads the configuration from the environment.  Database and JWT
// settings are mandatory; Env and Port default to "dev" and "8080".
func Load() Config {
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
	}
}

// must retrieves a required environment variable, exiting with a fatal log
// message when it is unset or empty.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
