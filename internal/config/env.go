// Package config loads environment-variable configuration the way the
// teacher monorepo's common/config does: optional values fall back to a default,
// required values panic at boot rather than limp along with a zero value.
package config

import "os"

// GetEnv retrieves an environment variable or returns a default value.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// MustGetEnv retrieves an environment variable or panics if not set.
func MustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
