package config

import "os"

// GetEnv retrieves an environment variable or returns a default value if not found
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// ConfigDir returns the directory holding config.yaml (CONFIG_PATH, default ".")
func ConfigDir() string {
	return GetEnv("CONFIG_PATH", ".")
}
