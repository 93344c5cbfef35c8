package config

import "os"

// EnvFileVar names the variable that overrides the env file path used by the binaries.
const EnvFileVar = "FINTRACK_ENV_FILE"

// GetEnv retrieves an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// EnvFile returns the env file the binaries should load.
func EnvFile() string {
	return GetEnv(EnvFileVar, ".env")
}
