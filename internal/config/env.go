package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt parses the variable named by key as a positive integer, or
// returns fallback if it is unset or empty.
func GetEnvInt(key string, fallback int) (int, error) {
	value := GetEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, errors.Errorf("%s must be a positive number, got %q", key, value)
	}
	return n, nil
}

// GetEnvBool reports whether the variable named by key is set to a true
// value (1, t, true, ...). Unset or unparsable values are false.
func GetEnvBool(key string) bool {
	b, err := strconv.ParseBool(GetEnv(key, ""))
	return err == nil && b
}
