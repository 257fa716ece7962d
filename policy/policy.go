// Package policy provides enablement predicates for performance tracking.
//
// A Tracker consults its predicate once per Track call, so predicates built
// here take effect for measurements created after a change, never for
// measurements already open.
package policy

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// A Predicate reports whether performance tracking is currently enabled.
type Predicate func() bool

// Always reports tracking as enabled.
func Always() bool {
	return true
}

// Never reports tracking as disabled.
func Never() bool {
	return false
}

// FromEnv returns a predicate that reads the named environment variable on
// every evaluation. Tracking is enabled when the value is "1" or "true",
// case-insensitively.
func FromEnv(name string) Predicate {
	return func() bool {
		value := strings.ToLower(os.Getenv(name))
		return value == "1" || value == "true"
	}
}

// LoadDotEnv loads variables from .env files into the process environment so
// that FromEnv predicates can see them. Without arguments it loads "./.env".
// Variables already present in the environment are not overwritten.
func LoadDotEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}
