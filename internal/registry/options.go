package registry

import (
	"fmt"
	"os"
	"strings"
)

// Mode selects how validator failures affect a load.
type Mode string

const (
	// ModeStrict rejects the load on any validator failure; the previously
	// active registries stay untouched.
	ModeStrict Mode = "strict"
	// ModeWarning records failures in the result but publishes the new
	// registries anyway.
	ModeWarning Mode = "warning"
	// ModeOff skips the validators entirely. Not for production use.
	ModeOff Mode = "off"
)

// Environment toggles. Explicit call-site configuration wins over these,
// and these win over the built-in defaults (strict, drift on, auto-init on).
const (
	EnvMode     = "TOOLHUB_VALIDATION_MODE"
	EnvDrift    = "TOOLHUB_DRIFT"
	EnvAutoInit = "TOOLHUB_AUTO_INIT"
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStrict:
		return ModeStrict, nil
	case ModeWarning:
		return ModeWarning, nil
	case ModeOff:
		return ModeOff, nil
	}
	return "", fmt.Errorf("invalid validation mode %q: must be 'strict', 'warning' or 'off'", s)
}

// ModeFromEnv resolves the validation mode from the environment, falling
// back to the given default. Unparseable values fall back too; a bad env
// toggle must not silently weaken validation.
func ModeFromEnv(fallback Mode) Mode {
	raw, ok := os.LookupEnv(EnvMode)
	if !ok {
		return fallback
	}
	mode, err := ParseMode(raw)
	if err != nil {
		return fallback
	}
	return mode
}

// DriftFromEnv resolves the drift-detection toggle from the environment.
func DriftFromEnv(fallback bool) bool {
	return boolFromEnv(EnvDrift, fallback)
}

// AutoInitFromEnv resolves the auto-initialization toggle from the
// environment. The registry package only defines the toggle; the hosting
// process consumes it.
func AutoInitFromEnv(fallback bool) bool {
	return boolFromEnv(EnvAutoInit, fallback)
}

func boolFromEnv(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
