package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const envPrefix = "RAWCONV_"

// envConfig holds defaults taken from the environment. Flags win over it.
type envConfig struct {
	LogLevel string // RAWCONV_LOG_LEVEL
	LogJSON  bool   // RAWCONV_LOG_JSON
	Format   string // RAWCONV_FORMAT
	NoColor  bool   // NO_COLOR, any non-empty value

	Warnings []string
}

var knownEnvVars = map[string]bool{
	"RAWCONV_LOG_LEVEL": true,
	"RAWCONV_LOG_JSON":  true,
	"RAWCONV_FORMAT":    true,
}

// loadEnvConfig reads KEY=VALUE pairs as returned by os.Environ.
func loadEnvConfig(environ []string) envConfig {
	var cfg envConfig

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}

		switch key {
		case "RAWCONV_LOG_LEVEL":
			cfg.LogLevel = value
		case "RAWCONV_FORMAT":
			cfg.Format = value
		case "RAWCONV_LOG_JSON":
			b, err := strconv.ParseBool(value)
			if err != nil {
				cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring %s=%q: not a boolean", key, value))
				continue
			}
			cfg.LogJSON = b
		case "NO_COLOR":
			cfg.NoColor = value != ""
		default:
			if strings.HasPrefix(key, envPrefix) && !knownEnvVars[key] {
				cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown environment variable %s", key))
			}
		}
	}

	sort.Strings(cfg.Warnings)
	return cfg
}
