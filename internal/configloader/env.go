package configloader

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names recognized by the CLI.
const (
	EnvMaxSizeBytes    = "SCRAPEKIT_MAX_SIZE_BYTES"
	EnvTruncateOnLimit = "SCRAPEKIT_TRUNCATE_ON_LIMIT"
	EnvJobs            = "SCRAPEKIT_JOBS"
	EnvColor           = "SCRAPEKIT_COLOR"
)

// applyEnv overlays environment variables onto result. Unparseable
// values are reported as warnings and ignored rather than failing the
// run.
func applyEnv(result *Result) []string {
	var warnings []string

	if v := os.Getenv(EnvMaxSizeBytes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not an integer, ignored", EnvMaxSizeBytes, v))
		} else {
			result.Options.MaxSizeBytes = n
		}
	}

	if v := os.Getenv(EnvTruncateOnLimit); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not a boolean, ignored", EnvTruncateOnLimit, v))
		} else {
			result.Options.TruncateOnLimit = b
		}
	}

	if v := os.Getenv(EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not an integer, ignored", EnvJobs, v))
		} else {
			result.Jobs = n
		}
	}

	if v := os.Getenv(EnvColor); v != "" {
		switch v {
		case "auto", "always", "never":
			result.Color = v
		default:
			warnings = append(warnings, fmt.Sprintf("%s=%q is not auto, always, or never, ignored", EnvColor, v))
		}
	}

	return warnings
}
