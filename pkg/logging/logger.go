package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Prefix marks every text-format log line.
const Prefix = "🎨 "

// NewLogger creates an hclog logger with UTC timestamps. The level may carry a
// "json:" prefix (e.g. "json:debug") to switch to JSON output; SVGICON_JSON_LOG=1
// does the same.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	actualLevel, jsonFormat := ParseLevel(level)
	if os.Getenv("SVGICON_JSON_LOG") == "1" {
		jsonFormat = true
	}
	return build(name, actualLevel, jsonFormat, output)
}

// NewLoggerWithFormat is NewLogger with the output format chosen explicitly.
func NewLoggerWithFormat(name string, level string, jsonFormat bool, output io.Writer) hclog.Logger {
	actualLevel, levelJSON := ParseLevel(level)
	return build(name, actualLevel, jsonFormat || levelJSON, output)
}

func build(name, level string, jsonFormat bool, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if !jsonFormat {
		output = NewPrefixWriter(Prefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv("SVGICON_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return level
}

// ParseLevel splits an optional "json" / "json:<level>" form. Empty levels
// resolve to warn.
func ParseLevel(level string) (string, bool) {
	level = strings.TrimSpace(strings.ToLower(level))
	jsonFormat := false
	if strings.HasPrefix(level, "json") {
		jsonFormat = true
		level = strings.TrimPrefix(strings.TrimPrefix(level, "json"), ":")
		if level == "" {
			level = "info"
		}
	}
	if level == "" {
		level = "warn"
	}
	return level, jsonFormat
}
