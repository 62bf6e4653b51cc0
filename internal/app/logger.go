// Package app provides logger initialization.
package app

import (
	"os"
	"strconv"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/logger"
)

// InitializeLogger configures the global logger from LOG_LEVEL and
// LOG_PRETTY. Defaults are JSON output at info level.
func InitializeLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	pretty, _ := strconv.ParseBool(os.Getenv("LOG_PRETTY"))
	logger.Init(level, pretty)
}
