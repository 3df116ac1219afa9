// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"strings"

	"github.com/labstack/gommon/log"
)

var Logger = newLogger()

func newLogger() *log.Logger {
	logger := log.New("salestrack")
	logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")
	applyLevel(logger)
	return logger
}

// InitLogger re-reads LOG_LEVEL, picking up values loaded from an
// --env-file after package init.
func InitLogger() {
	applyLevel(Logger)
}

func applyLevel(logger *log.Logger) {
	switch strings.ToUpper(GetEnv("LOG_LEVEL")) {
	case "DEBUG":
		logger.SetLevel(log.DEBUG)
	case "INFO":
		logger.SetLevel(log.INFO)
	case "WARN":
		logger.SetLevel(log.WARN)
	case "ERROR":
		logger.SetLevel(log.ERROR)
	case "OFF":
		logger.SetLevel(log.OFF)
	default:
		logger.SetLevel(log.INFO)
	}
}
