// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"stubgen/internal/config"
)

// Init applies the logging section of the configuration to the standard
// logrus logger.
func Init(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logrus.Warnf("invalid log level %q, using info", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	switch strings.ToLower(cfg.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var output io.Writer
	switch strings.ToLower(cfg.Logging.Output) {
	case "stdout":
		output = os.Stdout
	case "", "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Logging.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("failed to open log file %q, using stderr", cfg.Logging.Output)
			output = os.Stderr
		} else {
			output = file
		}
	}
	logrus.SetOutput(output)
}
