package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// ConsoleLogger returns a logger writing human-readable output to stderr.
func ConsoleLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}

// JSONLogger returns a logger emitting one JSON object per line, for
// shipping to a log collector.
func JSONLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}
