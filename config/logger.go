package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

func InitLogger() *logrus.Logger {
	log := logrus.New()

	// Set formatter to JSON
	log.SetFormatter(&logrus.JSONFormatter{})

	// Set output to stdout (default)
	log.SetOutput(os.Stdout)

	// Set log level - you can make this configurable via env vars later
	log.SetLevel(logrus.InfoLevel)

	return log
}
