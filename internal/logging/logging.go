package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type LogFormatter struct {
	logrus.TextFormatter
}

func (f *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := time.Now().Local().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf("%s [%s] %s\n", timestamp, strings.ToUpper(entry.Level.String()), entry.Message)
	return []byte(msg), nil
}

var logger *logrus.Logger

// GetLogger returns the shared process logger.
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(new(LogFormatter))
	}
	return logger
}

// SetVerbose lowers the level so Debug lines reach the console.
func SetVerbose(verbose bool) {
	if verbose {
		GetLogger().SetLevel(logrus.DebugLevel)
	}
}
