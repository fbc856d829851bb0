package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns the diagnostic logger. It writes to stderr so stdout stays
// reserved for the list of processed fixtures.
func New(verbose bool) *logrus.Logger {
	return NewWithOutput(os.Stderr, verbose)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
