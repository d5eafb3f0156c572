package cli

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the command-line logger. Verbose enables debug output,
// quiet limits output to warnings and errors; verbose wins when both are
// set.
func NewLogger(out io.Writer, verbose, quiet bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
		FullTimestamp:    true,
	})

	switch {
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	case quiet:
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
