// Package logging owns the process-wide logger. Core packages never log;
// only the I/O boundary (loader, settings, engine, app, cli) does.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

// Logger returns the shared logger, creating it on first use.
func Logger() *log.Logger {
	once.Do(func() {
		singleton = newLogger(os.Stderr)
	})
	return singleton
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "printcost",
	})
	l.SetLevel(log.InfoLevel)
	return l
}

// SetLevel parses a level name (debug, info, warn, error, fatal) and
// applies it. Unknown names leave the level unchanged and return the
// parse error.
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

// SetOutput redirects the shared logger.
func SetOutput(w io.Writer) {
	Logger().SetOutput(w)
}

func Debugf(msg string, args ...interface{}) {
	Logger().Debugf(msg, args...)
}

func Infof(msg string, args ...interface{}) {
	Logger().Infof(msg, args...)
}

func Warnf(msg string, args ...interface{}) {
	Logger().Warnf(msg, args...)
}

func Errorf(msg string, args ...interface{}) {
	Logger().Errorf(msg, args...)
}
