package logging

// logging.go is the thin facade the rest of the toolkit logs through.
//
// Core components (bitstream, sdp) only ever need a warn-level hook for
// recoverable anomalies, and they must function with no logger attached, so
// the facade ships a no-op implementation as the default. Everything else
// (CLI, meter loop) gets a logrus-backed logger keyed by component.

import (
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// Logger is the minimal surface components depend on. logrus.Entry satisfies
// it directly.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nop struct{}

func (nop) Debugf(string, ...interface{}) {}
func (nop) Infof(string, ...interface{})  {}
func (nop) Warnf(string, ...interface{})  {}
func (nop) Errorf(string, ...interface{}) {}

// Nop returns the no-op logger. Safe to share; it holds no state.
func Nop() Logger {
	return nop{}
}

// New returns a logrus-backed logger tagged with the component name.
func New(component string) Logger {
	return logrus.StandardLogger().WithField("component", component)
}

// verbosity indexes follow the CLI convention:
// 0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace.
var levels = []logrus.Level{
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

// Configure applies a verbosity index and output format ("text" or "json")
// to the shared logrus logger.
func Configure(verbosity int, format string) {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		verbosity = len(levels) - 1
	}
	logrus.SetLevel(levels[verbosity])

	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// EnableSentry installs a Sentry hook on the shared logger so error-level
// events are reported upstream. A DSN is required; parse failures are
// returned to the caller rather than disabling logging.
func EnableSentry(dsn string) error {
	hook, err := logrus_sentry.NewSentryHook(dsn, []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	})
	if err != nil {
		return err
	}
	hook.Timeout = 2 * time.Second
	logrus.AddHook(hook)
	return nil
}
