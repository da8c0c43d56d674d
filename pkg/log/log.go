// Package log provides the structured logger interface used by the MMU,
// which receives it from the Machine. New returns a logrus-backed
// implementation; NewNullLogger discards everything, for tests.
package log

import "github.com/sirupsen/logrus"

// Logger is the minimal structured-logging surface the emulation core
// depends on. Components take a Logger rather than a concrete *logrus.Logger
// so tests can swap in NewNullLogger without pulling logrus into every
// package's test imports.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logrusLogger struct {
	l *logrus.Logger
}

// New returns a Logger backed by logrus, formatted without timestamps or
// color so output stays readable piped to a terminal or a log file.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
	}
	return &logrusLogger{l: l}
}

func (l *logrusLogger) Infof(format string, args ...interface{}) {
	l.l.Infof(format, args...)
}

func (l *logrusLogger) Errorf(format string, args ...interface{}) {
	l.l.Errorf(format, args...)
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) {
	l.l.Debugf(format, args...)
}
