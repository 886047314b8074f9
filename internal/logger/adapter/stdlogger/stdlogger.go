// Package stdlogger adapts the global zerolog logger to printf style
// logger interfaces, e.g. the writer of the gorm logger.
package stdlogger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger writes printf style messages to zerolog.
type Logger struct {
	component string
	level     zerolog.Level // level of Printf
}

// New returns a Logger that logs Printf calls at debug level.
func New() *Logger {
	return &Logger{level: zerolog.DebugLevel}
}

// NewComponent returns a Logger tagging every message with component
// and logging Printf calls at level.
func NewComponent(component string, level zerolog.Level) *Logger {
	return &Logger{component: component, level: level}
}

func (l *Logger) write(level zerolog.Level, format string, args ...interface{}) {
	e := log.WithLevel(level)
	if l.component != "" {
		e = e.Str("component", l.component)
	}

	e.Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.write(l.level, format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(zerolog.DebugLevel, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(zerolog.InfoLevel, format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.write(zerolog.WarnLevel, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(zerolog.ErrorLevel, format, args...)
}
