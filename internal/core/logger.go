package core

import (
	"log"

	"github.com/teachpad/learning-assist/pkg/resync"
)

var (
	// Lazy-load and ensure a single logger
	loggerOnce      resync.Once
	loggerSingleton *Logger
)

// VerboseLevel gates the optional output levels. Warnings and fatals are
// always emitted.
type VerboseLevel int

const (
	VerboseOff VerboseLevel = iota
	VerboseInfo
	VerboseDebug
	VerboseTrace
)

func CurrentLogger() *Logger {
	loggerOnce.Do(func() {
		loggerSingleton = NewLogger()
	})
	return loggerSingleton
}

type Logger struct {
	verbose VerboseLevel
}

func NewLogger() *Logger {
	return &Logger{
		verbose: VerboseOff,
	}
}

// SetVerboseLevel overrides the default verbose level
func (l *Logger) SetVerboseLevel(level VerboseLevel) *Logger {
	l.verbose = level
	return l
}

func (l *Logger) println(level VerboseLevel, v ...any) {
	if l.verbose >= level {
		log.Println(v...)
	}
}

func (l *Logger) printf(level VerboseLevel, format string, v ...any) {
	if l.verbose >= level {
		log.Printf(format, v...)
	}
}

func (l *Logger) Fatal(v ...any) {
	log.Fatalln(v...)
}
func (l *Logger) Fatalf(format string, v ...any) {
	log.Fatalf(format, v...)
}

func (l *Logger) Warn(v ...any) {
	log.Println(v...)
}
func (l *Logger) Warnf(format string, v ...any) {
	log.Printf(format, v...)
}

func (l *Logger) Info(v ...any) {
	l.println(VerboseInfo, v...)
}
func (l *Logger) Infof(format string, v ...any) {
	l.printf(VerboseInfo, format, v...)
}

func (l *Logger) Debug(v ...any) {
	l.println(VerboseDebug, v...)
}
func (l *Logger) Debugf(format string, v ...any) {
	l.printf(VerboseDebug, format, v...)
}

func (l *Logger) Trace(v ...any) {
	l.println(VerboseTrace, v...)
}
func (l *Logger) Tracef(format string, v ...any) {
	l.printf(VerboseTrace, format, v...)
}
