package shaderview

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gekko3d/shaderview/quadrt/rt/core"
)

type Logger = core.Logger

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// DefaultLogger tags every line with the component that emitted it. Debug and info
// lines go to stdout, warnings and errors to stderr. The debug switch is fixed at
// construction, the -debug flag is read once.
type DefaultLogger struct {
	component string
	debug     bool
	stdout    *log.Logger
	stderr    *log.Logger
}

func NewDefaultLogger(component string, debug bool) *DefaultLogger {
	return newDefaultLogger(component, debug, os.Stdout, os.Stderr)
}

func newDefaultLogger(component string, debug bool, stdout, stderr io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		component: component,
		debug:     debug,
		stdout:    log.New(stdout, "", flags),
		stderr:    log.New(stderr, "", flags),
	}
}

// With returns a logger for a sub component sharing the same outputs,
// "shaderview" becomes "shaderview/gpu".
func (l *DefaultLogger) With(component string) *DefaultLogger {
	child := *l
	if l.component != "" {
		child.component = l.component + "/" + component
	} else {
		child.component = component
	}
	return &child
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.debug
}

func (l *DefaultLogger) logf(lvl level, format string, args ...any) {
	dst := l.stdout
	if lvl >= levelWarn {
		dst = l.stderr
	}

	msg := fmt.Sprintf(format, args...)
	if l.component == "" {
		dst.Printf("%s: %s", levelNames[lvl], msg)
		return
	}
	dst.Printf("[%s] %s: %s", l.component, levelNames[lvl], msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.debug {
		l.logf(levelDebug, format, args...)
	}
}

func (l *DefaultLogger) Infof(format string, args ...any)  { l.logf(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.logf(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.logf(levelError, format, args...) }

// scoped narrows logger to component when it is a DefaultLogger and returns it unchanged otherwise.
func scoped(logger Logger, component string) Logger {
	if l, ok := logger.(*DefaultLogger); ok {
		return l.With(component)
	}
	return logger
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
