package core

// Logger is the logging contract used by the renderer packages.
// shaderview.DefaultLogger implements it.
type Logger interface {
	DebugEnabled() bool
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
