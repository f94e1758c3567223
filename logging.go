package bricksculpt

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLogger(os.Stdout, os.Stderr, prefix, debug)
}

// NewLogger writes debug and info lines to out, warnings and errors to errOut.
func NewLogger(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) prefixf(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	dbg := l.debug
	l.mu.Unlock()
	if !dbg {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.prefixf("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.prefixf("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.prefixf("ERROR", format, args...))
}

// contextLogger tags every line with key=value pairs.
type contextLogger struct {
	base Logger
	ctx  string
}

// With returns a logger that prefixes every line of l with key=value.
// Debug state is shared with l.
func With(l Logger, key, value string) Logger {
	tag := key + "=" + value
	if c, ok := l.(*contextLogger); ok {
		return &contextLogger{base: c.base, ctx: c.ctx + " " + tag}
	}
	return &contextLogger{base: l, ctx: tag}
}

func (c *contextLogger) DebugEnabled() bool    { return c.base.DebugEnabled() }
func (c *contextLogger) SetDebug(enabled bool) { c.base.SetDebug(enabled) }

func (c *contextLogger) Debugf(format string, args ...any) {
	if !c.base.DebugEnabled() {
		return
	}
	c.base.Debugf("%s %s", c.ctx, fmt.Sprintf(format, args...))
}

func (c *contextLogger) Infof(format string, args ...any) {
	c.base.Infof("%s %s", c.ctx, fmt.Sprintf(format, args...))
}

func (c *contextLogger) Warnf(format string, args ...any) {
	c.base.Warnf("%s %s", c.ctx, fmt.Sprintf(format, args...))
}

func (c *contextLogger) Errorf(format string, args ...any) {
	c.base.Errorf("%s %s", c.ctx, fmt.Sprintf(format, args...))
}

type nopLogger struct{}

func NewNopLogger() Logger                             { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}
