// Package logging implements support for structured logging.
//
// Loggers are leveled wrappers over go-kit/log, one per module. A logger
// may be created before the backend is initialized, it starts emitting once
// Initialize installs the output.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/pflag"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	backend = logBackend{
		baseLogger:   log.NewNopLogger(),
		defaultLevel: LevelError,
	}

	_ pflag.Value = (*Level)(nil)
	_ pflag.Value = (*Format)(nil)
)

// Format is a logging format.
type Format uint

const (
	// FmtLogfmt is the "logfmt" logging format.
	FmtLogfmt Format = iota
	// FmtJSON is the JSON logging format.
	FmtJSON
)

var formatNames = map[Format]string{
	FmtLogfmt: "logfmt",
	FmtJSON:   "JSON",
}

// String returns the string representation of a Format.
func (f *Format) String() string {
	name, ok := formatNames[*f]
	if !ok {
		panic("logging: unsupported format")
	}
	return name
}

// Set sets the Format to the value specified by the provided string.
func (f *Format) Set(s string) error {
	for v, name := range formatNames {
		if strings.EqualFold(s, name) {
			*f = v
			return nil
		}
	}
	return fmt.Errorf("logging: invalid log format: '%s'", s)
}

// Type returns the list of supported Formats.
func (f *Format) Type() string {
	return "[logfmt,JSON]"
}

func (f Format) newLogger(w io.Writer) (log.Logger, error) {
	w = log.NewSyncWriter(w)
	switch f {
	case FmtLogfmt:
		return log.NewLogfmtLogger(w), nil
	case FmtJSON:
		return log.NewJSONLogger(w), nil
	default:
		return nil, fmt.Errorf("logging: unsupported log format: %v", f)
	}
}

// Level is a log level.
type Level uint

const (
	// LevelDebug is the log level for debug messages.
	LevelDebug Level = iota
	// LevelInfo is the log level for informative messages.
	LevelInfo
	// LevelWarn is the log level for warning messages.
	LevelWarn
	// LevelError is the log level for error messages.
	LevelError
)

type levelInfo struct {
	name    string
	allow   func() level.Option
	leveled func(log.Logger) log.Logger
}

var levels = map[Level]levelInfo{
	LevelDebug: {"DEBUG", level.AllowDebug, level.Debug},
	LevelInfo:  {"INFO", level.AllowInfo, level.Info},
	LevelWarn:  {"WARN", level.AllowWarn, level.Warn},
	LevelError: {"ERROR", level.AllowError, level.Error},
}

func (l Level) info() levelInfo {
	info, ok := levels[l]
	if !ok {
		panic("logging: unsupported log level")
	}
	return info
}

// String returns the string representation of a Level.
func (l *Level) String() string {
	return l.info().name
}

// Set sets the Level to the value specified by the provided string.
func (l *Level) Set(s string) error {
	for lvl, info := range levels {
		if strings.EqualFold(s, info.name) {
			*l = lvl
			return nil
		}
	}
	return fmt.Errorf("logging: invalid log level: '%s'", s)
}

// Type returns the list of supported Levels.
func (l *Level) Type() string {
	return "[DEBUG,INFO,WARN,ERROR]"
}

// Logger is a logger instance.
type Logger struct {
	logger log.Logger
	level  Level
	module string
}

func (l *Logger) emit(lvl Level, msg string, keyvals []interface{}) {
	if l.level > lvl {
		return
	}
	keyvals = append([]interface{}{"msg", msg}, keyvals...)
	_ = lvl.info().leveled(l.logger).Log(keyvals...)
}

// Debug logs the message and key value pairs at the Debug log level.
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.emit(LevelDebug, msg, keyvals)
}

// Info logs the message and key value pairs at the Info log level.
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.emit(LevelInfo, msg, keyvals)
}

// Warn logs the message and key value pairs at the Warn log level.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.emit(LevelWarn, msg, keyvals)
}

// Error logs the message and key value pairs at the Error log level.
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.emit(LevelError, msg, keyvals)
}

// With returns a clone of the logger with the key/value pairs attached to
// every entry.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	clone := *l
	clone.logger = log.With(l.logger, keyvals...)
	return &clone
}

// NewJSONLogger creates a logger writing JSON entries directly to w,
// bypassing the global backend.
func NewJSONLogger(w io.Writer) *Logger {
	return &Logger{
		logger: log.NewJSONLogger(w),
	}
}

// GetLogger creates a new logger instance with the specified module.
//
// This may be called from any point, including before Initialize is
// called, allowing for the construction of a package level Logger.
func GetLogger(module string) *Logger {
	return backend.getLogger(module)
}

// Initialize installs the logging backend writing to w in the given
// format. A module logs at the level of its longest matching prefix in
// moduleLvls, or at defaultLvl. A nil w discards all output.
func Initialize(w io.Writer, format Format, defaultLvl Level, moduleLvls map[string]Level) error {
	backend.Lock()
	defer backend.Unlock()

	if backend.initialized {
		return fmt.Errorf("logging: already initialized")
	}

	logger := backend.baseLogger
	if w != nil {
		var err error
		if logger, err = format.newLogger(w); err != nil {
			return err
		}
	}
	logger = level.NewFilter(logger, defaultLvl.info().allow())

	backend.baseLogger = log.With(logger, "ts", log.DefaultTimestampUTC)
	backend.defaultLevel = defaultLvl
	backend.moduleLevels = moduleLvls
	backend.modulePrefixes = maps.Keys(moduleLvls)
	// Longest prefixes first.
	slices.SortFunc(backend.modulePrefixes, func(a, b string) bool {
		return a > b
	})
	backend.initialized = true

	for _, early := range backend.pending {
		early.swap.Swap(backend.baseLogger)
		early.logger.level = backend.levelLocked(early.logger.module)
	}
	backend.pending = nil

	return nil
}

type pendingLogger struct {
	swap   *log.SwapLogger
	logger *Logger
}

type logBackend struct {
	sync.Mutex

	baseLogger     log.Logger
	defaultLevel   Level
	moduleLevels   map[string]Level
	modulePrefixes []string
	pending        []*pendingLogger

	initialized bool
}

func (b *logBackend) levelLocked(module string) Level {
	for _, prefix := range b.modulePrefixes {
		if strings.HasPrefix(module, prefix) {
			return b.moduleLevels[prefix]
		}
	}
	return b.defaultLevel
}

func (b *logBackend) getLogger(module string) *Logger {
	// Caller frames: go-kit prefix and leveled wrappers, emit and the
	// exported level method.
	const callerDepth = 5

	b.Lock()
	defer b.Unlock()

	var swap *log.SwapLogger
	base := b.baseLogger
	if !b.initialized {
		swap = &log.SwapLogger{}
		base = swap
	}

	var keyvals []interface{}
	if module != "" {
		keyvals = append(keyvals, "module", module)
	}
	keyvals = append(keyvals, "caller", log.Caller(callerDepth))
	l := &Logger{
		logger: log.WithPrefix(base, keyvals...),
		level:  b.levelLocked(module),
		module: module,
	}
	if swap != nil {
		b.pending = append(b.pending, &pendingLogger{swap: swap, logger: l})
	}

	return l
}
