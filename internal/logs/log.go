package logs

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Log levels, lowest (most verbose) first.
const (
	LevelTrace = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelOff
)

var levelNames = map[string]int{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarning,
	"error": LevelError,
	"off":   LevelOff,
}

var logLevel atomic.Int32

// Logger holds one stdlib logger per level.
type Logger struct {
	traceLogger *log.Logger
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

var logger atomic.Pointer[Logger]

func init() {
	logLevel.Store(LevelInfo)
	logger.Store(newLogger(os.Stdout, os.Stderr))
}

func newLogger(out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		traceLogger: log.New(out, "[TRACE] ", flags),
		debugLogger: log.New(out, "[DEBUG] ", flags),
		infoLogger:  log.New(out, "[INFO]  ", flags),
		warnLogger:  log.New(out, "[WARN]  ", flags),
		errorLogger: log.New(errOut, "[ERROR] ", flags),
	}
}

// SetOutput redirects all levels to w.
func SetOutput(w io.Writer) {
	logger.Store(newLogger(w, w))
}

// SetLevel sets the minimum level that is written.
func SetLevel(level int) {
	logLevel.Store(int32(level))
}

// SetLevelName sets the level by name, as accepted by ParseLevel.
func SetLevelName(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	SetLevel(level)
	return nil
}

// ParseLevel maps a level name such as "debug" to its constant.
func ParseLevel(name string) (int, error) {
	if name == "" {
		return LevelInfo, nil
	}
	level, ok := levelNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

func enabled(level int) bool {
	return int(logLevel.Load()) <= level
}

func Trace(format string, v ...interface{}) {
	if enabled(LevelTrace) {
		logger.Load().traceLogger.Printf(format, v...)
	}
}

func Debug(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		logger.Load().debugLogger.Printf(format, v...)
	}
}

func Info(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		logger.Load().infoLogger.Printf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if enabled(LevelWarning) {
		logger.Load().warnLogger.Printf(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	if enabled(LevelError) {
		logger.Load().errorLogger.Printf(format, v...)
	}
}
