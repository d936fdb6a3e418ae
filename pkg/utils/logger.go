package utils

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig configures InitLogger.
type LogConfig struct {
	Level       string // debug, info, warn, error, fatal (default info)
	Format      string // json or text (default json)
	Development bool   // stack traces on Warn+, caller on every line
	Output      string // file path; empty or unwritable falls back to stderr
}

// Logger wraps *zap.Logger with a cached sugared logger and the
// domain-specific With* helpers this module's components use.
type Logger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

// InitLogger builds a Logger from cfg, defaulting to info level and JSON
// encoding on stderr.
func InitLogger(cfg LogConfig) *Logger {
	level := parseLevel(cfg.Level)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if cfg.Format == "text" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	sink := zapcore.AddSync(os.Stderr)
	if cfg.Output != "" {
		f, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			sink = zapcore.AddSync(f)
		}
	}

	core := zapcore.NewCore(encoder, sink, level)
	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	base := zap.New(core, opts...)

	return &Logger{Logger: base, sugar: base.Sugar()}
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// With returns a child Logger carrying the given fields on every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	child := l.Logger.With(fields...)
	return &Logger{Logger: child, sugar: child.Sugar()}
}

func (l *Logger) WithComponent(name string) *Logger { return l.With(Component(name)) }
func (l *Logger) WithVenue(name string) *Logger     { return l.With(Venue(name)) }
func (l *Logger) WithPair(pairID string) *Logger     { return l.With(Pair(pairID)) }

// Sugar returns the cached sugared logger.
func (l *Logger) Sugar() *zap.SugaredLogger { return l.sugar }

// ---------------------------------------------------------------------
// domain field constructors
// ---------------------------------------------------------------------

func Venue(name string) zap.Field         { return zap.String("venue", name) }
func Pair(pairID string) zap.Field        { return zap.String("pair_id", pairID) }
func Category(name string) zap.Field      { return zap.String("category", name) }
func Spread(pct float64) zap.Field        { return zap.Float64("spread_pct", pct) }
func Contracts(n float64) zap.Field       { return zap.Float64("contracts", n) }
func Latency(ms float64) zap.Field        { return zap.Float64("latency_ms", ms) }
func RequestID(id string) zap.Field       { return zap.String("request_id", id) }
func Component(name string) zap.Field     { return zap.String("component", name) }
func State(s string) zap.Field            { return zap.String("state", s) }

// re-exported zap field constructors, so callers need only import this
// package for structured logging.
var (
	String  = zap.String
	Int     = zap.Int
	Int64   = zap.Int64
	Float64 = zap.Float64
	Bool    = zap.Bool
	Err     = zap.Error
	Any     = zap.Any
)

func fieldsToInterface(fields []zap.Field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	for k, v := range enc.Fields {
		out = append(out, k, v)
	}
	return out
}

// ---------------------------------------------------------------------
// process-wide global logger
// ---------------------------------------------------------------------

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// InitGlobalLogger builds a Logger from cfg and installs it as the
// process-wide global logger, returning it.
func InitGlobalLogger(cfg LogConfig) *Logger {
	l := InitLogger(cfg)
	SetGlobalLogger(l)
	return l
}

// SetGlobalLogger installs l as the process-wide global logger.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// GetGlobalLogger returns the process-wide global logger, lazily
// initializing it with defaults on first use.
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = InitLogger(LogConfig{})
	}
	return globalLogger
}

// L is shorthand for GetGlobalLogger.
func L() *Logger { return GetGlobalLogger() }

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { L().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }

func Debugf(format string, args ...interface{}) { L().sugar.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { L().sugar.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { L().sugar.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { L().sugar.Errorf(format, args...) }
