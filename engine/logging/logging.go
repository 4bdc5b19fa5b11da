// Package logging holds the process-wide zap logger and carries derived loggers through
// context values.
package logging

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKeyType string

const loggerKey = loggerKeyType("logger")

var (
	rootMu     = &sync.RWMutex{}
	rootLogger = zap.NewNop()
	sessionID  = uuid.NewString()
)

// Init builds the root logger. Development mode writes colored console lines at debug
// level and up; production mode writes JSON lines at the given level. Every line carries
// the session id.
//
// Parameters:
//   - level: the minimum level name ("debug", "info", "warn", "error")
//   - development: selects the console encoder
//
// Returns:
//   - *zap.Logger: the new root logger
//   - error: an error if the level name is invalid
func Init(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level %q: %w", level, err)
	}

	var encoder zapcore.Encoder
	if development {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(lvl))
	logger := zap.New(core, zap.AddCaller()).With(zap.String("session", sessionID))
	SetRoot(logger)
	logger.Debug("Logging initialized", zap.Bool("development", development), zap.Stringer("level", lvl))
	return logger, nil
}

// SetRoot replaces the root logger. A nil logger installs a no-op logger.
func SetRoot(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rootMu.Lock()
	defer rootMu.Unlock()
	rootLogger = logger
}

// Root returns the root logger.
func Root() *zap.Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return rootLogger
}

// SessionID returns the id attached to every line of this process.
func SessionID() string {
	return sessionID
}

// Named returns a child of the root logger with the given name.
func Named(name string) *zap.Logger {
	return Root().Named(name)
}

// From returns the logger of the current context, if no logger is available, returns the root logger
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Root()
	}
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok || l == nil {
		return Root()
	}
	return l
}

// Context returns a copy of ctx carrying logger.
func Context(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = Root()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// SubFrom derives a named logger from ctx and returns it with a context carrying it.
func SubFrom(ctx context.Context, name string) (*zap.Logger, context.Context) {
	logger := From(ctx).Named(name)
	return logger, Context(ctx, logger)
}

// FromWithFields derives a logger with fields from ctx and returns it with a context carrying it.
func FromWithFields(ctx context.Context, fields ...zapcore.Field) (*zap.Logger, context.Context) {
	logger := From(ctx).With(fields...)
	return logger, Context(ctx, logger)
}
