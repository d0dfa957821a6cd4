package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

// ContextKey is where request-scoped loggers live on a context.
const ContextKey ctxKey = "LOGGER"

func isDev() bool {
	return strings.ToLower(os.Getenv("ALPHA_ENV")) == "dev"
}

func New() *zap.SugaredLogger {
	var (
		l   *zap.Logger
		err error
	)

	if isDev() {
		l, err = zap.NewDevelopment(zap.AddStacktrace(zap.ErrorLevel))
	} else {
		l, err = zap.NewProduction(
			zap.AddStacktrace(zap.ErrorLevel),
			zap.Fields(zap.Field{
				Key:    "ALPHA_ENV",
				Type:   zapcore.StringType,
				String: os.Getenv("ALPHA_ENV"),
			}),
		)
	}
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return l.Sugar()
}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, l)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ContextKey).(*zap.SugaredLogger); ok && l != nil {
			return l
		}
	}
	return zap.S()
}

func init() {
	zap.ReplaceGlobals(New().Desugar())
}
