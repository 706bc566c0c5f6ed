// Package logger is the process-wide structured logger. Call Init once at
// startup; until then a no-op logger swallows every entry.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.NewNop().Sugar()

// Init builds the logger for the given environment. "production" gets JSON
// output at info level, anything else a console encoder at debug level.
func Init(environment string) {
	var cfg zap.Config
	if strings.EqualFold(environment, "production") {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return
	}
	sugar = z.Sugar()
}

func Debug(msg string, args ...any) {
	sugar.Debugw(msg, fields(args)...)
}

func Info(msg string, args ...any) {
	sugar.Infow(msg, fields(args)...)
}

func Warn(msg string, args ...any) {
	sugar.Warnw(msg, fields(args)...)
}

func Error(msg string, args ...any) {
	sugar.Errorw(msg, fields(args)...)
}

func Fatal(msg string, args ...any) {
	sugar.Fatalw(msg, fields(args)...)
}

// Sync flushes buffered entries.
func Sync() error {
	return sugar.Sync()
}

// fields turns the loose argument list into zap key/value pairs. A bare
// error (as in logger.Error("msg", err)) is keyed "error"; any other value
// without a string key lands under "arg".
func fields(args []any) []any {
	out := make([]any, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			out = append(out, "error", v)
		case string:
			if i+1 < len(args) {
				out = append(out, v, args[i+1])
				i++
				continue
			}
			out = append(out, "arg", v)
		default:
			out = append(out, "arg", v)
		}
	}
	return out
}
