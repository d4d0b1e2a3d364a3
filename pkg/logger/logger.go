package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the package logger. Development gets human-readable text at
// debug level, everything else structured JSON at info level.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	log = slog.New(handler)
}

// normalize accepts both ("key", value, ...) pairs and bare values (usually a
// trailing error) and turns everything into valid slog attributes.
func normalize(args []any) []any {
	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			out = append(out, key, args[i+1])
			i += 2
			continue
		}
		if err, ok := args[i].(error); ok {
			out = append(out, "error", err)
		} else {
			out = append(out, "detail", args[i])
		}
		i++
	}
	return out
}

func ensure() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	ensure().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	ensure().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	ensure().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	ensure().Error(msg, normalize(args)...)
}

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	ensure().Error(msg, normalize(args)...)
	os.Exit(1)
}
