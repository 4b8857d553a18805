package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Out por defecto os.Stdout.
	Out io.Writer

	// File opcional: además de Out, escribe JSON en un archivo rotado.
	File         string
	MaxSizeMB    int
	MaxBackups   int
	MaxAgeDays   int
	CompressOlds bool
}

// zlogger adapta zerolog a la interfaz Logger (mapa de fields, como el resto del código).
type zlogger struct {
	zl zerolog.Logger
}

func New(opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}
	}

	if f := strings.TrimSpace(opts.File); f != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   f,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   opts.CompressOlds,
		})
	}

	ctx := zerolog.New(out).Level(opts.Level.zerolog()).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}
	return &zlogger{zl: ctx.Logger()}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - LOG_FILE=/var/log/medication-adherence.log (opcional)
// - APP_NAME=medication-adherence (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
		File:   os.Getenv("LOG_FILE"),
	})
}

// Nop descarta todo (tests).
func Nop() Logger {
	return &zlogger{zl: zerolog.Nop()}
}

func (l *zlogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &zlogger{zl: l.zl.With().Fields(clean(fields)).Logger()}
}

func (l *zlogger) Debug(msg string, fields map[string]any) {
	l.zl.Debug().Fields(clean(fields)).Msg(msg)
}

func (l *zlogger) Info(msg string, fields map[string]any) {
	l.zl.Info().Fields(clean(fields)).Msg(msg)
}

func (l *zlogger) Warn(msg string, fields map[string]any) {
	l.zl.Warn().Fields(clean(fields)).Msg(msg)
}

func (l *zlogger) Error(msg string, fields map[string]any) {
	l.zl.Error().Fields(clean(fields)).Msg(msg)
}

// clean descarta keys vacías; los error values se pasan a string para que
// el encoder JSON no los serialice como {}.
func clean(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		out[k] = v
	}
	return out
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
