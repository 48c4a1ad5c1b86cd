// Package logger menyediakan logger global berbasis zerolog.
//
//	logger.Init(logger.Config{Level: "info", Format: "json"})
//	logger.Info().Str("slug", slug).Msg("artikel dibuat")
//	logger.Error().Err(err).Msg("gagal simpan")
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	// debug, info, warn, error (default: info)
	Level string
	// json atau console (default: json)
	Format string
	Output io.Writer
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	initLogger(Config{})
}

// Init mengatur ulang logger global. Aman dipanggil berkali-kali.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

func initLogger(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.DateTime}
	}

	log = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Get mengembalikan salinan logger global.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func With() zerolog.Context {
	l := Get()
	return l.With()
}

func Debug() *zerolog.Event {
	l := Get()
	return l.Debug()
}

func Info() *zerolog.Event {
	l := Get()
	return l.Info()
}

func Warn() *zerolog.Event {
	l := Get()
	return l.Warn()
}

func Error() *zerolog.Event {
	l := Get()
	return l.Error()
}

func Fatal() *zerolog.Event {
	l := Get()
	return l.Fatal()
}
