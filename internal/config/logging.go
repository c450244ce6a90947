package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// LogLevels lists the accepted logging verbosity tags, most to least severe.
var LogLevels = []string{"EMERG", "ALERT", "CRT", "ERR", "WARNING", "NOTICE", "INFO", "DEBUG"}

// ParseLevel maps a syslog-style verbosity tag onto a zerolog level.
func ParseLevel(tag string) (zerolog.Level, error) {
	switch tag {
	case "EMERG":
		return zerolog.FatalLevel, nil
	case "ALERT", "CRT", "ERR":
		return zerolog.ErrorLevel, nil
	case "WARNING":
		return zerolog.WarnLevel, nil
	case "NOTICE", "INFO":
		return zerolog.InfoLevel, nil
	case "DEBUG":
		return zerolog.DebugLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("%w: unknown log level %q", ErrInvalid, tag)
	}
}

// NewLogger builds the process logger from the validated configuration:
// console output on stderr, plus a size-rotated log file when LogFile
// is set.
func NewLogger(cfg *Config) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var out io.Writer = console
	if cfg.LogFile != "" {
		out = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
