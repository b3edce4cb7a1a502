package utils

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig controls where application logs go.
type LoggerConfig struct {
	// File path for rotated log output; empty means stdout only.
	File string
	// Also mirror file output to stdout.
	MirrorStdout bool
}

// InitLogger initializes and returns the application logger. When a file is
// configured, output goes through lumberjack so log files rotate instead of
// growing without bound.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		}
		if cfg.MirrorStdout {
			out = io.MultiWriter(os.Stdout, rotated)
		} else {
			out = rotated
		}
	}

	prefix := "[LearnHub] "
	return log.New(out, prefix, log.LstdFlags|log.LUTC)
}
