package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup sends the standard logger to stdout and, when filePath is set, to a rotated file.
// Close the returned closer on shutdown.
func Setup(filePath string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if filePath == "" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		log.SetOutput(os.Stdout)
		log.Printf("⚠️ logging.Setup: cannot create log dir, logging to stdout only: %v", err)
		return io.NopCloser(nil)
	}

	rot := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rot))
	return rot
}
