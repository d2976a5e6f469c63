package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logFileName = "spectrum.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging points log at dir/spectrum.log when debug is set, otherwise discards
// The terminal UI owns stdout and stderr, so there is no console fallback
// An oversized previous log is rotated aside with a timestamp suffix
func setupLogging(log *logrus.Logger, dir string, debug bool) *os.File {
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})
	if !debug {
		log.SetOutput(io.Discard)
		log.SetLevel(logrus.InfoLevel)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("spectrum-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetLevel(logrus.DebugLevel)
	log.WithField("pid", os.Getpid()).Info("logging started")
	return f
}
