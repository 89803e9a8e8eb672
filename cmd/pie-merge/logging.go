package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	logDir      = "logs"
	logFileName = "pie-merge.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging sends logs to logs/pie-merge.log when debug is set, otherwise discards them
// Nothing goes to stdout or stderr, the terminal belongs to the UI
func setupLogging(debug bool) (zerolog.Logger, *os.File) {
	discard := zerolog.New(io.Discard).Level(zerolog.Disabled)
	if !debug {
		log.Logger = discard
		return discard, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Logger = discard
		return discard, nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("pie-merge-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Logger = discard
		return discard, nil
	}

	logger := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	log.Logger = logger
	logger.Info().Msg("logging started")
	return logger, f
}
