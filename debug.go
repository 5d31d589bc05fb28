package main

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// The terminal is owned by bubbletea, so logs go to a file instead of
// stderr. Without -debug everything is discarded.
func setupLogging(debug bool) {
	log.SetOutput(io.Discard)
	if !debug {
		return
	}
	path := filepath.Join(os.TempDir(), "blockfall-debug.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	log.SetOutput(file)
	log.SetLevel(log.DebugLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
