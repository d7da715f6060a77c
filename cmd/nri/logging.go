package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	logDir      = "logs"
	logFileName = "nri.log"
	maxLogSize  = 10 * 1024 * 1024
)

// session identifies this run in the log and in export file names
var session = uuid.New()

// setupLogging routes the standard logger to logs/nri.log when debug is set and discards it otherwise
// Returns the open file, or nil when logging is off or the file could not be opened
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		stamp := time.Now().Format("20060102-150405")
		rotated := filepath.Join(logDir, strings.TrimSuffix(logFileName, ".log")+"-"+stamp+".log")
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "nri: rotate log: %v\n", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("nri: session %s started, pid %d", session, os.Getpid())
	return f
}
