package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// debugEnvVar mirrors the teacher's ARM_EMULATOR_DEBUG switch
// (gui/app.go, api/debug.go, service/debugger_service.go): logging is
// silent by default and only starts writing once explicitly asked for.
const debugEnvVar = "TOY_COMPUTER_DEBUG"

// NewLogger returns a component logger in the teacher's debugLog
// style: silent (io.Discard) unless enabled is true or TOY_COMPUTER_DEBUG
// is set in the environment, in which case it logs to a file under
// GetLogPath(), falling back to stderr if that file can't be opened.
func NewLogger(prefix string, enabled bool) *log.Logger {
	if !enabled && os.Getenv(debugEnvVar) == "" {
		return log.New(io.Discard, "", 0)
	}

	path := filepath.Join(GetLogPath(), "toy.log")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600) // #nosec G304 -- fixed, config-derived path
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: failed to open debug log %s: %v\n", prefix, path, err)
		return log.New(os.Stderr, prefix+": ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
	}

	return log.New(f, prefix+": ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
}
