package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"bzl/internal/paths"
)

// New creates a logger that writes to a timestamped file inside the bzl
// log directory. Diagnostics only; nothing written here is user-visible.
// The returned closer should be closed when logging is no longer needed.
func New(ap paths.AppPaths) (*log.Logger, io.Closer, error) {
	if err := ap.EnsureLogsDir(); err != nil {
		return nil, nil, err
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	filePath := filepath.Join(ap.LogsDir, filename)
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	return logger, file, nil
}

// Discard returns a logger that drops everything, for callers that treat
// logging as strictly best-effort.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
