package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
)

// Init configures slog to write to both stdout and an append-only log file.
// The file path comes from env TEMPLOGGER_LOGFILE; when unset, logging goes
// to stdout only. The returned file is nil in that case and otherwise must
// be closed by the caller on shutdown.
func Init() (*slog.Logger, *os.File) {
	logPath := os.Getenv("TEMPLOGGER_LOGFILE")
	if logPath == "" {
		h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
		return slog.New(h), nil
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
		logger := slog.New(h)
		logger.Error("failed to open log file; falling back to stdout only", "path", logPath, "err", err)
		return logger, nil
	}

	mw := io.MultiWriter(os.Stdout, f)
	h := slog.NewTextHandler(mw, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(h)

	// legacy stdlib log output (third-party clients use it) follows the same writers
	log.SetOutput(mw)
	return logger, f
}
