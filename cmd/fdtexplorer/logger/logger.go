// Package logger routes the explorer's diagnostics to a file. The TUI owns
// the terminal, so nothing may write to stderr while it runs; logging is off
// unless the user opts in with --debug.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// L is the package logger. It discards everything until Init enables it.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Enabled bool
	LogDir  string     // defaults to ~/.fdtexplorer/logs
	Level   slog.Level // zero value is slog.LevelInfo
}

// Init points L at a fresh log file for this run. Call once from main before
// the TUI starts; with Enabled false it leaves L discarding.
func Init(opts Options) error {
	if !opts.Enabled {
		return nil
	}

	dir := opts.LogDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".fdtexplorer", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("fdtexplorer-%s-%d.log",
		time.Now().Format("20060102-150405"), os.Getpid())
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
