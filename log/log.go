package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const diagName = "diagnostics_log.txt"

var (
	diagLog  zerolog.Logger
	diagFile io.WriteCloser
	logMu    sync.RWMutex
	logReady bool // guarded by logMu; emitters hold the read lock
	pid      int
	dir      string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: --logpath flag
	if flagPath != "" {
		return absPath(flagPath)
	}

	// Priority 2: AUTOTYPER_LOG_PATH environment variable
	if envPath := os.Getenv("AUTOTYPER_LOG_PATH"); envPath != "" {
		return absPath(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

// Path returns the diagnostics log file.
func Path() string {
	return filepath.Join(dir, diagName)
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	// Open eagerly so a bad directory fails here rather than on first write.
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	f.Close()

	diagFile = &lumberjack.Logger{
		Filename:   Path(),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

func Info(msg string) {
	logMu.RLock()
	defer logMu.RUnlock()
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	logMu.RLock()
	defer logMu.RUnlock()
	if logReady {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	logMu.RLock()
	defer logMu.RUnlock()
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	logMu.RLock()
	defer logMu.RUnlock()
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	logMu.RLock()
	defer logMu.RUnlock()
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	logMu.RLock()
	defer logMu.RUnlock()
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

// Session is the summary of one typing session.
type Session struct {
	ID      string
	Outcome string
	Length  int
	Typed   int
	Typos   int
	TotalMs float64
}

func SessionStart(length int) {
	logMu.RLock()
	defer logMu.RUnlock()
	if !logReady {
		return
	}
	diagLog.Info().
		Int("length", length).
		Msg("session_start")
}

func SessionEnd(s Session) {
	logMu.RLock()
	defer logMu.RUnlock()
	if !logReady {
		return
	}
	diagLog.Info().
		Str("id", s.ID).
		Str("outcome", s.Outcome).
		Int("length", s.Length).
		Int("typed", s.Typed).
		Int("typos", s.Typos).
		Float64("total_ms", s.TotalMs).
		Msg("session_end")
}

func HotkeyRebind(activate, cancel string, err error) {
	logMu.RLock()
	defer logMu.RUnlock()
	if !logReady {
		return
	}
	ev := diagLog.Info()
	if err != nil {
		ev = diagLog.Warn().Err(err)
	}
	ev.Str("activate", activate).
		Str("cancel", cancel).
		Msg("hotkey_rebind")
}

func SettingsChanged(speed int, variance, typoRate float64) {
	logMu.RLock()
	defer logMu.RUnlock()
	if !logReady {
		return
	}
	diagLog.Info().
		Int("speed", speed).
		Float64("variance", variance).
		Float64("typo_rate", typoRate).
		Msg("settings_changed")
}
