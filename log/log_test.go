package log

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir("") })
	return tmp
}

func readDiag(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "diagnostics_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestResolveDirFlag(t *testing.T) {
	got, err := ResolveDir("/tmp/mylog")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/mylog" {
		t.Errorf("got %q, want /tmp/mylog", got)
	}
}

func TestResolveDirFlagRelative(t *testing.T) {
	got, err := ResolveDir("logs")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("AUTOTYPER_LOG_PATH", "/tmp/autotyper-env-log")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/autotyper-env-log" {
		t.Errorf("got %q, want /tmp/autotyper-env-log", got)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("AUTOTYPER_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "autotyper") {
		t.Errorf("default directory %q should be app-specific", got)
	}
}

func TestInitCreatesFile(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "diagnostics_log.txt")); err != nil {
		t.Errorf("diagnostics_log.txt not created: %v", err)
	}
}

func TestSessionEvents(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	SessionStart(42)
	SessionEnd(Session{ID: "abc-123", Outcome: "cancelled", Length: 42, Typed: 7, Typos: 1, TotalMs: 812.5})
	HotkeyRebind("<alt>+t", "<ctrl>+", errors.New("bad chord"))
	Close()

	got := readDiag(t, tmp)
	for _, want := range []string{"session_start", "session_end", "outcome=cancelled", "typed=7", "hotkey_rebind", "bad chord"} {
		if !strings.Contains(got, want) {
			t.Errorf("log missing %q, got: %q", want, got)
		}
	}
}

func TestNoopBeforeInit(t *testing.T) {
	tmp := setupLogDir(t)

	Info("dropped")
	SessionStart(1)

	if _, err := os.Stat(filepath.Join(tmp, "diagnostics_log.txt")); !os.IsNotExist(err) {
		t.Errorf("log written before Init: %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Close()
	Close() // should not panic
}

func TestLogDuringClose(t *testing.T) {
	tmp := setupLogDir(t)
	if err := Init(); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for range 200 {
				Info("tick")
				SessionEnd(Session{ID: "s", Outcome: "completed"})
			}
		}()
	}
	close(start)
	Close()
	wg.Wait()

	before := readDiag(t, tmp)
	Info("after close")
	if got := readDiag(t, tmp); got != before {
		t.Error("log written after Close")
	}
}
