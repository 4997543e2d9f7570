package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"autotyper/clipboard"
	"autotyper/cue"
	"autotyper/engine"
	"autotyper/hotkey"
	"autotyper/keyboard"
	"autotyper/log"
	"autotyper/settings"
)

// waitTimeout bounds a WAIT command.
const waitTimeout = 10 * time.Second

// syncWriter serializes lines from the recorder and the display.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// scriptDisplay prints events synchronously and signals finished sessions.
type scriptDisplay struct {
	w        io.Writer
	sessions chan engine.Report
}

func (d *scriptDisplay) Status(s engine.Status)        { fmt.Fprintf(d.w, "status: %s\n", s) }
func (d *scriptDisplay) Settings(st settings.Settings) { fmt.Fprintln(d.w, settingsLine(st)) }
func (d *scriptDisplay) Error(msg string)              { fmt.Fprintf(d.w, "error: %s\n", firstLine(msg)) }
func (d *scriptDisplay) Info(msg string)               { fmt.Fprintln(d.w, msg) }

func (d *scriptDisplay) Session(rep engine.Report) {
	fmt.Fprintln(d.w, sessionLine(rep))
	select {
	case d.sessions <- rep:
	default:
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// runScript drives an App from line commands on in, with a fake hotkey
// source, an in-memory clipboard and a recording injector that prints each
// key to out. Delays are skipped. It returns the process exit code.
//
//	PRESS <key>          press a key on the fake keyboard
//	RELEASE <key>        release it
//	CHORD <chord>        press and release every key of a chord
//	CLIP <text>          set the clipboard; Go-quoted text is unquoted
//	REBIND <act> <can>   apply new chords
//	SLEEP <ms>           pause the script
//	WAIT                 block until the next session ends
//	QUIT                 stop and exit
func runScript(ctx context.Context, in io.Reader, out io.Writer, st settings.Settings) int {
	cue.Disable()

	w := &syncWriter{w: out}
	src := hotkey.NewFake()
	clip := clipboard.NewStatic("")
	rec := keyboard.NewRecorder()
	rec.Out = w
	disp := &scriptDisplay{w: w, sessions: make(chan engine.Report, 16)}

	app := NewApp(AppConfig{
		Settings:  st,
		Clipboard: clip,
		Injector:  rec,
		Source:    src,
		Display:   disp,
		Engine:    []engine.Option{engine.WithSleep(func(time.Duration) {})},
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- app.Run(ctx) }()

	code := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		quit, err := runCommand(app, src, clip, disp, strings.ToUpper(cmd), arg)
		if err != nil {
			fmt.Fprintf(w, "script: %s: %v\n", line, err)
			log.Warnf("script: %s: %v", line, err)
			code = 1
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(w, "script: %v\n", err)
		code = 1
	}

	cancel()
	if err := <-errc; err != nil {
		fmt.Fprintf(w, "script: %v\n", err)
		code = 1
	}
	return code
}

func runCommand(app *App, src *hotkey.FakeSource, clip *clipboard.Static, disp *scriptDisplay, cmd, arg string) (quit bool, err error) {
	switch cmd {
	case "PRESS", "RELEASE":
		k, err := hotkey.ParseKey(arg)
		if err != nil {
			return false, err
		}
		if cmd == "PRESS" {
			src.SimPress(k)
		} else {
			src.SimRelease(k)
		}
	case "CHORD":
		c, err := hotkey.ParseChord(arg)
		if err != nil {
			return false, err
		}
		src.SimChord(c)
	case "CLIP":
		text := arg
		if unq, err := strconv.Unquote(arg); err == nil {
			text = unq
		}
		clip.Set(text, nil)
	case "REBIND":
		fields := strings.Fields(arg)
		if len(fields) != 2 {
			return false, fmt.Errorf("want two chords, got %d", len(fields))
		}
		app.ApplySettings(app.Settings().WithChords(fields[0], fields[1]))
	case "SLEEP":
		ms, err := strconv.Atoi(arg)
		if err != nil {
			return false, err
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
	case "WAIT":
		select {
		case <-disp.sessions:
		case <-time.After(waitTimeout):
			return false, fmt.Errorf("no session ended within %s", waitTimeout)
		}
	case "QUIT":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}
