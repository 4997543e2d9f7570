// Package doctor probes the OS permissions autotyper needs and walks the
// user through interactive checks.
package doctor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"autotyper/clipboard"
	"autotyper/engine"
	"autotyper/hotkey"
	"autotyper/keyboard"
	"autotyper/settings"
)

// LikelyAvailable reports whether global key capture is likely to work.
// It never opens the persistent subscription.
func LikelyAvailable() bool {
	_, err := hotkey.Diagnose()
	return err == nil
}

// PermissionHelp returns platform guidance for a failed key subscription.
func PermissionHelp() string {
	return permissionHelp(runtime.GOOS)
}

func permissionHelp(goos string) string {
	switch goos {
	case "darwin":
		return "Could not register global hotkeys.\n\n" +
			"Grant Accessibility permission:\n" +
			"System Settings > Privacy & Security > Accessibility\n\n" +
			"Add your terminal app to the list, then restart autotyper."
	case "windows":
		return "Could not register global hotkeys.\n\n" +
			"Try running autotyper as Administrator.\n" +
			"If the issue persists, check that no other application grabs the same keys."
	default:
		return "Could not register global hotkeys.\n\n" +
			"autotyper reads /dev/input and writes /dev/uinput. Add yourself to the input group:\n" +
			"  sudo usermod -aG input $USER\n" +
			"  sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput\n" +
			"then log out and back in."
	}
}

const accessibilityPane = "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"

// OpenSettings opens the macOS Accessibility pane. Elsewhere it does nothing.
func OpenSettings() error {
	if runtime.GOOS != "darwin" {
		return nil
	}
	return exec.Command("open", accessibilityPane).Run()
}

// Run executes interactive diagnostic checks and returns an exit code
// (0=all pass, 1=any fail).
func Run(ctx context.Context, st settings.Settings) int {
	resetTerminal()

	fmt.Println("autotyper doctor - interactive system diagnostics")
	fmt.Println("=================================================")

	checks := []func(context.Context, settings.Settings) bool{
		checkInput,
		checkChord,
		checkClipboard,
		checkTyping,
	}
	allPass := true
	for _, check := range checks {
		if ctx.Err() != nil {
			fmt.Println("\nInterrupted")
			return 1
		}
		if !check(ctx, st) {
			allPass = false
			break
		}
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkInput(context.Context, settings.Settings) bool {
	fmt.Println()
	fmt.Println("[1/4] Keyboard input access")

	msg, err := hotkey.Diagnose()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		fmt.Println(indent(PermissionHelp()))
		return false
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}

func checkChord(ctx context.Context, st settings.Settings) bool {
	fmt.Println()
	fmt.Println("[2/4] Hotkey detection")
	fmt.Printf("Press %s...\n", st.ActivateChord())

	fired := make(chan struct{}, 1)
	l := hotkey.NewListener(hotkey.New(), func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, nil)
	if err := l.Start(st.ActivateChord(), st.CancelChord()); err != nil {
		fmt.Printf("  FAIL: could not start listener: %v\n", err)
		return false
	}
	defer l.Stop()

	select {
	case <-fired:
		fmt.Println("  PASS: hotkey detected")
		// Reset terminal after hotkey - it may leave terminal in raw mode
		resetTerminal()
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for hotkey")
		return false
	case <-ctx.Done():
		return false
	}
}

func checkClipboard(context.Context, settings.Settings) bool {
	fmt.Println()
	fmt.Println("[3/4] Clipboard read")

	if clipboard.Unsupported() {
		fmt.Println("  FAIL: no clipboard utility found (install xclip, xsel or wl-clipboard)")
		return false
	}

	testStr := fmt.Sprintf("autotyper-doctor-%d", time.Now().UnixNano())

	type cbResult struct {
		readback string
		err      error
		phase    string
	}
	ch := make(chan cbResult, 1)
	go func() {
		if err := clipboard.Copy(testStr); err != nil {
			ch <- cbResult{err: err, phase: "write"}
			return
		}
		got, err := clipboard.Read()
		if err != nil {
			ch <- cbResult{err: err, phase: "read"}
			return
		}
		ch <- cbResult{readback: got}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			fmt.Printf("  FAIL: clipboard %s failed: %v\n", res.phase, res.err)
			return false
		}
		if res.readback != testStr {
			fmt.Printf("  FAIL: clipboard mismatch: wrote %q, got %q\n", testStr, res.readback)
			return false
		}
		fmt.Println("  PASS: clipboard write/read verified")
		return true
	case <-time.After(3 * time.Second):
		fmt.Println("  FAIL: clipboard timed out (clipboard tool hung - compositor not accessible?)")
		return false
	}
}

const typingSample = "autotyper doctor"

func checkTyping(ctx context.Context, st settings.Settings) bool {
	fmt.Println()
	fmt.Println("[4/4] Keystroke output")

	dev, err := keyboard.New()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		fmt.Println(indent(PermissionHelp()))
		return false
	}
	defer dev.Close()

	fmt.Println("Focus on a text editor window...")
	for i := 5; i > 0; i-- {
		fmt.Printf("  %d...\n", i)
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			return false
		}
	}

	p := st.Params()
	p.TypoRate = 0
	eng := engine.New(dev, settings.New(p), nil)
	if _, err := eng.Run(typingSample); err != nil {
		fmt.Printf("  FAIL: typing failed: %v\n", err)
		return false
	}

	// Reset terminal and use fresh reader for confirmation
	resetTerminal()
	confirmReader := bufio.NewReader(os.Stdin)
	fmt.Println()
	fmt.Printf("Did the text %q appear? [y/n]: ", typingSample)
	confirm, _ := confirmReader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))

	if confirm != "y" && confirm != "yes" {
		fmt.Println("  FAIL: typing not confirmed")
		return false
	}
	fmt.Println("  PASS: typing verified by user")
	return true
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
