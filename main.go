package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"autotyper/clipboard"
	"autotyper/cue"
	"autotyper/doctor"
	"autotyper/history"
	"autotyper/hotkey"
	"autotyper/keyboard"
	"autotyper/log"
	"autotyper/settings"
	"autotyper/shutdown"
)

var version = "dev"

var (
	configPath  string
	logPathFlag string

	flagSpeed    int
	flagVariance float64
	flagTypoRate float64
	flagActivate string
	flagCancel   string
	flagHeadless bool
	flagGUI      bool
	flagSound    bool
	flagHistory  bool

	historyLimit int
	configReset  bool
)

// exitCode is set by commands that report failure without an error.
var exitCode int

var errNoGUI = errors.New("built without GUI support (rebuild with -tags gui)")

// run executes the CLI and records the process exit code.
func run() {
	if err := newRootCmd().Execute(); err != nil {
		exitCode = 1
	}
}

// guiRequested reports whether args turn on --gui. It runs before cobra
// parses anything because the window needs the main thread.
func guiRequested(args []string) bool {
	on := false
	for _, arg := range args {
		if arg == "--" {
			break
		}
		name, val, hasVal := strings.Cut(arg, "=")
		if name != "--gui" {
			continue
		}
		if !hasVal {
			on = true
			continue
		}
		b, err := strconv.ParseBool(val)
		on = err == nil && b
	}
	return on
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "autotyper",
		Short:             "Type the clipboard like a human",
		Long:              "autotyper types the clipboard into the focused window with human-like timing and typos when a global hotkey is pressed.",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runTyperCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: $AUTOTYPER_CONFIG or XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&logPathFlag, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")

	rootCmd.Flags().IntVar(&flagSpeed, "speed", settings.DefaultSpeed, "typing speed in words per minute (30-120)")
	rootCmd.Flags().Float64Var(&flagVariance, "variance", settings.DefaultVariance, "delay variance (0-1)")
	rootCmd.Flags().Float64Var(&flagTypoRate, "typo-rate", settings.DefaultTypoRate, "probability of a typo per letter (0-0.1)")
	rootCmd.Flags().StringVar(&flagActivate, "activate", "", "activate hotkey chord, e.g. <ctrl>+<shift>+k")
	rootCmd.Flags().StringVar(&flagCancel, "cancel", "", "cancel hotkey chord, e.g. <esc>")
	rootCmd.Flags().BoolVar(&flagHeadless, "headless", false, "print events instead of running the terminal UI")
	rootCmd.Flags().BoolVar(&flagGUI, "gui", false, "open a desktop window instead of the terminal UI")
	rootCmd.Flags().BoolVar(&flagSound, "sound", true, "play audio cues")
	rootCmd.Flags().BoolVar(&flagHistory, "history", true, "record sessions in the history database")

	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newScriptCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func setupLogging(_ *cobra.Command, _ []string) error {
	logPath, err := log.ResolveDir(logPathFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve log directory: %w", err)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		logErrf("Warning: could not create log directory: %v\n", err)
		return nil
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if err := log.Init(); err != nil {
		logErrf("Warning: could not init logging: %v\n", err)
	}
	return nil
}

// loadSettings reads the settings file. A broken file is reported and
// replaced by defaults in memory; it is overwritten on the next save.
func loadSettings() (*settings.Store, settings.Settings) {
	store := settings.NewStore(settings.ResolvePath(configPath))
	st, err := store.Load()
	if err != nil {
		log.Warnf("settings: %v", err)
		logErrf("Warning: %v (using defaults)\n", err)
	}
	return store, st
}

func applyFlags(cmd *cobra.Command, st settings.Settings) settings.Settings {
	p := st.Params()
	applyIntFlag(cmd, "speed", &p.Speed, flagSpeed)
	applyFloatFlag(cmd, "variance", &p.Variance, flagVariance)
	applyFloatFlag(cmd, "typo-rate", &p.TypoRate, flagTypoRate)
	applyStringFlag(cmd, "activate", &p.ActivateChord, flagActivate)
	applyStringFlag(cmd, "cancel", &p.CancelChord, flagCancel)
	return settings.New(p)
}

func runTyperCmd(cmd *cobra.Command, _ []string) error {
	defer log.Close()

	store, st := loadSettings()
	st = applyFlags(cmd, st)

	if flagSound {
		cue.Init()
	} else {
		cue.Disable()
	}

	inj, err := keyboard.New()
	if err != nil {
		log.Errorf("keyboard init: %v", err)
		logErrf("Error: cannot inject keystrokes: %v\n\n%s\n", err, doctor.PermissionHelp())
		return err
	}
	defer inj.Close()

	var hist *history.Store
	if flagHistory {
		hist, err = history.Open(settings.DefaultHistoryPath())
		if err != nil {
			log.Warnf("history: %v", err)
			logErrf("Warning: session history disabled: %v\n", err)
		} else {
			defer hist.Close()
		}
	}

	ctx, stop := shutdown.Context(cmd.Context())
	defer stop()

	cfg := AppConfig{
		Settings:  st,
		Store:     store,
		Clipboard: clipboard.System{},
		Injector:  inj,
		Source:    hotkey.New(),
		History:   hist,
		Probe:     doctor.LikelyAvailable,
	}
	if clipboard.Unsupported() {
		logErrln("Warning: no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}

	if flagGUI {
		return runGUI(ctx, cfg)
	}
	if flagHeadless || !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runHeadless(ctx, cfg)
	}
	return runTUI(ctx, cfg)
}

func runHeadless(ctx context.Context, cfg AppConfig) error {
	disp := newLineDisplay(os.Stdout)
	defer disp.Close()
	cfg.Display = disp
	log.Info("running headless")
	return NewApp(cfg).Run(ctx)
}

func runTUI(ctx context.Context, cfg AppConfig) error {
	disp := &tuiDisplay{}
	cfg.Display = disp
	app := NewApp(cfg)
	p := NewTUIProgram(app)
	disp.p = p

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		errc <- app.Run(ctx)
		p.Quit()
	}()

	_, err := p.Run()
	cancel()
	if aerr := <-errc; aerr != nil {
		log.Errorf("shutdown: %v", aerr)
	}
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run interactive system diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer log.Close()
			_, st := loadSettings()
			ctx, stop := shutdown.Context(cmd.Context())
			defer stop()
			exitCode = doctor.Run(ctx, st)
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the settings file path and current settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configReset, "reset", false, "restore default settings")
	return cmd
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	defer log.Close()
	store, st := loadSettings()
	if configReset {
		var err error
		if st, err = store.Reset(); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		log.Info("settings reset to defaults")
	}
	data, err := settings.Encode(st)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", store.Path())
	_, err = out.Write(data)
	return err
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent typing sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVarP(&historyLimit, "last", "n", 10, "number of sessions to show")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	defer log.Close()
	hist, err := history.Open(settings.DefaultHistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() {
		if cerr := hist.Close(); cerr != nil {
			logErrf("failed to close history: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	sessions, err := hist.Recent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	sum, err := hist.Summarize(ctx)
	if err != nil {
		return fmt.Errorf("failed to summarize history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "%-19s  %-9s  %7s  %5s  %6s  %s\n", "started", "outcome", "chars", "typos", "time", "wpm")
	for _, s := range sessions {
		fmt.Fprintf(out, "%-19s  %-9s  %7s  %5d  %5.1fs  %d\n",
			s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.Outcome,
			fmt.Sprintf("%d/%d", s.Typed, s.Length), s.Typos, s.Duration().Seconds(), s.Speed)
	}
	fmt.Fprintf(out, "\n%d sessions, %d characters, %d typos (completed %d, cancelled %d, failed %d)\n",
		sum.Sessions, sum.Characters, sum.Typos,
		sum.ByOutcome["completed"], sum.ByOutcome["cancelled"], sum.ByOutcome["failed"])
	return nil
}

func newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script",
		Short: "Drive a simulated session from stdin commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer log.Close()
			_, st := loadSettings()
			exitCode = runScript(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "autotyper %s\n", version)
		},
	}
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if flagChanged(cmd, name) {
		*target = value
	}
}

func applyFloatFlag(cmd *cobra.Command, name string, target *float64, value float64) {
	if flagChanged(cmd, name) {
		*target = value
	}
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if flagChanged(cmd, name) {
		*target = value
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func logErrf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func logErrln(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
}
