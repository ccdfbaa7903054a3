// Command ls-orrery is an animated, interactive solar-system orrery for the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/controls"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orrery"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
)

const (
	minFPS = 1
	maxFPS = 120

	// Canvas size for -snapshot when stdout is not a terminal.
	snapshotWidth  = 100
	snapshotHeight = 32
)

// Config holds the command-line settings.
type Config struct {
	FPS      int
	LogLevel string
	LogFile  string
	Seed     int64
	Light    bool

	// Headless mode
	Frames   int
	Snapshot bool
	JSON     bool
	Metrics  bool
}

// Headless reports whether the run prints results instead of starting the TUI.
func (c Config) Headless() bool {
	return c.Frames > 0 || c.Snapshot || c.JSON
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// parseFlags processes command-line arguments into a Config.
func parseFlags(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{}
	fs := flag.NewFlagSet("ls-orrery", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.FPS, "fps", ui.DefaultFPS, "Animation frame rate")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Write logs to file (default: discard in TUI, stderr headless)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Starfield seed (0 = time-based)")
	fs.BoolVar(&cfg.Light, "light", false, "Start in light mode")
	fs.IntVar(&cfg.Frames, "frames", 0, "Advance N frames headless and print a planet table")
	fs.BoolVar(&cfg.Snapshot, "snapshot", false, "Headless: also print the rendered scene")
	fs.BoolVar(&cfg.JSON, "json", false, "Headless: print the planet table as JSON")
	fs.BoolVar(&cfg.Metrics, "metrics", false, "Dump Prometheus metrics on exit (to the log, or stderr after the TUI exits)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	// Validate frame rate
	if cfg.FPS < minFPS {
		cfg.FPS = minFPS
	} else if cfg.FPS > maxFPS {
		cfg.FPS = maxFPS
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// run executes the program and returns its exit code. Deferred cleanup
// (closing the log, dumping metrics) always runs before main exits.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	logOut, closeLog, err := openLog(cfg.LogFile, cfg.Headless(), stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	logger.SetOutput(logOut)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Initialize components
	sceneCfg := orrery.DefaultConfig()
	sceneCfg.Seed = cfg.Seed
	scene, err := orrery.NewScene(sceneCfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	stateCfg := state.DefaultConfig()
	stateCfg.StartDark = !cfg.Light
	stateMgr := state.NewManager(stateCfg)

	collector := metrics.NewCollector()
	if cfg.Metrics {
		defer dumpMetrics(collector, metricsOutput(cfg, logOut, stderr), logger)
	}

	logger.Info("Starting orrery: %d planets, %d stars, seed %d, %d fps",
		len(scene.Planets), len(scene.Stars), cfg.Seed, cfg.FPS)

	// Headless mode: no TUI
	if cfg.Headless() {
		if err := runHeadless(ctx, cfg, scene, stateMgr, collector, logger, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// Create TUI model
	model := ui.New(scene, stateMgr, ui.Options{
		FPS:     cfg.FPS,
		Logger:  logger,
		Metrics: collector,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
		return 1
	}
	logger.Info("Stopped after %d frames", stateMgr.Frame())
	return 0
}

// openLog picks the log destination. The TUI owns the terminal, so without
// a file it logs nowhere; headless runs log to stderr.
func openLog(path string, headless bool, stderr io.Writer) (io.Writer, func(), error) {
	if path == "" {
		if headless {
			return stderr, func() {}, nil
		}
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// metricsOutput is where -metrics writes its dump. It follows the log, except
// that a TUI run without a log file dumps to stderr once the TUI has exited.
func metricsOutput(cfg Config, logOut, stderr io.Writer) io.Writer {
	if !cfg.Headless() && cfg.LogFile == "" {
		return stderr
	}
	return logOut
}

func dumpMetrics(collector *metrics.Collector, w io.Writer, logger *logging.Logger) {
	if err := collector.WriteText(w); err != nil {
		logger.Error("Dump metrics: %v", err)
	}
}

// runHeadless advances the scene without a TUI and prints the result.
func runHeadless(ctx context.Context, cfg Config, scene *orrery.Scene, stateMgr *state.Manager, collector *metrics.Collector, logger *logging.Logger, stdout io.Writer) error {
	for i := 0; i < cfg.Frames; i++ {
		if ctx.Err() != nil {
			logger.Warn("Interrupted at frame %d", stateMgr.Frame())
			break
		}
		start := time.Now()
		scene.Step(stateMgr.Paused())
		stateMgr.AdvanceFrame()
		collector.RecordFrame(stateMgr.Paused(), time.Since(start))
	}
	logger.Debug("Advanced %d frames", stateMgr.Frame())

	export := orrery.ExportSnapshot(scene, stateMgr.Frame(), stateMgr.Paused())
	if cfg.JSON {
		if err := export.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	} else {
		export.WriteSummaryTable(stdout)
	}

	if cfg.Snapshot {
		w, h, isTTY := snapshotSize(stdout)
		scene.SetAspect(ui.CanvasAspect(w, h))
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, ui.RenderScene(scene, w, h, controls.PaletteFor(stateMgr.DarkMode()), !isTTY))
	}
	return nil
}

// snapshotSize fits the snapshot to the terminal behind stdout, leaving room
// for the prompt, or falls back to a fixed size.
func snapshotSize(stdout io.Writer) (w, h int, isTTY bool) {
	f, ok := stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return snapshotWidth, snapshotHeight, false
	}
	if tw, th, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 && th > 4 {
		return tw, th - 4, true
	}
	return snapshotWidth, snapshotHeight, true
}
