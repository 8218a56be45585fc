package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vanderheijden86/listfold/internal/datasource"
	"github.com/vanderheijden86/listfold/pkg/config"
	"github.com/vanderheijden86/listfold/pkg/debug"
	"github.com/vanderheijden86/listfold/pkg/export"
	"github.com/vanderheijden86/listfold/pkg/flatten"
	"github.com/vanderheijden86/listfold/pkg/loader"
	"github.com/vanderheijden86/listfold/pkg/model"
	"github.com/vanderheijden86/listfold/pkg/ui"
	"github.com/vanderheijden86/listfold/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	dataFlag := flag.String("data", "", "Items source: directory, .jsonl, .yaml, or .db file")
	depthFlag := flag.Int("depth", -99, "Initial collapse depth (-1 expands everything)")
	exportFlag := flag.Bool("export", false, "Run the snapshot wizard instead of the TUI")
	noWatch := flag.Bool("no-watch", false, "Disable live reload on file changes")
	noMouse := flag.Bool("no-mouse", false, "Disable mouse support")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: lv [options] [path]")
		fmt.Println("\nA folding outline viewer for ListHub exports.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		cfg = config.DefaultConfig()
	}

	dataPath, err := resolveDataPath(*dataFlag, flag.Arg(0), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating items: %v\n", err)
		fmt.Fprintln(os.Stderr, "Point lv at an export with 'lv <dir-or-file>', --data, or LISTFOLD_DIR.")
		os.Exit(1)
	}

	collapseDepth := cfg.CollapseDepth()
	if *depthFlag != -99 {
		collapseDepth = *depthFlag
	}

	load := func() (model.Sequence, error) {
		items, source, err := datasource.LoadItems(dataPath)
		if err != nil {
			return nil, err
		}
		debug.Log("loaded %d items from %s", len(items), source)
		return flatten.Flatten(items, flatten.Options{CollapseDepth: collapseDepth})
	}

	if *exportFlag {
		seq, err := load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading items: %v\n", err)
			os.Exit(1)
		}
		wcfg, err := export.RunWizard(seq)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", wcfg.OutputPath)
		os.Exit(0)
	}

	// Verify the source loads before entering the alt screen, so a bad path
	// fails with a readable message.
	if _, err := load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading items: %v\n", err)
		os.Exit(1)
	}

	var changes <-chan struct{}
	if !*noWatch {
		w, err := watcher.New(dataPath)
		if err != nil {
			debug.Log("watcher unavailable: %v", err)
		} else if err := w.Start(); err != nil {
			debug.Log("watcher start: %v", err)
		} else {
			changes = w.Changed()
			defer w.Stop()
		}
	}

	theme := ui.DefaultTheme(lipgloss.DefaultRenderer())
	m := ui.NewModel(theme, load, changes, cfg.PreviewEnabled())

	mouse := cfg.MouseEnabled() && !*noMouse
	if err := runTUIProgram(m, mouse); err != nil {
		fmt.Printf("Error running outline viewer: %v\n", err)
		os.Exit(1)
	}
}

// resolveDataPath picks the items source: flag, positional argument, config
// file, then the data directory lookup (LISTFOLD_DIR or cwd).
func resolveDataPath(flagPath, argPath string, cfg config.Config) (string, error) {
	for _, p := range []string{flagPath, argPath, cfg.DataPath} {
		if p != "" {
			return p, nil
		}
	}
	return loader.GetDataDir("")
}

func runTUIProgram(m ui.Model, mouse bool) error {
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if mouse && term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set LV_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("LV_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
