package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/Dicklesworthstone/skillport/pkg/api"
	"github.com/Dicklesworthstone/skillport/pkg/config"
	"github.com/Dicklesworthstone/skillport/pkg/export"
	"github.com/Dicklesworthstone/skillport/pkg/loader"
	"github.com/Dicklesworthstone/skillport/pkg/store"
	"github.com/Dicklesworthstone/skillport/pkg/ui"
	"github.com/Dicklesworthstone/skillport/pkg/updater"
	"github.com/Dicklesworthstone/skillport/pkg/version"
	"github.com/Dicklesworthstone/skillport/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the exit code so deferred cleanup finishes before the process
// exits.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("skillport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	help := fs.Bool("help", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	checkUpdate := fs.Bool("check-update", false, "Check for a newer release and exit")
	configPath := fs.String("config", "", "Config file (default $XDG_CONFIG_HOME/skillport/config.yaml)")
	dataDir := fs.String("data", "", "Directory with dataset overrides")
	debug := fs.Bool("debug", false, "Write logs to skillport-debug.log")
	snapshot := fs.Bool("snapshot", false, "Render one frame at the terminal size and exit")
	page := fs.String("page", "", "Open this page instead of the landing screen")
	exportSVG := fs.String("export-svg", "", "Write the progress report as SVG and exit")
	exportPNG := fs.String("export-png", "", "Write the progress report as PNG and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *help {
		fmt.Fprintln(stdout, "Usage: skillport [options]")
		fmt.Fprintln(stdout, "\nLearn, connect and get hired from your terminal.")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	if *showVersion {
		fmt.Fprintf(stdout, "skillport version %s\n", version.Version)
		return 0
	}

	if *checkUpdate {
		rel, err := updater.New().Check(context.Background(), version.Version)
		switch {
		case err != nil:
			fmt.Fprintf(stderr, "Error checking for updates: %v\n", err)
			return 1
		case rel == nil:
			fmt.Fprintf(stdout, "skillport %s is up to date\n", version.Version)
		default:
			fmt.Fprintf(stdout, "skillport %s is available: %s\n", rel.TagName, rel.HTMLURL)
		}
		return 0
	}

	path := *configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	ds, err := loader.LoadDataset(cfg.Data.Dir)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading data: %v\n", err)
		return 1
	}

	learner := os.Getenv("USER")

	// Report exports run without the TUI.
	if *exportSVG != "" || *exportPNG != "" {
		for _, target := range []struct{ path, format string }{{*exportSVG, "svg"}, {*exportPNG, "png"}} {
			if target.path == "" {
				continue
			}
			err := export.SaveProgressSnapshot(export.ProgressSnapshotOptions{
				Path:    target.path,
				Format:  target.format,
				Learner: learner,
				Courses: ds.Courses,
			})
			if err != nil {
				fmt.Fprintf(stderr, "Error exporting report: %v\n", err)
				return 1
			}
			fmt.Fprintf(stdout, "Wrote %s\n", target.path)
		}
		return 0
	}

	if *debug || os.Getenv(config.EnvDebug) != "" {
		f, err := tea.LogToFile("skillport-debug.log", "debug")
		if err != nil {
			fmt.Fprintf(stderr, "Error opening debug log: %v\n", err)
			return 1
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	db := store.TryOpen(cfg.Storage.Driver, cfg.Storage.Path)
	defer db.Close()

	var client *api.Client
	if cfg.API.BaseURL != "" {
		client = api.New(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var w *watcher.Watcher
	if cfg.Data.Watch && cfg.Data.Dir != "" && !*snapshot {
		w, err = watcher.New(cfg.Data.Dir, watcher.DefaultDebounce)
		if err != nil {
			log.Printf("Warning: live reload disabled: %v", err)
			w = nil
		} else {
			go w.Run(ctx)
		}
	}

	app := ui.NewApp(ui.Options{
		Config:    cfg,
		Dataset:   ds,
		Store:     db,
		API:       client,
		Watcher:   w,
		Learner:   learner,
		StartPage: ui.Page(*page),
		Context:   ctx,
	})
	defer app.Close()

	if *snapshot {
		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 || height <= 0 {
			width, height = 120, 40
		}
		app.Init()
		app.Update(tea.WindowSizeMsg{Width: width, Height: height})
		fmt.Fprintln(stdout, app.View())
		return 0
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Display.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(app, opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "Error running skillport: %v\n", err)
		return 1
	}
	return 0
}
