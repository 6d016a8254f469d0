// Package main is the entry point for taskmaster. It loads configuration,
// opens the task store, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"taskmaster/internal/config"
	"taskmaster/internal/engine"
	"taskmaster/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `taskmaster - a terminal task tracker

USAGE:
    taskmaster [OPTIONS]
    taskmaster export [-f json|csv]
    taskmaster import -f todoist|taskwarrior [-n] [file]

COMMANDS:
    export           Print all tasks to stdout (JSON by default)
    export -f csv    Print all tasks as CSV
    import           Import tasks from a Todoist CSV or Taskwarrior
                     JSON export (reads stdin when no file is given;
                     -n previews without importing)

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

KEYBINDINGS:
    j/k, ↓/↑     Navigate            n            New task
    Space        Toggle done         e, Enter     Edit task
    d            Delete task         p            Set priority
    u            Set due date        s, /         Search
    Tab          Cycle filter        r            Cycle sort
    R            Reverse sort        m            Archive done tasks
    g/G          Top/bottom          ?            Help
    q            Quit

DATA STORAGE:
    Tasks live in a single JSON file, ~/.taskmaster.json by default. The
    file is rewritten atomically after every change, with a best-effort
    .bak copy kept alongside.

CONFIGURATION:
    Optional config file: ~/.config/taskmaster/config.yaml
    (data file path, theme colors, key bindings, UX settings)
`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("taskmaster version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := engine.New(cfg.DataFile)
	store.SetDueSoonWindow(time.Duration(cfg.UX.DueSoonHours) * time.Hour)

	// A load failure is a warning, not a crash: the store starts empty and
	// the broken file has been moved aside.
	var loadWarning string
	if err := store.Load(); err != nil {
		loadWarning = "Error loading tasks: " + err.Error()
	}

	styles := ui.NewStyles(&cfg.Theme)
	appCfg := &ui.AppConfig{
		Keys:             &cfg.Keys,
		ConfirmDeletions: cfg.UX.ConfirmDeletions,
	}

	if err := ui.Run(store, styles, appCfg, loadWarning); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
