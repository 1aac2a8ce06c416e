// Package main is the entry point for the linkday application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"linkday/internal/config"
	"linkday/internal/storage"
	"linkday/internal/task"
	"linkday/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `linkday - a chain-linking daily task tracker for your terminal

USAGE:
    linkday [OPTIONS]
    linkday <command> [ARGS]

COMMANDS:
    backup           Create a backup of your task data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Generate a day report (Markdown)
    export --timeline  Generate the completion timeline
    export -f json   Output report as JSON

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    linkday is a keyboard-driven task tracker built around chains: link a
    task after another and it slots in right behind it, keeping each day's
    list densely ordered. Hashtags in task text become filters, and
    completed tasks build a browsable timeline.

KEYBINDINGS:
    Tab          Cycle Active / Done / Timeline
    h / l        Previous / next day
    j / k        Navigate
    a            Add task
    e            Edit task text
    d / Space    Toggle done
    x            Delete task
    t            Set start time (HH:MM)
    L            Link task after another
    U            Remove a task's link
    f / F        Cycle / clear hashtag filter
    ?            Help overlay
    q            Quit

DATA STORAGE:
    Tasks are stored in ~/.linkday/tasks.json as a plain JSON array.

CONFIGURATION:
    Optional config file: ~/.config/linkday/config.yaml

EXAMPLES:
    # Start the app
    linkday

    # Create a backup
    linkday backup

    # Restore from the most recent backup
    linkday restore --latest

    # Today's report as JSON
    linkday export --format json
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
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
		fmt.Printf("linkday version %s\n", version)
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

	// Load configuration (from ~/.config/linkday/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage with configured data directory
	persist, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// A load error still yields a usable (possibly recovered) store;
	// surface the warning and keep going.
	store, err := task.NewStore(persist)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	store.SetErrorSink(func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	})

	styles := ui.NewStylesFromTheme(&cfg.Theme)

	appCfg := &ui.AppConfig{
		Keys:             &cfg.Keys,
		ConfirmDeletions: cfg.UX.ConfirmDeletions,
		HighlightTags:    cfg.UX.HighlightTags,
	}

	if err := ui.Run(store, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
