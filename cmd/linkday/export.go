// Package main is the entry point for the linkday application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"linkday/internal/config"
	"linkday/internal/fsutil"
	"linkday/internal/reports"
	"linkday/internal/storage"
	"linkday/internal/task"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `linkday export - Generate task reports

USAGE:
    linkday export [OPTIONS] [DAY]

OPTIONS:
    -d, --daily        Generate a day report (default)
    -t, --timeline     Generate the completion timeline
    -f, --format FMT   Output format: markdown (default) or json
    -o, --output FILE  Write to file instead of stdout
    --tag TAG          Narrow the timeline to one hashtag (e.g. #work)
    -h, --help         Show this help message

ARGUMENTS:
    DAY                Day for the report (YYYY-MM-DD). Defaults to today.

DESCRIPTION:
    Generates reports from your task list. The day report covers pending
    and completed tasks, chains, and hashtag counts for one day; the
    timeline report lists every completed task, newest day first.

EXAMPLES:
    # Today's report in Markdown
    linkday export

    # A specific day
    linkday export 2025-12-14

    # Completion timeline, narrowed to one tag
    linkday export --timeline --tag '#work'

    # JSON to a file
    linkday export --format json --output report.json
`

// runExport handles the "linkday export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	dailyFlag := fs.Bool("daily", false, "generate a day report")
	fs.BoolVar(dailyFlag, "d", false, "generate a day report (shorthand)")

	timelineFlag := fs.Bool("timeline", false, "generate the completion timeline")
	fs.BoolVar(timelineFlag, "t", false, "generate the completion timeline (shorthand)")

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	tagFlag := fs.String("tag", "", "narrow the timeline to one hashtag")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	format := *formatFlag
	if format != "markdown" && format != "json" && format != "md" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}
	if format == "md" {
		format = "markdown"
	}

	// Parse day argument
	day := task.DayKey(time.Now())
	if fs.NArg() > 0 {
		parsed, err := time.ParseInLocation("2006-01-02", fs.Arg(0), time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid day %q. Use YYYY-MM-DD format.\n", fs.Arg(0))
			os.Exit(1)
		}
		day = task.DayKey(parsed)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	persist, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	store, err := task.NewStore(persist)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	gen := reports.NewGenerator(store)

	var output string
	if *timelineFlag {
		var tags []string
		if *tagFlag != "" {
			tags = []string{*tagFlag}
		}
		report := gen.GenerateTimeline(tags)

		if format == "json" {
			data, err := reports.FormatTimelineJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = reports.FormatTimelineMarkdown(report)
		}
	} else {
		report := gen.GenerateDaily(day)

		if format == "json" {
			data, err := reports.FormatDailyJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = reports.FormatDailyMarkdown(report)
		}
	}

	if *outputFlag != "" {
		if err := os.MkdirAll(filepath.Dir(*outputFlag), 0700); err != nil && filepath.Dir(*outputFlag) != "." {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		if err := fsutil.WriteAtomic(*outputFlag, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}
