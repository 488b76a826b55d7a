package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func binaryName() string {
	if len(os.Args) == 0 {
		return "splitflap"
	}
	name := strings.TrimSpace(filepath.Base(os.Args[0]))
	if name == "" {
		return "splitflap"
	}
	return name
}

func isHelpArg(arg string) bool {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "-h", "--help", "-help", "help":
		return true
	default:
		return false
	}
}

func printRootUsage(w io.Writer) {
	bin := binaryName()
	fmt.Fprintf(w, `%s - split-flap display controller

Usage:
  %s <command> [options]

Commands:
  show        Render one widget to the board
  playlist    Manage and run the rotating playlist
  schedule    Manage and run timed tasks

Config:
  - --config is optional; defaults to data/config.toml and is created
    with defaults on first run.
  - API keys come from the environment: LOCAL_API_KEY + BOARD_IP for the
    local transport, INTERNET_API_KEY for the hosted one, WEATHER_API_KEY
    for the weather widget.

Help:
  %s <command> -h
`, bin, bin, bin)
}

func printShowUsage(w io.Writer) {
	bin := binaryName()
	fmt.Fprintf(w, `Usage:
  %s show <widget> [options]

Widgets:
  text, file, clear, joke, sat-word, weather

Options:
  --input <value>        Widget input, JSON or raw text
  --transport <name>     Override transport (local|internet|console)
  --dry-run              Render to the console instead of the board
  --config <file>        Config file (default: data/config.toml)

Examples:
  %s show text --input "hello world" --dry-run
  %s show weather
`, bin, bin, bin)
}

func printPlaylistUsage(w io.Writer) {
	bin := binaryName()
	fmt.Fprintf(w, `Usage:
  %s playlist <add|remove|list|clear|set-interval|run> [options]

Subcommands:
  add            Append an item (--widget required, --input optional)
  remove <id>    Delete one item
  list           Print the playlist
  clear          Delete every item, keeping the interval
  set-interval <seconds>
                 Change the rotation interval (minimum 60)
  run            Rotate through the playlist until interrupted

Run options:
  --once                 Stop after one full cycle
  --start-index <n>      Item index to start from
  --resume               Resume from the saved position
  --transport <name>     Override transport (local|internet|console)
  --dry-run              Render to the console instead of the board
  --config <file>        Config file (default: data/config.toml)

Keys during run:
  q quit, p pause, r resume, n next, ? help

Examples:
  %s playlist add --widget joke
  %s playlist run --once --dry-run
`, bin, bin, bin)
}

func printScheduleUsage(w io.Writer) {
	bin := binaryName()
	fmt.Fprintf(w, `Usage:
  %s schedule <add|remove|list|clear|preview|run> [options]

Subcommands:
  add            Queue a task (--widget plus --at or --cron)
  remove <id>    Delete one task
  list           Print every task
  clear          Delete every task
  preview        Print pending tasks with countdowns
  run            Fire tasks at their times until interrupted

Add options:
  --widget <name>        Widget to run (required)
  --input <value>        Widget input, JSON or raw text
  --at <time>            Fire time, e.g. 2026-08-30T18:00
  --cron <expr>          Repeat on a cron expression, e.g. "0 9 * * *"

Run options:
  --transport <name>     Override transport (local|internet|console)
  --dry-run              Render to the console instead of the board
  --config <file>        Config file (default: data/config.toml)

Examples:
  %s schedule add --widget text --input "standup" --at 2026-08-31T09:00
  %s schedule add --widget weather --cron "0 7 * * *"
`, bin, bin, bin)
}
