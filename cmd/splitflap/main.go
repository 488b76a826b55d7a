package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"splitflap/internal/applog"
	"splitflap/internal/config"
	"splitflap/internal/runner"
	"splitflap/internal/transport"
	"splitflap/internal/widgets"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printRootUsage(os.Stderr)
		os.Exit(1)
	}
	if isHelpArg(args[0]) {
		printRootUsage(os.Stdout)
		return
	}

	var err error
	switch args[0] {
	case "show":
		err = runShow(args[1:])
	case "playlist":
		err = runPlaylist(args[1:])
	case "schedule":
		err = runSchedule(args[1:])
	default:
		printRootUsage(os.Stderr)
		err = fmt.Errorf("unknown command: %s", args[0])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and points the logger at the configured
// log file before anything else runs.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	logErr := applog.Setup(cfg.LogPath,
		applog.ParseLevel(cfg.LogLevel), applog.ParseLevel(cfg.ConsoleLogLevel))
	if logErr != nil {
		fmt.Fprintln(os.Stderr, "warning:", logErr)
	}
	return cfg, nil
}

// parseInput accepts widget input either as a JSON document or as raw text,
// which is wrapped into a JSON string.
func parseInput(s string) json.RawMessage {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	quoted, _ := json.Marshal(s)
	return json.RawMessage(quoted)
}

// pickSink resolves the output sink: --dry-run forces the console, an
// explicit --transport overrides the config.
func pickSink(cfg config.Config, override string, dryRun bool) (transport.Sink, error) {
	name := cfg.Transport
	if strings.TrimSpace(override) != "" {
		name = override
	}
	if dryRun {
		name = "console"
	}
	return transport.New(name, cfg)
}

// keySource prefers the raw terminal; piped or redirected stdin degrades to
// a source that never yields input.
func keySource() runner.KeySource {
	keys, err := runner.NewTermKeys()
	if err != nil {
		applog.Warnf("interactive keys unavailable: %v", err)
		return &runner.ScriptKeys{}
	}
	return keys
}

func runShow(args []string) error {
	if len(args) > 0 && isHelpArg(args[0]) {
		printShowUsage(os.Stdout)
		return nil
	}
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	fs.Usage = func() { printShowUsage(os.Stderr) }
	configPath := fs.String("config", config.DefaultPath, "config file")
	input := fs.String("input", "", "widget input (JSON or raw text)")
	transportName := fs.String("transport", "", "override transport (local|internet|console)")
	dryRun := fs.Bool("dry-run", false, "render to the console instead of the board")
	fs.Parse(args)
	if fs.NArg() < 1 {
		printShowUsage(os.Stderr)
		return fmt.Errorf("widget name is required")
	}
	widget := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	sink, err := pickSink(cfg, *transportName, *dryRun)
	if err != nil {
		return err
	}

	presenter := &runner.BoardPresenter{Widgets: widgets.DefaultRegistry(cfg), Sink: sink}
	return presenter.Present(context.Background(), widget, parseInput(*input), "show "+widget)
}
