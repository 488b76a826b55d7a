package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"splitflap/internal/config"
	"splitflap/internal/playlist"
	"splitflap/internal/runner"
	"splitflap/internal/widgets"
)

func runPlaylist(args []string) error {
	if len(args) == 0 || isHelpArg(args[0]) {
		printPlaylistUsage(os.Stdout)
		if len(args) == 0 {
			return fmt.Errorf("usage: playlist <add|remove|list|clear|set-interval|run>")
		}
		return nil
	}

	switch args[0] {
	case "add":
		return playlistAdd(args[1:])
	case "remove":
		return playlistRemove(args[1:])
	case "list":
		return playlistList(args[1:])
	case "clear":
		return playlistClear(args[1:])
	case "set-interval":
		return playlistSetInterval(args[1:])
	case "run":
		return playlistRun(args[1:])
	default:
		return fmt.Errorf("unknown playlist subcommand: %s", args[0])
	}
}

func playlistAdd(args []string) error {
	fs := flag.NewFlagSet("playlist add", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	widget := fs.String("widget", "", "widget name (required)")
	input := fs.String("input", "", "widget input (JSON or raw text)")
	fs.Parse(args)
	if *widget == "" {
		return fmt.Errorf("--widget is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	item, err := playlist.NewStore(cfg.PlaylistPath).Add(*widget, parseInput(*input))
	if err != nil {
		return err
	}
	fmt.Printf("added %s [%s]\n", item.Widget, item.ID)
	return nil
}

func playlistRemove(args []string) error {
	fs := flag.NewFlagSet("playlist remove", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: playlist remove <id>")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := playlist.NewStore(cfg.PlaylistPath).Remove(fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", fs.Arg(0))
	return nil
}

func playlistList(args []string) error {
	fs := flag.NewFlagSet("playlist list", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	pl, err := playlist.NewStore(cfg.PlaylistPath).Load()
	if err != nil {
		return err
	}
	if pl.IsEmpty() {
		fmt.Println("(empty playlist)")
		return nil
	}
	fmt.Printf("interval: %d seconds\n", pl.IntervalSeconds)
	for i, item := range pl.Items {
		if len(item.Input) > 0 {
			fmt.Printf("%d. %s [%s] %s\n", i+1, item.Widget, item.ID, item.Input)
		} else {
			fmt.Printf("%d. %s [%s]\n", i+1, item.Widget, item.ID)
		}
	}
	return nil
}

func playlistClear(args []string) error {
	fs := flag.NewFlagSet("playlist clear", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := playlist.NewStore(cfg.PlaylistPath).Clear(); err != nil {
		return err
	}
	fmt.Println("playlist cleared")
	return nil
}

func playlistSetInterval(args []string) error {
	fs := flag.NewFlagSet("playlist set-interval", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: playlist set-interval <seconds>")
	}
	secs, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid interval: %s", fs.Arg(0))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := playlist.NewStore(cfg.PlaylistPath).SetInterval(secs); err != nil {
		return err
	}
	fmt.Printf("interval set to %d seconds\n", secs)
	return nil
}

func playlistRun(args []string) error {
	fs := flag.NewFlagSet("playlist run", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	once := fs.Bool("once", false, "stop after one full cycle")
	startIndex := fs.Int("start-index", 0, "item index to start from")
	resume := fs.Bool("resume", false, "resume from the saved position")
	transportName := fs.String("transport", "", "override transport (local|internet|console)")
	dryRun := fs.Bool("dry-run", false, "render to the console instead of the board")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	pl, err := playlist.NewStore(cfg.PlaylistPath).Load()
	if err != nil {
		return err
	}
	if pl.IsEmpty() {
		return fmt.Errorf("playlist is empty; add items with: playlist add --widget <name>")
	}
	if err := playlist.ValidateInterval(pl.IntervalSeconds); err != nil {
		return err
	}
	sink, err := pickSink(cfg, *transportName, *dryRun)
	if err != nil {
		return err
	}

	lock, err := runner.AcquireLock(cfg.LockPath, "playlist")
	if err != nil {
		return err
	}
	defer lock.Release()

	presenter := &runner.BoardPresenter{Widgets: widgets.DefaultRegistry(cfg), Sink: sink}
	var eng *runner.PlaylistRunner
	if *resume {
		eng = runner.ResumePlaylistRunner(pl, cfg.StatePath, *once, presenter, os.Stdout)
	} else {
		eng = runner.NewPlaylistRunner(pl, cfg.StatePath, *startIndex, *once, presenter, os.Stdout)
	}

	keys := keySource()
	defer keys.Close()
	sd := runner.NewShutdown()
	sd.NotifySignals()
	return runner.RunLoop(context.Background(), eng, keys, sd, cfg.CheckInterval())
}
