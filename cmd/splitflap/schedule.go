package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"splitflap/internal/applog"
	"splitflap/internal/config"
	"splitflap/internal/runner"
	"splitflap/internal/schedule"
	"splitflap/internal/widgets"
)

func runSchedule(args []string) error {
	if len(args) == 0 || isHelpArg(args[0]) {
		printScheduleUsage(os.Stdout)
		if len(args) == 0 {
			return fmt.Errorf("usage: schedule <add|remove|list|clear|preview|run>")
		}
		return nil
	}

	switch args[0] {
	case "add":
		return scheduleAdd(args[1:])
	case "remove":
		return scheduleRemove(args[1:])
	case "list":
		return scheduleList(args[1:])
	case "clear":
		return scheduleClear(args[1:])
	case "preview":
		return schedulePreview(args[1:])
	case "run":
		return scheduleRun(args[1:])
	default:
		return fmt.Errorf("unknown schedule subcommand: %s", args[0])
	}
}

func scheduleAdd(args []string) error {
	fs := flag.NewFlagSet("schedule add", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	widget := fs.String("widget", "", "widget name (required)")
	input := fs.String("input", "", "widget input (JSON or raw text)")
	at := fs.String("at", "", "fire time, e.g. 2026-08-30T18:00")
	cronExpr := fs.String("cron", "", "cron expression for a repeating task")
	fs.Parse(args)
	if *widget == "" {
		return fmt.Errorf("--widget is required")
	}
	if *at == "" && *cronExpr == "" {
		return fmt.Errorf("one of --at or --cron is required")
	}

	task := schedule.Task{Widget: *widget, Input: parseInput(*input), Cron: *cronExpr}
	if *at != "" {
		when, err := schedule.ParseAt(*at, time.Local)
		if err != nil {
			return err
		}
		task.At = when
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	added, err := schedule.NewStore(cfg.SchedulePath).Add(task, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("scheduled %s [%s] for %s\n",
		added.Widget, added.ID, added.At.Local().Format("2006-01-02 15:04"))
	return nil
}

func scheduleRemove(args []string) error {
	fs := flag.NewFlagSet("schedule remove", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: schedule remove <id>")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := schedule.NewStore(cfg.SchedulePath).Remove(fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", fs.Arg(0))
	return nil
}

func scheduleList(args []string) error {
	fs := flag.NewFlagSet("schedule list", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	sched, err := schedule.NewStore(cfg.SchedulePath).Load()
	if err != nil {
		return err
	}
	if sched.Len() == 0 {
		fmt.Println("(empty schedule)")
		return nil
	}
	for i, task := range sched.Tasks {
		line := fmt.Sprintf("%d. %s [%s] at %s",
			i+1, task.Widget, task.ID, task.At.Local().Format("2006-01-02 15:04"))
		if task.Cron != "" {
			line += fmt.Sprintf(" (cron %q)", task.Cron)
		}
		fmt.Println(line)
	}
	return nil
}

func scheduleClear(args []string) error {
	fs := flag.NewFlagSet("schedule clear", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := schedule.NewStore(cfg.SchedulePath).Clear(); err != nil {
		return err
	}
	fmt.Println("schedule cleared")
	return nil
}

func schedulePreview(args []string) error {
	fs := flag.NewFlagSet("schedule preview", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	sched, err := schedule.NewStore(cfg.SchedulePath).Load()
	if err != nil {
		return err
	}

	now := time.Now()
	pending := 0
	for _, task := range sched.Tasks {
		if !task.At.After(now) {
			continue
		}
		pending++
		fmt.Printf("%s [%s] at %s (in %s)\n",
			task.Widget, task.ID, task.At.Local().Format("2006-01-02 15:04"),
			task.At.Sub(now).Round(time.Minute))
	}
	if pending == 0 {
		fmt.Println("No pending tasks.")
	}
	return nil
}

func scheduleRun(args []string) error {
	fs := flag.NewFlagSet("schedule run", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	transportName := fs.String("transport", "", "override transport (local|internet|console)")
	dryRun := fs.Bool("dry-run", false, "render to the console instead of the board")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	store := schedule.NewStore(cfg.SchedulePath)
	sched, err := store.Load()
	if err != nil {
		return err
	}
	sink, err := pickSink(cfg, *transportName, *dryRun)
	if err != nil {
		return err
	}

	lock, err := runner.AcquireLock(cfg.LockPath, "schedule")
	if err != nil {
		return err
	}
	defer lock.Release()

	presenter := &runner.BoardPresenter{Widgets: widgets.DefaultRegistry(cfg), Sink: sink}
	eng := runner.NewScheduleRunner(sched, presenter, os.Stdout)

	monitor, err := schedule.NewMonitor(cfg.SchedulePath)
	if err != nil {
		applog.Warnf("hot reload unavailable: %v", err)
	} else {
		defer monitor.Close()
		eng.WatchStore(store, monitor)
	}

	keys := keySource()
	defer keys.Close()
	sd := runner.NewShutdown()
	sd.NotifySignals()
	return runner.RunLoop(context.Background(), eng, keys, sd, cfg.CheckInterval())
}
