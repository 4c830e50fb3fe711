package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sidorvx/CancerCommonTool/internal/config"
	"github.com/sidorvx/CancerCommonTool/internal/pipeline"
	"github.com/sidorvx/CancerCommonTool/internal/report"
	"github.com/sidorvx/CancerCommonTool/internal/store"
	"github.com/sidorvx/CancerCommonTool/internal/watch"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	args := os.Args[2:]

	switch os.Args[1] {
	case "score":
		cfg := loadConfig(args)
		if n := flagValue(args, "--top"); n != "" {
			top, err := strconv.Atoi(n)
			if err != nil {
				fatal("bad --top value %q", n)
			}
			cfg.Scoring.TopN = top
		}
		if hasFlag(args, "--save") {
			cfg.Store.Enabled = true
		}
		if err := runScore(cfg); err != nil {
			fatal("%v", err)
		}

	case "watch":
		cfg := loadConfig(args)
		if err := runWatch(cfg); err != nil && err != context.Canceled {
			fatal("%v", err)
		}

	case "runs":
		cfg := loadConfig(args)
		limit := 10
		if n := flagValue(args, "--limit"); n != "" {
			l, err := strconv.Atoi(n)
			if err != nil {
				fatal("bad --limit value %q", n)
			}
			limit = l
		}
		if err := runList(cfg, limit); err != nil {
			fatal("%v", err)
		}

	case "init":
		path, err := config.WriteDefault(flagValue(args, "--config"))
		if err != nil {
			fatal("init: %v", err)
		}
		fmt.Printf("wrote %s\n", path)

	case "version":
		fmt.Printf("cct v%s\n", version)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func runScore(cfg config.Config) error {
	res, err := pipeline.Run(cfg)
	if err != nil {
		return err
	}

	fmt.Print(report.Format(res, cfg.Scoring.TopN))

	if cfg.Store.Enabled {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.SaveRun(res)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run %d to %s\n", id, cfg.Store.Path)
	}

	return nil
}

func runWatch(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rescore := func() {
		if err := runScore(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "cct: rescore: %v\n", err)
		}
	}

	// One pass up front so the watcher starts from a known-good report.
	rescore()

	fmt.Fprintf(os.Stderr, "cct: watching %d input file(s), ^C to stop\n", len(cfg.InputPaths()))
	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	return watch.Run(ctx, cfg.InputPaths(), debounce, rescore)
}

func runList(cfg config.Config, limit int) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Runs(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs; use `cct score --save` first")
		return nil
	}

	fmt.Printf("%-5s %-20s %-8s %-6s %-28s\n", "id", "created", "samples", "drugs", "cohort")
	for _, r := range runs {
		fmt.Printf("%-5d %-20s %-8d %-6d %-28s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Samples, r.Drugs, r.Cohort)
	}
	return nil
}

func loadConfig(args []string) config.Config {
	cfg, err := config.Load(flagValue(args, "--config"))
	if err != nil {
		fatal("load config: %v", err)
	}
	return cfg
}

func usage() {
	fmt.Fprintf(os.Stderr, `cct v%s — TKI efficacy scoring over expression cohorts

Usage:
  cct score [--config <file>] [--top N] [--save]   Run the pipeline once
  cct watch [--config <file>]                      Re-score when inputs change
  cct runs  [--config <file>] [--limit N]          List stored runs
  cct init  [--config <file>]                      Write a default config
  cct version                                      Print version
  cct help                                         Show this help

Configuration: ./cct.toml or ~/.config/cct/config.toml
`, version)
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "cct: "+format+"\n", args...)
	os.Exit(1)
}
