package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"simgen/internal/config"
	"simgen/internal/runner"
	"simgen/internal/util"

	"gopkg.in/yaml.v3"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	seed := flag.Int64("seed", 0, "override the base seed (0 keeps the config value)")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	util.SetVerbose(cfg.Logging.Verbose)
	if cfg.Logging.LogFile != "" {
		closer, err := util.MirrorLogToFile(cfg.Logging.LogFile)
		if err != nil {
			util.Warnf("log file disabled: %v", err)
		} else {
			defer util.CloseWithErr(closer, "log file")
		}
	}
	util.Infof("starting simgen with %d worker(s)", cfg.Workers)
	shown := cfg
	shown.Storage.S3.AccessKeyID = ""
	shown.Storage.S3.SecretAccessKey = ""
	shown.Storage.S3.SessionToken = ""
	if data, err := yaml.Marshal(&shown); err == nil {
		util.Highlightf("config:\n%s", string(data))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	stats, err := runner.RunAll(ctx, cfg)
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
	if stats.Snapshot().Failures > 0 {
		os.Exit(2)
	}
}
