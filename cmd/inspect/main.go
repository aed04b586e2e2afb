package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"torrent-meta/config"
	"torrent-meta/inspector"
)

var (
	configFile = flag.String("config", "", "path to a YAML config file")
	format     = flag.String("format", "", "output format: text, json or yaml")
	progress   = flag.Bool("progress", false, "show a progress bar on stderr")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		logrus.Errorf("Usage: inspect [flags] file.torrent...")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.ReadConfigFromFile(*configFile)
		if err != nil {
			logrus.Errorf("Failed to read config file. %v", err)
			os.Exit(1)
		}
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *progress {
		cfg.Progress = true
	}
	if err := cfg.Validate(); err != nil {
		logrus.Errorf("Invalid configuration. %v", err)
		os.Exit(1)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info.", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	opts := inspector.Options{
		Workers:    cfg.Workers,
		Parse:      cfg.ParseOptions(),
		DedupeBits: cfg.DedupeBits,
	}
	if cfg.Progress {
		opts.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := inspector.NewInspector(opts).Inspect(ctx, flag.Args())
	if err != nil {
		logrus.Errorf("Inspection interrupted. %v", err)
		os.Exit(1)
	}
	err = inspector.Render(os.Stdout, cfg.Format, results)
	if err != nil {
		logrus.Errorf("Failed to write output. %v", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		logrus.Errorf("%d of %d torrent files could not be parsed.", failed, len(results))
		os.Exit(1)
	}
}
