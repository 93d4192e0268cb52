// Command analysis measures bloom filter false positive rates across filter
// sizes and hash counts, and compares them with the analytic estimate.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type config struct {
	minLog2  int
	maxLog2  int
	items    int
	probes   int
	seed     uint64
	logLevel string
	json     bool
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "analysis:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, out)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"min_log2_bits": cfg.minLog2,
		"max_log2_bits": cfg.maxLog2,
		"items":         cfg.items,
		"probes":        cfg.probes,
		"seed":          cfg.seed,
	}).Info("starting false positive sweep")

	return sweep(cfg, func(r result) {
		entry := log.WithFields(logrus.Fields{
			"log2_bits":       r.log2Bits,
			"k":               r.k,
			"items":           r.items,
			"absent_probes":   r.absent,
			"false_positives": r.falsePositives,
			"observed_fpr":    r.observed(),
			"estimated_fpr":   r.estimated,
		})
		if r.falsePositives == 0 {
			entry.Info("no false positives")
			return
		}
		entry.Info("false positive ratio")
	})
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("analysis", flag.ContinueOnError)
	fs.IntVar(&cfg.minLog2, "min-log2", 14, "smallest filter size as log2 bits")
	fs.IntVar(&cfg.maxLog2, "max-log2", 23, "largest filter size as log2 bits")
	fs.IntVar(&cfg.items, "items", 1<<14, "number of random words added to each filter")
	fs.IntVar(&cfg.probes, "probes", 250_000, "number of random words probed per filter")
	fs.Uint64Var(&cfg.seed, "seed", 1, "random word generator seed")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.json, "json", false, "log results as JSON")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	switch {
	case cfg.minLog2 < 1 || cfg.maxLog2 > 31:
		return config{}, fmt.Errorf("filter sizes must be within 2^1..2^31 bits (got %d..%d)", cfg.minLog2, cfg.maxLog2)
	case cfg.minLog2 > cfg.maxLog2:
		return config{}, fmt.Errorf("min-log2 %d is larger than max-log2 %d", cfg.minLog2, cfg.maxLog2)
	case cfg.items < 0 || cfg.probes < 0:
		return config{}, fmt.Errorf("items and probes must not be negative")
	}
	return cfg, nil
}

func newLogger(cfg config, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		return nil, err
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	if cfg.json {
		formatter = &logrus.JSONFormatter{}
	}

	return &logrus.Logger{
		Out:       out,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}, nil
}
