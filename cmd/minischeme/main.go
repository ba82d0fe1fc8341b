package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/podhmo/minischeme"
	"github.com/podhmo/minischeme/internal/config"
)

// stringSlice is a custom type to handle multiple string flags.
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	var exprs stringSlice
	flag.Var(&exprs, "e", "Expression to evaluate. Can be specified multiple times; all share one session.")
	configPath := flag.String("config", config.DefaultPath, "Path to the YAML config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	maxDepth := flag.Int("max-depth", 0, "Maximum nesting of procedure calls; 0 keeps the configured value, negative disables the limit")
	noColor := flag.Bool("no-color", false, "Disable coloured output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: minischeme [options] [file ...]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "With no files and no -e, an interactive session starts.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath, *configPath == config.DefaultPath)
	if err != nil {
		log.Fatalf("Error: %+v", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *maxDepth != 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *noColor {
		cfg.Color = false
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error: %+v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), os.Stdout, os.Stderr, logger, cfg, exprs, flag.Args()); err != nil {
		log.Fatalf("Error: %+v", err)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, logger *slog.Logger, cfg *config.Config, exprs []string, files []string) error {
	newInterpreter := func() *minischeme.Interpreter {
		return minischeme.New(
			minischeme.WithLogger(logger),
			minischeme.WithMaxDepth(cfg.MaxDepth),
		)
	}
	p := &printer{color: cfg.Color}

	switch {
	case len(exprs) > 0:
		return runExprs(ctx, stdout, newInterpreter(), p, exprs)
	case len(files) > 0:
		return runScripts(ctx, stdout, stderr, logger, newInterpreter, p, files)
	default:
		return runREPL(ctx, stdout, stderr, newInterpreter(), p, cfg)
	}
}
