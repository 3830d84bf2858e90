package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/logreport/internal/config"
	"github.com/logreport/internal/fetch"
	"github.com/logreport/internal/logging"
	"github.com/logreport/internal/output"
	"github.com/logreport/internal/runner"
)

const version = "1.0.0"

type cli struct {
	URL      string           `name:"url" required:"" help:"URL of the CSV access log to analyze."`
	Config   string           `name:"config" type:"path" help:"Optional YAML config file."`
	LogLevel string           `name:"log-level" help:"Log level for zap output (debug, info, warn, error). Overrides the config file."`
	Debug    bool             `name:"debug" help:"Shorthand for --log-level=debug."`
	Progress bool             `name:"progress" help:"Show a download progress bar on stderr when it is a terminal."`
	Version  kong.VersionFlag `name:"version" help:"Print version and exit."`
}

func newParser(c *cli, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("logreport"),
		kong.Description("Download a CSV web access log and report image share, top browser and hourly traffic."),
		kong.Vars{"version": "logreport " + version},
	}, options...)
	return kong.New(c, options...)
}

func main() {
	c := cli{}
	parser, err := newParser(&c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build CLI parser: %v\n", err)
		os.Exit(1)
	}
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger = logging.WithRunID(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var progressOut io.Writer
	if cfg.Progress && isatty.IsTerminal(os.Stderr.Fd()) {
		progressOut = os.Stderr
	}

	err = run(ctx, c.URL, cfg, logger, os.Stdout, progressOut)
	stop()
	if err != nil {
		logger.Error("report failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(c cli) (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Debug {
		cfg.LogLevel = "debug"
	}
	if c.Progress {
		cfg.Progress = true
	}
	if cfg.UserAgent == config.Default().UserAgent {
		cfg.UserAgent += "/" + version
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// run fetches and analyzes url, then writes the report to stdout. Nothing is
// written to stdout unless the whole run succeeds. A nil progressOut
// disables the progress bar.
func run(ctx context.Context, url string, cfg *config.Config, logger *zap.Logger, stdout, progressOut io.Writer) error {
	fetcher := &fetch.Fetcher{
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	}
	var pb *output.ProgressBar
	if progressOut != nil {
		pb = output.NewProgressBar(progressOut)
		fetcher.OnProgress = pb.Update
	}

	r := &runner.Runner{
		Source:      fetcher,
		Logger:      logger,
		PreviewRows: cfg.PreviewRows,
	}
	report, err := r.Run(ctx, url)
	if pb != nil {
		pb.Finish()
	}
	if err != nil {
		return err
	}
	return output.WriteReport(stdout, report)
}
