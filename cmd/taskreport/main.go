// Command taskreport fetches the task list from a running task query API
// server and writes task counts by status as a PDF, CSV, JSON or YAML file.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/phrazzld/taskquery-api/internal/config"
	"github.com/phrazzld/taskquery-api/internal/platform/logger"
	"github.com/phrazzld/taskquery-api/internal/report"
)

type options struct {
	url      string
	format   string
	out      string
	timeout  time.Duration
	logLevel string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: opts.logLevel}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	if err := run(ctx, opts, log, time.Now()); err != nil {
		log.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("taskreport", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.url, "url", "http://127.0.0.1:8080", "base URL of the task query API server")
	fs.StringVar(&opts.format, "format", report.FormatPDF, "output format: "+strings.Join(report.Formats(), ", "))
	fs.StringVar(&opts.out, "out", "", "output file (default task_report.<format>, - for stdout)")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall request timeout")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.format = strings.ToLower(opts.format)
	if opts.out == "" {
		opts.out = "task_report." + opts.format
	}
	return opts, nil
}

func run(ctx context.Context, opts options, log *slog.Logger, now time.Time) error {
	rows, err := report.NewClient(opts.url, opts.timeout, log).FetchTasks(ctx)
	if err != nil {
		return err
	}

	summary := report.Summarize(rows, opts.url, now)
	log.Info("tasks summarized",
		"fetched", summary.Fetched,
		"included", summary.Included,
		"statuses", len(summary.Counts))

	if opts.out == "-" {
		return report.Export(os.Stdout, summary, opts.format)
	}

	var buf bytes.Buffer
	if err := report.Export(&buf, summary, opts.format); err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}

	log.Info("report saved", "path", opts.out, "format", opts.format)
	return nil
}
