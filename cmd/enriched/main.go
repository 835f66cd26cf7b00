// Package main implements the enriched command, which ranks annotations by
// how over-represented they are in a set of symbols.
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
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hupe1980/enriched"
	"github.com/hupe1980/enriched/internal/conv"
	"github.com/hupe1980/enriched/loader"
	"github.com/hupe1980/enriched/loader/dynamo"
	"github.com/hupe1980/enriched/promcollector"
	"github.com/hupe1980/enriched/source"
	"github.com/hupe1980/enriched/source/minio"
	"github.com/hupe1980/enriched/source/s3"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "enriched"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	cfg, err := parseFlags(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if cfg.ShowHelp {
		fs.Usage()
		return nil
	}
	if cfg.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}
	if err := validateFlags(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}

	opts, err := annotationOptions(ctx, cfg)
	if err != nil {
		return err
	}

	return execute(ctx, cfg, src, logger, os.Stdin, os.Stdout, os.Stderr, opts...)
}

// execute loads the configured tables from src, runs the selected tests and
// writes reports to stdout. Symbol lists are read from the local filesystem.
// extra is applied after the options derived from cfg.
func execute(ctx context.Context, cfg *CLIConfig, src source.Source, logger *enriched.Logger, stdin io.Reader, stdout, stderr io.Writer, extra ...enriched.Option) error {
	testIDs, err := readList(ctx, cfg.TestSet, stdin)
	if err != nil {
		return fmt.Errorf("read test set: %w", err)
	}

	var controlIDs []string
	if cfg.Control != "" {
		controlIDs, err = readList(ctx, cfg.Control, stdin)
		if err != nil {
			return fmt.Errorf("read control set: %w", err)
		}
		if controlIDs == nil {
			controlIDs = []string{}
		}
	}

	var (
		basic    *enriched.BasicMetricsCollector
		registry *prometheus.Registry
		opts     = []enriched.Option{enriched.WithLogger(logger), enriched.WithLimit(cfg.Limit)}
	)
	switch cfg.Metrics {
	case "basic":
		basic = &enriched.BasicMetricsCollector{}
		opts = append(opts, enriched.WithMetricsCollector(basic))
	case "prometheus":
		registry = prometheus.NewRegistry()
		opts = append(opts, enriched.WithMetricsCollector(promcollector.New(registry)))
	}
	opts = append(opts, extra...)

	capacity, err := conv.IntToUint32(cfg.Capacity)
	if err != nil {
		return fmt.Errorf("capacity: %w", err)
	}

	session, err := enriched.Open(ctx, src, enriched.Config{
		Capacity:        capacity,
		AnnotationTable: cfg.Annotations,
		SymbolTable:     cfg.Symbols,
	}, opts...)
	if err != nil {
		return err
	}

	reports, err := session.RunNamed(ctx, splitTests(cfg.Tests), testIDs, controlIDs, cfg.Full)
	if err != nil {
		return err
	}

	if err := writeReports(stdout, cfg.Format, reports); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	switch {
	case basic != nil:
		s := basic.GetStats()
		_, _ = fmt.Fprintf(stderr, "loads=%d load_errors=%d records=%d load_avg=%dns tests=%d test_errors=%d results=%d test_avg=%dns\n",
			s.LoadCount, s.LoadErrors, s.LoadedRecords, s.LoadAvgNanos,
			s.TestCount, s.TestErrors, s.TestResults, s.TestAvgNanos)
	case registry != nil:
		return writeMetrics(stderr, registry)
	}
	return nil
}

// annotationOptions returns the session options that replace the annotation
// table read for -annotation-source. -annotations then names the DynamoDB table.
func annotationOptions(ctx context.Context, cfg *CLIConfig) ([]enriched.Option, error) {
	if cfg.AnnotationSource != "dynamo" {
		return nil, nil
	}
	client, err := dynamo.NewClient(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("open dynamo annotations: %w", err)
	}
	return []enriched.Option{enriched.WithAnnotationLoader(dynamo.Loader(client, cfg.Annotations))}, nil
}

func openSource(ctx context.Context, cfg *CLIConfig) (source.Source, error) {
	var (
		src source.Source
		err error
	)
	switch cfg.Source {
	case "s3":
		var s3opts []s3.Option
		if cfg.Prefix != "" {
			s3opts = append(s3opts, s3.WithPrefix(cfg.Prefix))
		}
		if cfg.Region != "" {
			s3opts = append(s3opts, s3.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			s3opts = append(s3opts, s3.WithEndpoint(cfg.Endpoint))
		}
		src, err = s3.New(ctx, cfg.Bucket, s3opts...)
	case "minio":
		src, err = minio.Dial(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, !cfg.Insecure, cfg.Bucket, cfg.Prefix)
	default:
		src = source.NewLocal(cfg.Prefix)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", cfg.Source, err)
	}
	return source.Throttle(src, cfg.Throttle), nil
}

func readList(ctx context.Context, name string, stdin io.Reader) ([]string, error) {
	if name == "-" {
		return loader.ReadSymbolList(stdin)
	}
	data, err := source.ReadAll(ctx, source.NewLocal(""), name)
	if err != nil {
		return nil, err
	}
	return loader.ReadSymbolList(bytes.NewReader(data))
}

func splitTests(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
