package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/hupe1980/enriched/internal/conv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Annotations string
	Symbols     string
	TestSet     string
	Control     string
	Tests       string
	Full        bool
	Limit       int
	Capacity    int

	Source           string
	AnnotationSource string
	Bucket           string
	Prefix           string
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
	Insecure         bool
	Throttle         int

	Format    string
	LogLevel  string
	LogFormat string
	Metrics   string

	ShowVersion bool
	ShowHelp    bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*CLIConfig, error) {
	cfg := &CLIConfig{}

	fs.StringVar(&cfg.Annotations, "annotations",
		getEnv("ENRICHED_ANNOTATIONS", ""),
		"Annotation table name (env: ENRICHED_ANNOTATIONS)")

	fs.StringVar(&cfg.Symbols, "symbols",
		getEnv("ENRICHED_SYMBOLS", ""),
		"Symbol mapping table name, optional (env: ENRICHED_SYMBOLS)")

	fs.StringVar(&cfg.TestSet, "test-set",
		getEnv("ENRICHED_TEST_SET", ""),
		"Local file with one test symbol per line, - for stdin (env: ENRICHED_TEST_SET)")

	fs.StringVar(&cfg.Control, "control",
		getEnv("ENRICHED_CONTROL", ""),
		"Local file with one control symbol per line (env: ENRICHED_CONTROL)")

	fs.StringVar(&cfg.Tests, "test",
		getEnv("ENRICHED_TEST", ""),
		"Comma-separated tests: fisher, fisher01, fisher005, fold, all (env: ENRICHED_TEST)")

	fs.BoolVar(&cfg.Full, "full",
		getEnvBool("ENRICHED_FULL", false),
		"Test against every annotation instead of the hot ones (env: ENRICHED_FULL)")

	fs.IntVar(&cfg.Limit, "limit",
		getEnvInt("ENRICHED_LIMIT", 1000),
		"Maximum results per test, 0 for unlimited (env: ENRICHED_LIMIT)")

	fs.IntVar(&cfg.Capacity, "capacity",
		getEnvInt("ENRICHED_CAPACITY", 1<<16),
		"Maximum symbols and annotations per side (env: ENRICHED_CAPACITY)")

	fs.StringVar(&cfg.Source, "source",
		getEnv("ENRICHED_SOURCE", "local"),
		"Table source: local, s3, minio (env: ENRICHED_SOURCE)")

	fs.StringVar(&cfg.AnnotationSource, "annotation-source",
		getEnv("ENRICHED_ANNOTATION_SOURCE", ""),
		"Read annotations from: dynamo, empty for -source (env: ENRICHED_ANNOTATION_SOURCE)")

	fs.StringVar(&cfg.Bucket, "bucket",
		getEnv("ENRICHED_BUCKET", ""),
		"Bucket for s3 and minio sources (env: ENRICHED_BUCKET)")

	fs.StringVar(&cfg.Prefix, "prefix",
		getEnv("ENRICHED_PREFIX", ""),
		"Key prefix for s3 and minio, directory for local (env: ENRICHED_PREFIX)")

	fs.StringVar(&cfg.Endpoint, "endpoint",
		getEnv("ENRICHED_ENDPOINT", ""),
		"Object store or DynamoDB endpoint (env: ENRICHED_ENDPOINT)")

	fs.StringVar(&cfg.Region, "region",
		getEnv("ENRICHED_REGION", ""),
		"AWS region for the s3 source and dynamo annotations (env: ENRICHED_REGION)")

	fs.StringVar(&cfg.AccessKey, "access-key",
		getEnv("ENRICHED_ACCESS_KEY", ""),
		"Access key for the minio source (env: ENRICHED_ACCESS_KEY)")

	fs.StringVar(&cfg.SecretKey, "secret-key",
		getEnv("ENRICHED_SECRET_KEY", ""),
		"Secret key for the minio source (env: ENRICHED_SECRET_KEY)")

	fs.BoolVar(&cfg.Insecure, "insecure",
		getEnvBool("ENRICHED_INSECURE", false),
		"Use plain HTTP for the minio source (env: ENRICHED_INSECURE)")

	fs.IntVar(&cfg.Throttle, "throttle",
		getEnvInt("ENRICHED_THROTTLE", 0),
		"Limit table reads to this many bytes per second, 0 to disable (env: ENRICHED_THROTTLE)")

	fs.StringVar(&cfg.Format, "format",
		getEnv("ENRICHED_FORMAT", "text"),
		"Output format: text, json (env: ENRICHED_FORMAT)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("ENRICHED_LOG_LEVEL", "warn"),
		"Log level: debug, info, warn, error (env: ENRICHED_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("ENRICHED_LOG_FORMAT", "text"),
		"Log format: json, text (env: ENRICHED_LOG_FORMAT)")

	fs.StringVar(&cfg.Metrics, "metrics",
		getEnv("ENRICHED_METRICS", ""),
		"Print metrics to stderr after the run: basic, prometheus (env: ENRICHED_METRICS)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	fs.Usage = func() {
		printDetailedHelp(fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.Annotations == "" {
		return fmt.Errorf("missing required flag: -annotations")
	}
	if cfg.TestSet == "" {
		return fmt.Errorf("missing required flag: -test-set")
	}
	if cfg.TestSet == "-" && cfg.Control == "-" {
		return fmt.Errorf("-test-set and -control cannot both read stdin")
	}
	if cfg.Control != "" && cfg.Full {
		return fmt.Errorf("-control and -full are mutually exclusive")
	}
	if cfg.Limit < 0 {
		return fmt.Errorf("invalid limit: %d", cfg.Limit)
	}
	if _, err := conv.IntToUint32(cfg.Capacity); err != nil || cfg.Capacity == 0 {
		return fmt.Errorf("invalid capacity: %d", cfg.Capacity)
	}
	if cfg.Throttle < 0 {
		return fmt.Errorf("invalid throttle: %d", cfg.Throttle)
	}

	if !slices.Contains([]string{"local", "s3", "minio"}, cfg.Source) {
		return fmt.Errorf("invalid source: %s", cfg.Source)
	}
	if !slices.Contains([]string{"", "dynamo"}, cfg.AnnotationSource) {
		return fmt.Errorf("invalid annotation source: %s", cfg.AnnotationSource)
	}
	if cfg.Source != "local" && cfg.Bucket == "" {
		return fmt.Errorf("source %s requires -bucket", cfg.Source)
	}
	if cfg.Source == "minio" && cfg.Endpoint == "" {
		return fmt.Errorf("source minio requires -endpoint")
	}

	if !slices.Contains([]string{"text", "json"}, cfg.Format) {
		return fmt.Errorf("invalid format: %s", cfg.Format)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}
	if !slices.Contains([]string{"", "basic", "prometheus"}, cfg.Metrics) {
		return fmt.Errorf("invalid metrics: %s", cfg.Metrics)
	}

	return nil
}

func printDetailedHelp(fs *flag.FlagSet) {
	w := fs.Output()
	_, _ = fmt.Fprintf(w, `%s - annotation enrichment analysis

Usage: %s [options]

Options:
`, appName, fs.Name())
	fs.PrintDefaults()
	printExamples(w, fs.Name())
}

func printExamples(w io.Writer, name string) {
	_, _ = fmt.Fprintf(w, `
Examples:
  # Rank GO terms for a list of hits against the annotated background
  %s -annotations go.anno.tsv -symbols go.sym.tsv -test-set hits.txt

  # Compare against a control set with every test, as JSON
  %s -annotations go.anno.tsv -symbols go.sym.tsv -test-set hits.txt \
     -control ctrl.txt -test all -format json

  # Annotations from a DynamoDB table, symbol mappings from a local file
  %s -annotation-source dynamo -annotations go-terms -symbols go.sym.tsv \
     -test-set hits.txt

  # Read tables from S3
  export ENRICHED_SOURCE=s3 ENRICHED_BUCKET=annotations
  %s -annotations go.anno.tsv.zst -symbols go.sym.tsv.zst -test-set hits.txt

Version: %s
`, name, name, name, name, Version)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
