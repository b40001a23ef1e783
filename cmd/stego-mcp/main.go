package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ironsheep/stego-tools-mcp/internal/config"
	"github.com/ironsheep/stego-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath  string
	logLevel    string
	showVersion bool
	showHelp    bool
}

// parseFlags parses args (without the program name). A help request, whether
// from the -h flag or from pflag itself, sets showHelp.
func parseFlags(args []string) (*options, *pflag.FlagSet, error) {
	var opts options

	flagSet := pflag.NewFlagSet("stego-tools-mcp", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.configPath, "config", "", "path to YAML config file (default: $"+config.EnvConfig+")")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	flagSet.BoolVarP(&opts.showVersion, "version", "v", false, "print version information")
	flagSet.BoolVarP(&opts.showHelp, "help", "h", false, "print this help message")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			opts.showHelp = true
			return &opts, flagSet, nil
		}
		return nil, flagSet, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return nil, flagSet, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return &opts, flagSet, nil
}

func run() error {
	opts, flagSet, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	if opts.showVersion {
		fmt.Printf("stego-tools-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return nil
	}
	if opts.showHelp {
		printHelp(flagSet)
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("starting",
		"version", Version,
		"build_time", BuildTime,
		"commit", GitCommit,
		"max_image_bytes", cfg.Limits.MaxImageBytes,
		"default_channel", cfg.Encode.DefaultChannel)

	srv := server.New(cfg, logger, server.WithVersion(Version))
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `stego-tools-mcp - MCP server for hiding text in images

Hides short text messages in the least significant bit of an image's red,
green or blue channel (or all three) and reads them back. Carriers are
always written as PNG.

Usage:
  stego-tools-mcp [flags]

Flags:
%s
Environment variables:
  %s    Config file path when --config is not given
  %s Log level override (debug, info, warn, error)

This server communicates via MCP protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).
`, flagSet.FlagUsages(), config.EnvConfig, config.EnvLogLevel)
}
