package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/svgicon/internal/config"
	"github.com/provide-io/svgicon/pkg"
	"github.com/provide-io/svgicon/pkg/logging"
)

const version = "0.2.0"

var (
	logLevel    string
	scalerName  string
	compression string
	strictSVG   bool
	versionFlag bool

	rootCmd *cobra.Command
	logger  hclog.Logger = hclog.NewNullLogger()
	logFile *os.File
	opts    pkg.Options
)

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion() {
	fmt.Printf("svgicon %s\n", version)
	fmt.Printf("Built: %s\n", getBuildTimestamp())
}

func init() {
	rootCmd = &cobra.Command{
		Use:               "svgicon",
		Short:             "Convert SVG or bitmap artwork into PNG, ICO, ICNS and .syso icons",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion()
				return nil
			}
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, json:<level>)")
	flags.StringVar(&scalerName, "scaler", "", "Bitmap scaler (catmullrom, bilinear, lanczos)")
	flags.StringVar(&compression, "compression", "", "PNG compression (default, none, fast, best)")
	flags.BoolVar(&strictSVG, "strict", false, "Fail on SVG elements the renderer does not support")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(newPNGCommand(), newICOCommand(), newICNSCommand(), newSysoCommand(), newVerifyCommand())
}

// setup merges environment config with flags and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("scaler") {
		cfg.Scaler = scalerName
	}
	if cmd.Flags().Changed("compression") {
		cfg.PNGCompression = compression
	}

	scaler, err := cfg.ResolveScaler()
	if err != nil {
		return fmt.Errorf("%s: %w", settingSource(cmd, "scaler", "SVGICON_SCALER"), err)
	}
	level, err := cfg.ResolveCompression()
	if err != nil {
		return fmt.Errorf("%s: %w", settingSource(cmd, "compression", "SVGICON_PNG_COMPRESSION"), err)
	}

	closeLogFile()
	var output io.Writer = os.Stderr
	if cfg.LogPath != "" {
		file, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = file
		output = file
	}
	logger = logging.NewLoggerWithFormat("svgicon", cfg.LogLevel, cfg.JSONLog, output)
	opts = pkg.Options{
		Logger:      logger,
		Scaler:      scaler,
		Compression: level,
		StrictSVG:   strictSVG,
	}

	logger.Debug("Configuration", "log_level", cfg.LogLevel, "scaler", scaler.Name(), "compression", cfg.PNGCompression)
	return nil
}

// settingSource names where a setting came from for error messages.
func settingSource(cmd *cobra.Command, flag, envVar string) string {
	if cmd.Flags().Changed(flag) {
		return "--" + flag
	}
	return envVar
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
	logFile = nil
	logger = hclog.NewNullLogger()
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersion()
		os.Exit(0)
	}

	err := rootCmd.Execute()
	closeLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
