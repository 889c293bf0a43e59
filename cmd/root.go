// Package cmd contains the CLI front end for webp
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kruithne/webp/internal/config"
	"github.com/Kruithne/webp/internal/convert"
	"github.com/Kruithne/webp/internal/exiftool"
	"github.com/Kruithne/webp/internal/ffmpeg"
	"github.com/Kruithne/webp/internal/options"
	"github.com/Kruithne/webp/internal/output"
	"github.com/Kruithne/webp/internal/subprocess"
)

var (
	cfgFile   string
	dryRun    bool
	quiet     bool
	colorFlag string
	cfg       *config.Config
	logger    *slog.Logger
	version   = "dev"
)

// rootCmd is the base command; the converter has no subcommand for its
// main job, the root runs the batch directly.
var rootCmd = &cobra.Command{
	Use:   "webp <input> [key[=value] ...]",
	Short: "Batch convert images to WebP",
	Long: `webp converts images to the WebP format by invoking ffmpeg, reading
EXIF orientation through exiftool first so rotated photos come out
upright without relying on the viewer.

The input is a single file or a directory (scanned non-recursively).
Options are key=value pairs after the input path:

  ext=jpg,png       only convert matching extensions (directory input)
  out=<dir>         write converted files to <dir>
  quality=75        lossy quality, 0-100
  lossless          enable lossless encoding
  compression=6     lossless compression effort, 0-6
  scale=0.5         multiply both dimensions by a factor
  width=960         target width in pixels, or "source"/"auto"
  height=540        target height in pixels, or "source"/"auto"
  crop              crop to width/height instead of resizing
  center            center the crop on both axes
  centerh, centerv  center the crop horizontally / vertically
  verbose           show tool output and debug logging

Examples:
  webp photo.jpg
  webp ./photos ext=jpg,png out=./webp quality=80
  webp banner.png width=960 height=300 crop center`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runConvert,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .webp.yaml)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "show tool invocations without executing")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "color output (auto, always, never)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Logging.Level == "debug" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	return nil
}

// newPrinter builds the printer from the color flag and config.
func newPrinter() *output.Printer {
	mode, err := output.ParseColorMode(colorFlag)
	if err != nil {
		mode = output.ColorAuto
	}
	return output.NewPrinterWithOptions(output.PrinterOptions{
		ColorMode:    mode,
		ConfigColors: cfg.Output.Colors,
		Quiet:        quiet,
	})
}

func runConvert(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	opts, err := options.Parse(args, options.Defaults{
		Quality:     cfg.Defaults.Quality,
		Compression: cfg.Defaults.Compression,
		Lossless:    cfg.Defaults.Lossless,
	})
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
		return &output.CLIError{
			Summary:    err.Error(),
			Suggestion: "Run 'webp --help' for the full option list",
			ExitCode:   output.ExitError,
		}
	}

	if opts.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	for key := range opts.Unknown {
		logger.Debug("ignoring unrecognized option", "key", key)
	}

	executor := subprocess.NewRunner(logger, dryRun)
	runner := convert.New(convert.Config{
		Options:    opts,
		Reader:     exiftool.NewCLI(cfg.Tools.Exiftool, executor, logger),
		Transcoder: ffmpeg.NewCLI(cfg.Tools.FFmpeg, executor, logger),
		Printer:    printer,
		Logger:     logger,
	})

	results, err := runner.Run(context.Background())
	if err != nil {
		return &output.CLIError{
			Summary:  fmt.Sprintf("cannot read input %s", opts.Input),
			Detail:   err.Error(),
			ExitCode: output.ExitError,
		}
	}

	printSummary(printer, results)
	// Per-file failures are reported above but never change the exit
	// code; only argument and path errors are fatal.
	return nil
}

// printSummary renders the end-of-batch result table and totals.
func printSummary(printer *output.Printer, results []convert.Result) {
	if len(results) == 0 {
		return
	}

	var converted, failed int
	table := output.NewQuietTable([]string{"FILE", "RESULT", "SIZE"}, printer.IsQuiet())
	for _, r := range results {
		if r.Err != nil {
			failed++
			table.AddRow([]string{r.Input, printer.StatusBadge("failed") + " failed", "-"})
			continue
		}
		converted++
		table.AddRow([]string{r.Input, printer.StatusBadge("converted") + " converted", formatSize(r.Size)})
	}

	printer.Header("Conversion Summary")
	table.Render()

	if failed > 0 {
		printer.Warning("%d converted, %d failed", converted, failed)
	} else {
		printer.Success("%d converted", converted)
	}
}

// formatSize renders a byte count for the summary table.
func formatSize(n int64) string {
	switch {
	case n <= 0:
		return "-"
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
