package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TimelordUK/emrlog/internal/app"
	"github.com/TimelordUK/emrlog/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "emrlog: %v\n", err)
		return 1
	}
	return 0
}

type rootFlags struct {
	configPath string
	sample     string
	errorLog   string
	path       string
	noPrompt   bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "emrlog",
		Short: "Read medical log files and report failures",
		Long: `emrlog writes a sample medical log, reads it back with line numbers,
shows how a missing file is reported, and optionally reads a path you supply.
Failed reads are appended to the error log.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "config file (default "+config.GetConfigPath()+")")
	f.StringVar(&flags.sample, "sample", "", "sample log file to create")
	f.StringVar(&flags.errorLog, "error-log", "", "error log file to append failures to")
	f.StringVarP(&flags.path, "path", "p", "", "read this file instead of asking for one")
	f.BoolVar(&flags.noPrompt, "no-prompt", false, "skip the interactive file reading step")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log diagnostic details to stderr")

	return cmd
}

func runDemo(ctx context.Context, flags rootFlags) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "emrlog",
		Level:           log.WarnLevel,
	})
	if flags.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.sample != "" {
		cfg.Files.Sample = flags.sample
	}
	if flags.errorLog != "" {
		cfg.Files.ErrorLog = flags.errorLog
	}
	logger.Debug("config loaded", "sample", cfg.Files.Sample, "error_log", cfg.Files.ErrorLog)

	return app.Run(ctx, app.Options{
		Config:   cfg,
		Logger:   logger,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		UserPath: flags.path,
		NoPrompt: flags.noPrompt,
		Terminal: isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()),
	})
}
