package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/wayfinder/internal/app"
	"github.com/kk-code-lab/wayfinder/internal/config"
	"github.com/kk-code-lab/wayfinder/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	logFile    string
	debug      bool
}

// runApplication is replaced in tests so the command can be exercised
// without a terminal.
var runApplication = func(opts apppkg.Options) error {
	app, err := apppkg.NewApplication(opts)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()
	app.Run()
	return nil
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "wayfinder [DIR]",
		Short:         "wayfinder is a keyboard-driven terminal directory browser",
		Long:          "wayfinder browses directories with vim-style keys, previews files and runs file commands from a : prompt.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDir := ""
			if len(args) == 1 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return fmt.Errorf("resolving %s: %w", args[0], err)
				}
				startDir = abs
			}
			return run(cmd.ErrOrStderr(), opts, startDir)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to the YAML config file (default <user config dir>/wayfinder/config.yaml)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write diagnostic logs to this file (overrides log_file in the config)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level")
	return cmd
}

func run(stderr io.Writer, opts *rootOptions, startDir string) error {
	configPath := opts.configPath
	if configPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			configPath = p
		}
	}

	cfg := config.Default()
	var configErr error
	if configPath != "" {
		cfg, configErr = config.LoadFile(configPath)
		if configErr != nil {
			fmt.Fprintf(stderr, "Warning: %v; using defaults\n", configErr)
		}
	}

	logPath := cfg.LogFile
	if opts.logFile != "" {
		logPath = opts.logFile
	}
	logger, closer, err := logging.New(logPath, opts.debug)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v; logging disabled\n", err)
	}
	defer func() {
		_ = closer.Close()
	}()

	entry := logger.WithField("config", configPath)
	if configErr != nil {
		entry.WithError(configErr).Warn("config file ignored")
	}
	entry.WithFields(logrus.Fields{"version": version}).Debug("starting")

	return runApplication(apppkg.Options{
		StartDir: startDir,
		Config:   cfg,
		Logger:   logger,
	})
}
