package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kirillkom/docchat/internal/adapters/tui"
	"github.com/kirillkom/docchat/internal/bootstrap"
	"github.com/kirillkom/docchat/internal/config"
	"github.com/kirillkom/docchat/internal/core/ports"
	"github.com/kirillkom/docchat/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/docchat/internal/observability/logging"
)

type rootOptions struct {
	configFile  string
	baseURL     string
	logLevel    string
	logFile     string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "docchat [file.pdf]",
		Short: "Chat with a PDF document through a document Q&A service",
		Long: `docchat uploads one PDF document to a document service and lets you
ask questions about it from the terminal.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			initialPath := ""
			if len(args) == 1 {
				initialPath = args[0]
			}
			return run(cfg, initialPath)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.StringVar(&opts.baseURL, "base-url", "", "document service base URL (overrides DOCCHAT_BASE_URL)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "file receiving JSON logs")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return cmd
}

// resolveConfig applies env, then the optional YAML file, then flags.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg := config.Load()
	if opts.configFile != "" {
		var err error
		cfg, err = config.LoadFile(cfg, opts.configFile)
		if err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = opts.metricsAddr
	}
	return cfg, nil
}

func run(cfg config.Config, initialPath string) error {
	logger, closer, err := logging.NewFileLogger("docchat", cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	model := tui.New(ctx, func(path string) (ports.FileLike, error) {
		file, err := localfs.Open(path)
		if err != nil {
			return nil, err
		}
		return file, nil
	})
	session := app.NewSession(model)
	model.Bind(session.Upload, session.Chat)
	if initialPath != "" {
		model.SubmitOnStart(initialPath)
	}

	slog.Info("session_started", "base_url", cfg.BaseURL, "metrics_addr", app.MetricsAddr())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	slog.Info("session_ended")
	return nil
}
