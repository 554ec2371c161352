package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bnema/mini-coderbrain/internal/adapters/audit/jsonfile"
	statusadapter "github.com/bnema/mini-coderbrain/internal/adapters/render/status"
	filestore "github.com/bnema/mini-coderbrain/internal/adapters/store/file"
	"github.com/bnema/mini-coderbrain/internal/adapters/vcs/git"
	"github.com/bnema/mini-coderbrain/internal/application"
	"github.com/bnema/mini-coderbrain/internal/config"
	"github.com/spf13/viper"
)

const logFileMode = 0o644

type app struct {
	cfg            config.Config
	service        *application.HookService
	logger         *slog.Logger
	statusRenderer func(context.Context, application.Signals, statusadapter.RenderOptions) (string, error)
	closeLog       func() error
}

func wireApp(projectDir, cfgFile string, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(viper.New(), projectDir, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := newLogger(cfg, stderr)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	store := filestore.NewStore(filestore.Layout{
		MemoryRoot: cfg.MemoryRoot,
		TmpRoot:    cfg.TmpRoot,
		CacheRoot:  cfg.CacheRoot,
	})

	service := application.NewHookService(application.Dependencies{
		Activity: store.ActivityLog(),
		Markers:  store.Markers(),
		Bank:     store.MemoryBank(),
		MapCache: store.MapCache(),
		Audit:    jsonfile.NewLog(cfg.LogsDir),
		VCS:      git.NewClient(cfg.VCSBinary, cfg.ProjectDir, cfg.VCSTimeout),
		Logger:   logger,
	})

	return &app{
		cfg:            cfg,
		service:        service,
		logger:         logger,
		statusRenderer: statusadapter.Render,
		closeLog:       closeLog,
	}, nil
}

func (a *app) close() {
	if a.closeLog == nil {
		return
	}
	if err := a.closeLog(); err != nil {
		a.logger.Warn("close log file", "error", err)
	}
}

// newLogger writes JSON lines to the configured log file, or text to stderr.
func newLogger(cfg config.Config, stderr io.Writer) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return slog.New(slog.NewJSONHandler(file, opts)), file.Close, nil
}
