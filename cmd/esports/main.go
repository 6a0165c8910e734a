package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/esports/internal/application"
	"github.com/JonMunkholm/esports/internal/config"
	"github.com/JonMunkholm/esports/internal/core"
	_ "github.com/JonMunkholm/esports/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/esports/internal/logging"
	"github.com/JonMunkholm/esports/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envLoaded := godotenv.Overload() == nil

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The terminal UI owns stdout, so logs go to a file unless told otherwise
	logOut, closeLog, err := logging.Open(cfg.Logging.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, logOut)

	slog.Info("configuration loaded", "env_file", envLoaded, "config", cfg.String())

	if err := run(cfg); err != nil {
		slog.Error("exiting with error", "error", err)
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	dir := cfg.Data.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		var found bool
		dir, found = store.ResolveDataDir(cwd, cfg.Data.DirName)
		if !found {
			slog.Warn("data directory not found, it will be created", "dir", dir)
		}
	}

	st := store.NewStore(dir, store.WithDelimiter(cfg.Data.DelimiterByte()))
	service := core.NewService(st, core.ServiceConfig{
		AuditFile:    cfg.Data.AuditFile,
		AuditEnabled: cfg.Data.AuditEnabled,
	})

	slog.Info("tables registered",
		"count", core.TableCount(),
		"groups", len(core.Groups()),
		"dir", dir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = core.ContextWithOperator(ctx, cfg.Data.Operator)

	initCtx := logging.ContextWithActionID(ctx, "")
	created, err := service.Init(initCtx)
	if err != nil {
		return fmt.Errorf("initialise data files: %w", err)
	}
	if len(created) > 0 {
		logging.FromContext(initCtx).Info("data files initialised", "tables", created)
	}

	opts := application.Options{
		AltScreen:      cfg.UI.AltScreen,
		MaxColumnWidth: cfg.UI.MaxColumnWidth,
		MessageDelay:   cfg.UI.MessageDelay,
	}
	if strings.EqualFold(cfg.UI.Mode, "plain") {
		return application.RunPlain(ctx, service, os.Stdin, os.Stdout, opts)
	}
	return application.Run(ctx, service, opts)
}
