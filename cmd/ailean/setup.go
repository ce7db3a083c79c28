package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/ailean/internal/config"
	"github.com/sandevgo/ailean/internal/providers/llm"
	"github.com/sandevgo/ailean/internal/service/library"
	"github.com/sandevgo/ailean/internal/service/session"
	"github.com/sandevgo/ailean/internal/storage/sqlite"
	"github.com/sandevgo/ailean/pkg/log"
)

// app holds the wiring shared by every subcommand.
type app struct {
	cfg      *config.AppConfig
	db       *sql.DB
	manuals  *sqlite.ManualsRepo
	gateway  *llm.Ollama
	importer *library.Importer
}

func newApp(ctx context.Context) (*app, error) {
	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	// 1. Configuration
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// 2. Storage
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	manuals := sqlite.NewManualsRepo(db)

	// 3. Completion gateway
	gateway := llm.NewProvider(ctx, cfg)

	return &app{
		cfg:      cfg,
		db:       db,
		manuals:  manuals,
		gateway:  gateway,
		importer: library.NewImporter(manuals),
	}, nil
}

func (a *app) newSession(out io.Writer) *session.Session {
	return session.New(a.manuals, a.gateway, session.Config{
		Model:         a.cfg.Model,
		Timeout:       a.cfg.GenerationTimeout,
		HistoryWindow: a.cfg.HistoryWindow,
	}, out)
}

func (a *app) Close() error {
	return a.db.Close()
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := config.AppConfig{RuntimePath: runtimePath}.GetEnvPath()

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
