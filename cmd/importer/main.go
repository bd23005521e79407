// Command importer copies the CSV word lists into PostgreSQL so the bot can
// run with words.source set to postgres.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sight-words-bot/internal/config"
	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
	"github.com/aliskhannn/sight-words-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/sight-words-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/sight-words-bot/internal/logger"
	"github.com/aliskhannn/sight-words-bot/internal/repository"
)

func main() {
	root := flag.String("root", "", "assets directory holding the word lists (defaults to assets.root_dir)")
	only := flag.String("lang", "", "import a single language code")
	flag.Parse()

	cfg, err := config.LoadForImport()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if *root == "" {
		*root = cfg.Assets.RootDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	wordRepo := pgrepo.NewWordRepository(pool)
	if err := wordRepo.EnsureSchema(ctx); err != nil {
		lg.Fatal("failed to prepare schema", zap.Error(err))
	}

	transactor := postgres.NewTransactor(pool)

	failed := false
	for _, lang := range entities.Languages() {
		if *only != "" && lang.Code != *only {
			continue
		}

		path := filepath.Join(*root, lang.WordsFile)
		words, err := repository.LoadWords(path, lang.WordColumn)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				lg.Warn("word list not found, skipping",
					zap.String("language", lang.Code),
					zap.String("path", path),
				)
				continue
			}
			lg.Error("failed to read word list", zap.String("language", lang.Code), zap.Error(err))
			failed = true
			continue
		}

		var copied int64
		err = transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			n, err := wordRepo.ReplaceLanguageWithTx(ctx, tx, lang, words)
			copied = n
			return err
		})
		if err != nil {
			lg.Error("failed to import words", zap.String("language", lang.Code), zap.Error(err))
			failed = true
			continue
		}

		lg.Info("words imported",
			zap.String("language", lang.Code),
			zap.Int64("count", copied),
		)
	}

	if failed {
		pool.Close()
		_ = lg.Sync()
		os.Exit(1)
	}
}
