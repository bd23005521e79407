package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sight-words-bot/internal/config"
	"github.com/aliskhannn/sight-words-bot/internal/delivery/telegram"
	"github.com/aliskhannn/sight-words-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/sight-words-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/sight-words-bot/internal/infra/tts"
	"github.com/aliskhannn/sight-words-bot/internal/logger"
	"github.com/aliskhannn/sight-words-bot/internal/repository"
	"github.com/aliskhannn/sight-words-bot/internal/service"
	"github.com/aliskhannn/sight-words-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.APIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start a new quiz",
		},
		{
			Command:     "next",
			Description: "Next question",
		},
		{
			Command:     "language",
			Description: "Change the quiz language",
		},
		{
			Command:     "score",
			Description: "Show score and attempts",
		},
		{
			Command:     "feedback",
			Description: "Send feedback (usage: /feedback great pictures)",
		},
		{
			Command:     "help",
			Description: "Help",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the word source.
	var words service.WordRepository
	switch cfg.Words.Source {
	case config.WordSourcePostgres:
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

		words = pgrepo.NewWordRepository(pool)
	default:
		words = repository.NewWordRepository(cfg.Assets.RootDir)
	}
	lg.Info("word source ready", zap.String("source", cfg.Words.Source))

	// Initialize services.
	synth := tts.NewClient(cfg.TTS.BaseURL, cfg.TTS.Timeout)
	soundService := service.NewSoundService(cfg.Assets.RootDir, synth, lg.Named("sound"))
	selector := service.NewQuestionSelector(cfg.Quiz.OptionsCount, cfg.Quiz.Seed)
	quizService := service.NewQuizService(words, selector, lg.Named("quiz"))
	sessions := storage.NewSessionStorage(cfg.Telegram.AllowedChatID)

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		quizService,
		soundService,
		sessions,
		cfg.Quiz.DefaultLanguage,
	)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error("handler stopped", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
