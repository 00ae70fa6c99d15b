package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"nigela/internal/app"
	"nigela/internal/catalog"
	"nigela/internal/config"
	"nigela/internal/database"
	"nigela/internal/enrich"
	"nigela/internal/ingest"
	"nigela/internal/llm"
	"nigela/internal/mailer"
	"nigela/internal/metrics"
	"nigela/internal/rotation"
	"nigela/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := catalog.NewStore(db.SQL)
	history := rotation.NewManager(db.SQL, cfg.HistoryWindowDays)
	metricsStore := metrics.NewStore(db.SQL)

	var textGen llm.TextGenerator
	switch {
	case cfg.GeminiAPIKey != "":
		gemini, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		if closer, ok := gemini.(llm.Closer); ok {
			defer closer.Close()
		}
		textGen = gemini
	case cfg.GroqAPIKey != "":
		textGen = llm.NewGroqClient(cfg)
	}

	var enricher *enrich.Enricher
	var nutrition *enrich.NutritionAnalyzer
	var clip *ingest.Clipper
	if textGen != nil {
		enricher = enrich.NewEnricher(textGen, 0.2)
		nutrition = enrich.NewNutritionAnalyzer(textGen)
		clip = ingest.NewClipper(textGen)
	}

	var blog ingest.BlogClient
	if cfg.BlogURL != "" {
		blog = ingest.NewBlogClient(cfg)
	}

	sender, err := mailer.NewSenderFromConfig(cfg, log.Default())
	if err != nil {
		log.Fatalf("Failed to initialize email sender: %v", err)
	}

	application := app.NewApp(cfg, db, store, history, metricsStore, enricher, nutrition, clip, blog, sender)

	bot, err := telegram.NewBot(cfg, application, store, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	log.Println("Bot polling for updates...")
	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Bot stopped: %v", err)
	}
	log.Println("Bot exiting")
}
