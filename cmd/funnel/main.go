package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"campcrew-funnel/internal/airtable"
	"campcrew-funnel/internal/config"
	"campcrew-funnel/internal/handlers"
	"campcrew-funnel/internal/metrics"
	"campcrew-funnel/internal/middleware"
	"campcrew-funnel/internal/notify"
	"campcrew-funnel/internal/routes"
	"campcrew-funnel/internal/session"
	"campcrew-funnel/internal/storage"
	"campcrew-funnel/internal/storage/redis"
	"campcrew-funnel/internal/submission"
	"campcrew-funnel/pkg/api"
	"campcrew-funnel/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	// Redis session store
	redisStorage := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.SessionTTL, cfg.Redis.SubmitLockTTL)
	defer redisStorage.Close()
	if err := redisStorage.Ping(ctx); err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Record store client
	airtableClient := airtable.NewClient(airtable.Config{
		APIKey:        cfg.Airtable.APIKey,
		BaseID:        cfg.Airtable.BaseID,
		TableName:     cfg.Airtable.TableName,
		BaseURL:       cfg.Airtable.BaseURL,
		Timeout:       cfg.HTTPRequestTimeout,
		MaxRetryDelay: cfg.Airtable.MaxRetryDelay,
	}, zapLogger)
	airtableClient.OnRequest(func(status int, d time.Duration) {
		metrics.AirtableRequestDuration.WithLabelValues(strconv.Itoa(status)).Observe(d.Seconds())
	})
	if !cfg.Airtable.Configured() {
		zapLogger.Warn("Airtable credentials are not set, /api/submit will answer 500")
	}

	// Optional lead journal
	var journal handlers.LeadJournal
	var pgJournal *storage.Journal
	if cfg.Database.Enabled() {
		pgJournal, err = storage.NewPostgresJournal(ctx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to init PostgreSQL journal", zap.Error(err))
		}
		defer pgJournal.Close()
		journal = pgJournal
	} else {
		zapLogger.Info("Lead journal disabled - DB_HOST is not set")
	}

	// Optional Telegram notifier and admin bot
	var notifier handlers.LeadNotifier
	if cfg.Telegram.Token != "" {
		botAPI, err := notify.Connect(cfg.Telegram.Token, zapLogger)
		if err != nil {
			zapLogger.Error("Telegram notifier disabled", zap.Error(err))
		} else {
			notifier = notify.New(botAPI, cfg.Telegram.ChannelID, cfg.Telegram.AdminIDs, zapLogger)
			if pgJournal != nil {
				adminBot := notify.NewAdminBot(botAPI, pgJournal, cfg.Telegram.AdminIDs, zapLogger)
				go func() {
					if err := adminBot.Start(ctx); err != nil {
						zapLogger.Error("Admin bot stopped with error", zap.Error(err))
					}
				}()
			}
		}
	} else {
		zapLogger.Info("Telegram notifier disabled - TELEGRAM_TOKEN is not set")
	}

	// Recorder used by funnel sessions
	var recorder submission.Recorder
	switch cfg.Submit.Mode {
	case config.SubmitModeStub:
		zapLogger.Info("Using demo recorder", zap.Duration("delay", cfg.Submit.StubDelay))
		recorder = submission.NewStubRecorder(cfg.Submit.StubDelay, zapLogger)
	default:
		recorder = api.NewClient(cfg.Submit.URL, cfg.HTTPRequestTimeout, zapLogger)
	}

	sessions := session.NewService(redisStorage, recorder, zapLogger)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zapLogger))

	routes.SetupRoutes(router,
		handlers.NewSubmitHandler(airtableClient, journal, notifier, cfg.AllowedOrigin, zapLogger),
		handlers.NewSessionHandler(sessions, zapLogger),
		handlers.NewCatalogHandler(),
		handlers.NewHealthHandler(redisStorage),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("HTTP server stopped with error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("Server shutdown gracefully")
}
