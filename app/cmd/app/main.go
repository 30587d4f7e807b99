package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gift-link/app/database"
	"gift-link/app/internal/bot"
	"gift-link/app/internal/handlers"
	"gift-link/app/internal/services"
	"gift-link/shared/config"
	"gift-link/shared/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: .env file not found, relying on system environment variables.")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.Config{
		Level:       cfg.Logging.Level,
		Environment: cfg.App.Environment,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}

	var (
		userStore    services.UserStore
		stateStore   services.StateStore
		requestStore services.RequestStore
		pageStore    services.RequestStore
	)
	if cfg.Database.URL != "" {
		db, err := database.Connect(cfg.Database.URL)
		if err != nil {
			appLogger.Fatal("Database connection failed", "error", err)
		}
		appLogger.Info("Database connection established.")

		if err := database.Migrate(db, cfg.Database.URL); err != nil {
			appLogger.Fatal("Database migration failed", "error", err)
		}
		appLogger.Info("Database migrations completed.")

		userStore = database.NewUserStore(db)
		stateStore = database.NewStateStore(db)
		requestStore = database.NewRequestStore(db)
		pageStore = requestStore
	} else {
		// Degraded mode: the bot keeps working against process-local
		// state, the link page skips lookups entirely.
		appLogger.Warn("DATABASE_URL not set; running without persistence.")
		userStore = database.NewMemoryUserStore()
		stateStore = database.NewMemoryStateStore()
		requestStore = database.NewMemoryRequestStore()
		pageStore = nil
	}

	flow := services.NewLinkFlow(
		cfg.Telegram.OwnerID,
		cfg.App.BaseURL,
		services.NewTokenGenerator(),
		userStore,
		stateStore,
		requestStore,
		appLogger,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"}
	router.Use(cors.New(corsConfig))
	router.Use(handlers.RequestID())

	handlers.RegisterRoutes(router, appLogger)
	handlers.RegisterAPIRoutes(router, appLogger)
	handlers.RegisterLinkRoutes(router, appLogger, pageStore, cfg.App.BaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}
	go func() {
		appLogger.Info("Starting web server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Could not start web server", "error", err)
		}
	}()

	if cfg.Telegram.BotToken != "" {
		tgBot, err := bot.New(cfg, flow, appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram bot, continuing without it", "error", err)
		} else {
			go func() {
				if err := tgBot.StartListening(ctx); err != nil {
					appLogger.Error("Telegram listener stopped", "error", err)
				}
			}()
		}
	} else {
		appLogger.Warn("TELEGRAM_BOT_TOKEN not set; bot disabled, web server only.")
	}

	<-ctx.Done()
	appLogger.Info("Shutdown signal received.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Web server shutdown failed", "error", err)
	}
	appLogger.Info("Shutdown complete.")
}
