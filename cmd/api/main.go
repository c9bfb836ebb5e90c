package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"neoguard-console-backend/internal/common/config"
	"neoguard-console-backend/internal/common/logger"
	"neoguard-console-backend/internal/common/middleware"
	"neoguard-console-backend/internal/common/respond"
	banshttp "neoguard-console-backend/internal/features/bans/delivery/http"
	bansrepo "neoguard-console-backend/internal/features/bans/repository/postgres"
	bansservice "neoguard-console-backend/internal/features/bans/service"
	exceptionshttp "neoguard-console-backend/internal/features/exceptions/delivery/http"
	exceptionsrepo "neoguard-console-backend/internal/features/exceptions/repository/postgres"
	exceptionsservice "neoguard-console-backend/internal/features/exceptions/service"
	messageshttp "neoguard-console-backend/internal/features/messages/delivery/http"
	"neoguard-console-backend/internal/features/messages/feed"
	messagesrepo "neoguard-console-backend/internal/features/messages/repository/postgres"
	messagesservice "neoguard-console-backend/internal/features/messages/service"
	"neoguard-console-backend/internal/features/signedmsg"
	settingshttp "neoguard-console-backend/internal/features/settings/delivery/http"
	settingsrepo "neoguard-console-backend/internal/features/settings/repository/postgres"
	settingsservice "neoguard-console-backend/internal/features/settings/service"
	statshttp "neoguard-console-backend/internal/features/stats/delivery/http"
	statsrepo "neoguard-console-backend/internal/features/stats/repository/postgres"
	statsservice "neoguard-console-backend/internal/features/stats/service"
	wallethttp "neoguard-console-backend/internal/features/wallet/delivery/http"
	walletrepo "neoguard-console-backend/internal/features/wallet/repository/postgres"
	walletservice "neoguard-console-backend/internal/features/wallet/service"
	"neoguard-console-backend/internal/platform/chain"
	"neoguard-console-backend/internal/platform/db"
	platformgenai "neoguard-console-backend/internal/platform/genai"
	platformredis "neoguard-console-backend/internal/platform/redis"
	platformtelegram "neoguard-console-backend/internal/platform/telegram"
)

func main() {
	// Create cancellable root context for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("neoguard-console", false)
		logger.Fatal().Err(err).Msg("config load")
	}
	logger.Init("neoguard-console", cfg.Debug)

	if err := db.Migrate(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("migrations")
	}

	pg, err := db.Open(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres open")
	}
	defer pg.Close()

	rdb, err := platformredis.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis open")
	}
	defer rdb.Close()

	bot, err := platformtelegram.NewClient(cfg.Telegram.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram client")
	}

	chainClient, err := chain.Dial(cfg.Chain.RPCURL, cfg.Chain.TokenContract)
	if err != nil {
		logger.Fatal().Err(err).Msg("chain rpc")
	}
	defer chainClient.Close()

	summarizer, err := platformgenai.NewSummarizer(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
	if err != nil {
		logger.Fatal().Err(err).Msg("gemini client")
	}
	defer summarizer.Close()

	feedListener, err := feed.NewListener(cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("feed listener")
	}
	go feedListener.Run(ctx)

	verifier := signedmsg.NewVerifier(signedmsg.NewRedisReplayGuard(rdb))
	jwtSecret := []byte(cfg.Auth.JWTSecret)

	walletSvc := walletservice.NewWalletService(
		walletrepo.NewRepository(pg), chainClient, verifier,
		cfg.Chain.Threshold, cfg.Chain.TokenDecimals, jwtSecret, cfg.Auth.TokenTTL,
	)
	statsSvc := statsservice.NewStatsService(statsrepo.NewRepository(pg))
	messagesSvc := messagesservice.NewMessagesService(messagesrepo.NewRepository(pg), bot, summarizer)
	bansSvc := bansservice.NewBansService(bansrepo.NewRepository(pg))
	exceptionsSvc := exceptionsservice.NewExceptionsService(exceptionsrepo.NewRepository(pg), verifier)
	settingsSvc := settingsservice.NewSettingsService(settingsrepo.NewRepository(pg), verifier)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.Server.Origin},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		if err := pg.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "database unreachable"})
			return
		}
		respond.OK(c, gin.H{"status": "ok"})
	})

	requireToken := middleware.RequireToken(jwtSecret)
	api := router.Group("/api")
	wallethttp.NewWalletHandler(walletSvc).RegisterRoutes(api)
	statshttp.NewStatsHandler(statsSvc).RegisterRoutes(api)
	messageshttp.NewMessagesHandler(messagesSvc, feedListener).RegisterRoutes(api, requireToken)
	banshttp.NewBansHandler(bansSvc).RegisterRoutes(api, requireToken)
	exceptionshttp.NewExceptionsHandler(exceptionsSvc).RegisterRoutes(api)
	settingshttp.NewSettingsHandler(settingsSvc).RegisterRoutes(api)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	logger.Info().Msg("server stopped")
}
