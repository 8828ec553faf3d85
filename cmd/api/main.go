// @title Sovet API
// @description API for daily tips app "Sovet": onboarding, tips, progress streaks and payments
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/sovet/internal/api"
	"github.com/limbo/sovet/internal/payment"
	"github.com/limbo/sovet/internal/repository"
	"github.com/limbo/sovet/internal/service"
	"github.com/limbo/sovet/internal/streak"
	"github.com/limbo/sovet/internal/tipgen"
	"github.com/limbo/sovet/pkg/cleanup"
	"github.com/limbo/sovet/pkg/config"
	jwtservice "github.com/limbo/sovet/pkg/jwt_service"
	"github.com/limbo/sovet/pkg/kvstore"
	"github.com/limbo/sovet/pkg/logger"
	"github.com/limbo/sovet/pkg/metrics"
	"go.uber.org/zap"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	lg := logger.New(logger.Cfg{
		Level:      cfg.GetStringOr("LOG_LEVEL", "info"),
		Path:       cfg.GetString("LOG_PATH"),
		MaxSizeMB:  cfg.GetInt("LOG_MAX_SIZE_MB", 100),
		MaxBackups: cfg.GetInt("LOG_MAX_BACKUPS", 5),
		MaxAgeDays: cfg.GetInt("LOG_MAX_AGE_DAYS", 30),
		Compress:   cfg.GetBool("LOG_COMPRESS", true),
	})
	zap.ReplaceGlobals(lg)
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Connect(ctx, &repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	})
	if err != nil {
		lg.Fatal("postgres_connection_failed", zap.Error(err))
	}
	redisStore, err := kvstore.NewRedis(&kvstore.RedisCfg{
		Address:  cfg.GetString("REDIS_ADDRESS"),
		Password: cfg.GetString("REDIS_PASSWORD"),
		DB:       cfg.GetInt("REDIS_DB", 0),
	}, lg)
	if err != nil {
		cleanup.CleanUp(lg)
		lg.Fatal("redis_connection_failed", zap.Error(err))
	}
	// Progress records are immutable, so only they are served from memory
	store := kvstore.NewCached(redisStore,
		cfg.GetInt("CACHE_SIZE", 4096),
		cfg.GetDuration("CACHE_TTL", 10*time.Minute),
		kvstore.PrefixCacheable(repository.LogKeyPrefix),
	)

	var generator tipgen.Generator
	if url := cfg.GetString("TIPGEN_URL"); url != "" {
		generator = tipgen.NewRemote(tipgen.RemoteCfg{
			URL:     url,
			APIKey:  cfg.GetString("TIPGEN_API_KEY"),
			Timeout: cfg.GetDuration("TIPGEN_TIMEOUT", 8*time.Second),
			RPS:     cfg.GetFloat("TIPGEN_RPS", 2),
			Burst:   cfg.GetInt("TIPGEN_BURST", 4),
		})
	}
	loc := cfg.GetLocation("STREAK_TIMEZONE")

	userService := service.NewUserService(repository.NewUsersRepoWithConn(pool), nil)
	tipService := service.NewTipService(repository.NewTipsRepoWithConn(pool), tipgen.NewFallback(generator, lg), nil)
	progressService := service.NewProgressService(repository.NewProgressLogRepo(store, lg), streak.New(loc), nil)
	subscriptionService := service.NewSubscriptionService(
		repository.NewAccessRepo(store, nil),
		payment.NewSimulated(payment.SimulatedCfg{
			Delay:       cfg.GetDuration("PAYMENT_DELAY", 2*time.Second),
			SuccessRate: cfg.GetFloat("PAYMENT_SUCCESS_RATE", 0.9),
		}, lg),
		nil,
	)

	serv := api.New(&api.ServicesList{
		UserService:         userService,
		TipService:          tipService,
		ProgressService:     progressService,
		SubscriptionService: subscriptionService,
		JwtService:          jwtservice.New(cfg.GetString("JWT_SECRET"), cfg.GetDuration("JWT_TTL", jwtservice.DefaultTokenTTL)),
		Metrics:             metrics.New(),
		Logger:              lg,
	}, api.Options{
		AppURL:         cfg.GetString("APP_URL"),
		PaymentAddress: cfg.GetString("PAYMENT_ADDRESS"),
		FrameRPS:       cfg.GetFloat("FRAME_RATE_LIMIT", 5),
		FrameBurst:     cfg.GetInt("FRAME_RATE_BURST", 10),
		Location:       loc,
	})
	if err = serv.Run(ctx, cfg.GetStringOr("API_ADDRESS", ":8080")); err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp(lg)
	lg.Info("server_stopped")
}
