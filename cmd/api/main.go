package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/0xBased-lang/kektech/app"
	"github.com/0xBased-lang/kektech/app/api"
	"github.com/0xBased-lang/kektech/app/auth"
	"github.com/0xBased-lang/kektech/app/database"
	apiDoc "github.com/0xBased-lang/kektech/app/doc"
	"github.com/0xBased-lang/kektech/app/markets"
	"github.com/0xBased-lang/kektech/app/resolution"
	"github.com/0xBased-lang/kektech/app/settlement"
	"github.com/0xBased-lang/kektech/app/stakes"
	"github.com/0xBased-lang/kektech/internal/cache"
	"github.com/0xBased-lang/kektech/internal/deps"
	"github.com/0xBased-lang/kektech/internal/logger"
	"github.com/0xBased-lang/kektech/internal/router"
	"github.com/0xBased-lang/kektech/internal/sanitizer"
	"github.com/0xBased-lang/kektech/internal/security"
)

// @title KekTech Markets API
// @version 1.0
// @description Binary prediction markets priced by an LMSR bonding curve: market lifecycle, stake placement, resolution with community disputes, and pull-based claims.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	tokenMaker, err := security.NewPasetoMaker(cfg.Auth.SymmetricKey)
	if err != nil {
		log.Fatal("cannot create token maker: ", err)
	}

	appLogger := logger.NewZeroLogger(os.Stdout, logger.LevelInfo, logger.Fields{
		"service": "kektech-api",
		"env":     cfg.Env,
	})
	htmlSanitizer := sanitizer.NewHTMLStripper()

	oddsCache := newOddsCache(cfg)
	container := deps.NewContainer(db, tokenMaker, htmlSanitizer, appLogger)

	engine := gin.Default()
	engine.Use(api.CorsMiddleware())

	mounter := router.NewMounter(container)
	public := mounter.Public(engine)
	var marketsService markets.Service
	public.Mount(func(r *gin.RouterGroup, c *deps.Container) {
		r.GET("/healthz", api.HealthCheck)

		// Auth first: every other module takes the middleware it returns.
		c.AuthRequired = auth.Init(r, auth.Dependencies{
			DB:         c.DB,
			Config:     &cfg.Auth,
			TokenMaker: c.TokenMaker,
		})

		marketsService = markets.Init(r, markets.Dependencies{
			DB:           c.DB,
			Config:       &cfg.Markets,
			Sanitizer:    c.Sanitizer,
			Cache:        oddsCache,
			Logger:       c.Logger,
			AuthRequired: c.AuthRequired,
		})

		stakes.Init(r, stakes.Dependencies{
			DB:            c.DB,
			Config:        &cfg.Stakes,
			MarketsConfig: &cfg.Markets,
			Guard:         c.Guard,
			OddsCache:     oddsCache,
			Logger:        c.Logger,
			AuthRequired:  c.AuthRequired,
		})

		feeSink := settlement.Init(r, settlement.Dependencies{
			DB:           c.DB,
			Config:       &cfg.Settlement,
			Guard:        c.Guard,
			Logger:       c.Logger,
			AuthRequired: c.AuthRequired,
		})

		resolution.Init(r, resolution.Dependencies{
			DB:           c.DB,
			Config:       &cfg.Resolution,
			FeeSink:      feeSink,
			Sanitizer:    c.Sanitizer,
			Logger:       c.Logger,
			AuthRequired: c.AuthRequired,
		})
	})

	apiDoc.Init(engine, cfg.Env)

	startVoidSweeper(marketsService, appLogger)

	appLogger.Info("starting api server", map[string]interface{}{
		"host": cfg.AppHost,
		"port": cfg.AppPort,
	})
	if err := engine.Run(fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newOddsCache(cfg *app.Config) cache.Cache[markets.OddsQuote] {
	if cfg.CacheBackend == cache.RedisBackend {
		return cache.NewCache[markets.OddsQuote](cache.RedisBackend, &cache.RedisOptions{
			Addr: cfg.RedisAddr,
		})
	}
	return cache.NewMemoryCache[markets.OddsQuote]()
}

// startVoidSweeper periodically moves abandoned markets past their resolver
// grace period into VOIDED so stakes become refundable.
func startVoidSweeper(svc markets.Service, log logger.Logger) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			voided, err := svc.ProcessTimedOutMarkets(context.Background())
			if err != nil {
				log.Error(err, map[string]interface{}{"task": "void-sweep"})
				continue
			}
			if voided > 0 {
				log.Info("voided timed out markets", map[string]interface{}{"count": voided})
			}
		}
	}()
}
