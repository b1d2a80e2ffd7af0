package main

import (
	"context"

	"github.com/oggyb/sparkswipe/internal/app"
	"github.com/oggyb/sparkswipe/internal/cache"
	"github.com/oggyb/sparkswipe/internal/config"
	"github.com/oggyb/sparkswipe/internal/db"
	"github.com/oggyb/sparkswipe/internal/logger"
	"github.com/oggyb/sparkswipe/internal/server"
	"github.com/oggyb/sparkswipe/internal/service/account"
	"github.com/oggyb/sparkswipe/internal/service/chat"
	"github.com/oggyb/sparkswipe/internal/service/swipe"
	"github.com/oggyb/sparkswipe/internal/session"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	sessions := session.NewStore(redisCache, cfg.Session.TTL)
	appCtx := app.New(database, redisCache, sessions, log)

	if cfg.App.ENV == "development" {
		if err := db.SeedDemoData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	auth := server.NewAuth(sessions, cfg.Session.CookieName, int(cfg.Session.TTL.Seconds()), log)

	registrars := []server.Registrar{
		account.NewRegistrar(appCtx, cfg.Upload.Dir),
		swipe.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, auth, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
