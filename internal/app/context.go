package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/sparkswipe/internal/cache"
	"github.com/oggyb/sparkswipe/internal/session"
)

// AppContext holds shared dependencies (DB, Redis, sessions, logger).
// Built once in main and handed to every service; nothing reaches for
// ambient globals.
type AppContext struct {
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Sessions   *session.Store
	Logger     *slog.Logger
}

// New creates a new AppContext.
func New(db *gorm.DB, rdb *cache.RedisCache, sessions *session.Store, logger *slog.Logger) *AppContext {
	return &AppContext{
		DB:         db,
		RedisCache: rdb,
		Sessions:   sessions,
		Logger:     logger,
	}
}
