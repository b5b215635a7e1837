// Package app wires configuration into repositories, services and the HTTP
// router. The server, the CLI and the serverless entrypoint share it.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/wadjakorntonsri/fanlink/pkg/adapters/cache"
	"github.com/wadjakorntonsri/fanlink/pkg/adapters/handler"
	"github.com/wadjakorntonsri/fanlink/pkg/adapters/objekt"
	"github.com/wadjakorntonsri/fanlink/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/fanlink/pkg/config"
	"github.com/wadjakorntonsri/fanlink/pkg/core/services"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

type App struct {
	Repo      *sqlite.SQLiteRepository
	Profiles  *services.ProfileService
	Templates *services.TemplateService
	Objekts   *services.ObjektService

	redis *redis.Client
}

// New opens the database and, when REDIS_URL is set, the page cache. A cache
// that cannot be reached is logged and skipped.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	a := &App{Repo: repo}

	var pageCache ports.PageCache
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("page cache disabled", "error", err)
		} else {
			a.redis = client
			pageCache = cache.NewRedisCache(client, cfg.PageCacheTTL)
		}
	}

	a.Profiles = services.NewProfileService(repo, repo, pageCache, logger)
	a.Templates = services.NewTemplateService(repo, logger)
	a.Objekts = services.NewObjektService(objekt.NewClient(cfg.CosmoAPIURL, cfg.MagicEdenAPIURL), logger)
	return a, nil
}

func (a *App) Router(cfg *config.Config, logger *slog.Logger) http.Handler {
	return handler.NewRouter(cfg, handler.Services{
		Profiles:  a.Profiles,
		Templates: a.Templates,
		Objekts:   a.Objekts,
	}, logger)
}

func (a *App) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return a.Repo.Close()
}
