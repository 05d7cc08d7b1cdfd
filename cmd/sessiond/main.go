// Command sessiond serves cookie-backed sessions over a small JSON API.
//
// Configuration comes from the environment (and an optional .env file):
//
//	SESSION_STORE=memory|redis   persistence backend (default memory)
//	COOKIE_SECRETS=...           comma separated, newest first; required for signed and encrypted ids
//	SESSION_NAME, SESSION_*      see session.Config
//	REDIS_URL, REDIS_*           see redis.Config
//	HTTP_ADDR, HTTP_*            see httpserver.Config
//	APP_ENV, LOG_LEVEL, ...      see logger.Config
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/sessionkit/internal/api"
	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/redis"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

type appConfig struct {
	Store   string `env:"SESSION_STORE" envDefault:"memory"`
	Logger  logger.Config
	HTTP    httpserver.Config
	Session session.Config
	Cookie  cookie.Config
	Redis   redis.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Logger,
		logger.WithContextExtractors(requestid.LoggerExtractor(), session.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("sessiond stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	opts := []session.Option{
		session.WithCookieManager(cookies),
		session.WithLogger(log),
	}
	var checks []httpserver.Check

	switch cfg.Store {
	case storeMemory:
	case storeRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer client.Close()

		opts = append(opts, session.WithStore(session.NewRedisStore(client)))
		checks = append(checks, httpserver.Check{Name: "redis", Func: redis.Healthcheck(client)})
	default:
		return fmt.Errorf("unknown session store %q", cfg.Store)
	}

	sessions := session.NewFromConfig(cfg.Session, opts...)
	defer sessions.Close()

	log.Info("session manager ready",
		logger.Store(cfg.Store),
		logger.SessionName(cfg.Session.Name),
		slog.Bool("strict_mode", cfg.Session.StrictMode),
	)

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, api.New(sessions, log).Router(checks...))
}
