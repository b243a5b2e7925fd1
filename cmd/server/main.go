package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/modules/functions"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/billing"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/config"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/emailverify"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/httpserver"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/logger"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/pg"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/ratelimit"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/redis"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/subscription"
)

type appConfig struct {
	Addr        string        `env:"SERVER_ADDR" envDefault:":8080"`
	Environment string        `env:"APP_ENV" envDefault:"development"`
	RateLimit   int           `env:"VERIFY_RATE_LIMIT" envDefault:"5"`
	RateWindow  time.Duration `env:"VERIFY_RATE_WINDOW" envDefault:"60s"`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, "subscription-service"))
	logger.SetAsDefault(log)

	if err := run(ctx, appCfg, log); err != nil {
		log.ErrorContext(ctx, "server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	subs := subscription.NewService(
		subscription.NewPGStore(pool),
		subscription.WithLogger(log),
	)

	// Checkout stays nil-able: without a Stripe key the endpoint answers
	// service-unavailable instead of blocking startup.
	var checkout functions.CheckoutService
	var stripeCfg billing.StripeConfig
	if err := config.Load(&stripeCfg); err != nil {
		return err
	}
	provider, err := billing.NewStripeProvider(stripeCfg)
	switch {
	case err == nil:
		checkout = billing.NewOrchestrator(provider, subs, log)
	case errors.Is(err, billing.ErrProviderNotConfigured):
		log.Warn("stripe secret key not set, checkout disabled")
	default:
		return err
	}

	limiter, err := buildVerifyLimiter(ctx, appCfg, log)
	if err != nil {
		return err
	}

	handler := functions.NewHandler(subs, checkout, emailverify.New(), log)

	r := chi.NewRouter()
	r.Mount("/functions/v1", functions.Router(handler, functions.VerifyRateLimit(limiter)))
	r.Get("/health", healthHandler(pg.Healthcheck(pool)))

	srv := httpserver.New(
		httpserver.WithAddr(appCfg.Addr),
		httpserver.WithReadTimeout(10*time.Second),
		httpserver.WithWriteTimeout(30*time.Second),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, r)
}

// buildVerifyLimiter picks the window store: Redis when configured so the
// quota holds across instances, otherwise the per-process memory store.
func buildVerifyLimiter(ctx context.Context, appCfg appConfig, log *slog.Logger) (ratelimit.Limiter, error) {
	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, err
	}

	var store ratelimit.WindowStore = ratelimit.NewMemoryStore()
	if redisCfg.ConnectionURL != "" {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		store, err = ratelimit.NewRedisStore(client, "ratelimit:")
		if err != nil {
			return nil, err
		}
		log.Info("rate limiting backed by redis")
	}

	return ratelimit.NewFixedWindow(store, appCfg.RateLimit, appCfg.RateWindow)
}

func healthHandler(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := check(r.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
