package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/acmedash/acmedash/internal/auth"
	"github.com/acmedash/acmedash/internal/customer"
	"github.com/acmedash/acmedash/internal/dashboard"
	"github.com/acmedash/acmedash/internal/httpapi"
	"github.com/acmedash/acmedash/internal/invoice"
	"github.com/acmedash/acmedash/internal/seed"
	"github.com/acmedash/acmedash/internal/session"
	"github.com/acmedash/acmedash/internal/storage"
	"github.com/acmedash/acmedash/pkg/config"
	"github.com/acmedash/acmedash/pkg/email"
	"github.com/acmedash/acmedash/pkg/httpserver"
	"github.com/acmedash/acmedash/pkg/logger"
	"github.com/acmedash/acmedash/pkg/pg"
	"github.com/acmedash/acmedash/pkg/redis"
)

// appConfig aggregates every component's environment-driven configuration.
type appConfig struct {
	// BaseURL is the externally reachable origin used in email links.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	// TokenSecret signs one-time email tokens. Rotating it invalidates
	// every outstanding confirmation and reset link.
	TokenSecret string `env:"AUTH_TOKEN_SECRET,required"`
	// SeedEnabled exposes GET /seed; leave off outside development.
	SeedEnabled bool `env:"SEED_ENABLED" envDefault:"false"`

	Logger  logger.Config
	DB      pg.Config
	HTTP    httpserver.Config
	Email   email.Config
	Session session.Config
	Google  auth.GoogleOAuthConfig
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.NewFromConfig(cfg.Logger)

	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.DB, log); err != nil {
		return err
	}

	repos := storage.NewRepositories(pool)
	healthchecks := []func(context.Context) error{pg.Healthcheck(pool)}

	// Sessions live in memory unless a redis URL is configured.
	sessionOpts := []session.Option{}
	if cfg.Session.RedisURL != "" {
		redisClient, err := redis.Connect(ctx, redis.Config{
			ConnectionURL:  cfg.Session.RedisURL,
			RetryAttempts:  3,
			RetryInterval:  5 * time.Second,
			ConnectTimeout: 30 * time.Second,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		sessionOpts = append(sessionOpts, session.WithStore(session.NewRedisStore(redisClient)))
		healthchecks = append(healthchecks, redis.Healthcheck(redisClient))
	}
	sessions := session.New(cfg.Session, sessionOpts...)

	var sender email.Sender
	if cfg.Email.PostmarkServerToken != "" {
		sender, err = email.NewPostmarkSender(cfg.Email)
		if err != nil {
			return err
		}
	} else {
		sender = email.NewDevSender(cfg.Email.DevOutputDir)
		log.Info("postmark not configured, writing emails to disk", "dir", cfg.Email.DevOutputDir)
	}
	mailer := auth.NewMailer(sender, cfg.BaseURL)

	password := auth.NewPasswordService(repos.Users, repos.Users, cfg.TokenSecret,
		auth.WithMailer(mailer),
		auth.WithPasswordLogger(log),
	)
	verifier := auth.NewTokenVerifier(repos.Users, repos.Users, cfg.TokenSecret,
		auth.WithVerifierLogger(log),
	)

	var oauthService *auth.OAuthService
	if cfg.Google.Enabled() {
		oauthService = auth.NewOAuthService(repos.Users, auth.NewGoogleAdapter(cfg.Google),
			auth.WithOAuthLogger(log),
			auth.WithStateTTL(cfg.Google.StateTTL),
			auth.WithVerifiedOnly(cfg.Google.VerifiedOnly),
		)
	}

	var seeder *seed.Seeder
	if cfg.SeedEnabled {
		seeder = seed.New(pool, seed.WithLogger(log))
	}

	// Expired one-time tokens pile up in the consumed-token table; sweep
	// them in the background for the life of the process.
	go purgeExpiredTokens(ctx, repos.Users, log)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:       log,
		Sessions:     sessions,
		Password:     password,
		Verifier:     verifier,
		OAuth:        oauthService,
		Invoices:     invoice.NewService(repos.Invoices, invoice.WithLogger(log)),
		Customers:    customer.NewService(repos.Customers, customer.WithLogger(log)),
		Dashboard:    dashboard.NewService(repos.Dashboard, dashboard.WithLogger(log)),
		Seeder:       seeder,
		Healthchecks: healthchecks,
	})

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func purgeExpiredTokens(ctx context.Context, users *storage.UserRepository, log *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := users.PurgeExpiredTokens(ctx); err != nil {
				log.Warn("failed to purge expired tokens", "error", err)
			}
		}
	}
}
