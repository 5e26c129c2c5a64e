package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/linguate/auth"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("auth"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)

	log := lgr.GetLogger("server")

	cfg, err := auth.ConfigFromEnv()
	if err != nil {
		log.Error("configuration error: ", "error", err)
		os.Exit(1)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		log.Error("database open error: ", "error", err)
		os.Exit(1)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := auth.CreateUserSchema(ctx, db); err != nil {
		log.Error("schema error: ", "error", err)
		os.Exit(1)
	}

	repo := auth.NewRepositoryManager(db)
	if err := repo.Validate(); err != nil {
		log.Error("repository error: ", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenService(cfg, lgr.GetLogger("tokens"))
	cookies := auth.NewCookieTransport(cfg)
	mailer := auth.NewLogMailer(lgr.GetLogger("mailer"))

	controller := auth.NewAuthController(
		auth.WithDebug(!cfg.IsProduction()),
		auth.WithLogger(lgr.GetLogger("auth")),
		auth.WithRepositoryManager(repo),
		auth.WithTokenService(tokens),
		auth.WithCookieTransport(cookies),
		auth.WithMailer(mailer),
		auth.WithOrigin(cfg.Origin),
	)

	app := fiber.New(fiber.Config{
		AppName: "linguate-auth",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{
					"status":  "error",
					"errType": auth.TextCodeServer,
					"desc":    fe.Message,
				})
			}
			return auth.WriteError(c, err)
		},
	})

	api := app.Group("/api")
	auth.RegisterAuthRoutes(api.Group("/auth"), controller)

	go purgeUnverified(ctx, repo.Users(), cfg.UnverifiedTTL, lgr.GetLogger("purge"))

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown error: ", "error", err)
		}
	}()

	addr := ":" + envOrDefault("PORT", "8080")
	log.Info("listening", "addr", addr)

	if err := app.Listen(addr); err != nil {
		log.Error("server error: ", "error", err)
		os.Exit(1)
	}
}

// purgeUnverified periodically drops unverified accounts older than
// the configured window, standing in for a database level TTL.
func purgeUnverified(ctx context.Context, users auth.Users, ttl time.Duration, log auth.Logger) {
	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := users.PurgeUnverified(ctx, time.Now().Add(-ttl))
			if err != nil {
				log.Error("purge error: ", "error", err)
				continue
			}
			if n > 0 {
				log.Info("purged unverified accounts", "count", n)
			}
		}
	}
}

func envOrDefault(name, def string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return def
}
