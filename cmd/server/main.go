package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lnward/go-lnauth-server/generators"
	"github.com/lnward/go-lnauth-server/internal/config"
	"github.com/lnward/go-lnauth-server/lnauth"
	"github.com/lnward/go-lnauth-server/lnurl"
	"github.com/lnward/go-lnauth-server/server"
	"github.com/lnward/go-lnauth-server/storage/gormstore"
	"github.com/lnward/go-lnauth-server/storage/memstore"
	"github.com/lnward/go-lnauth-server/token"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running server: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.New()
	displayAppName(cfg.GetAppName())

	secret := cfg.GetSecret()
	if secret == "" {
		return errors.New("LNAUTH_SECRET must be set")
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		return errors.Wrap(err, "session store")
	}

	tokens := token.New(token.NewHMACSigner(secret),
		token.WithIssuer(cfg.GetBaseURL()),
		token.WithAudience(cfg.GetBaseURL()),
		token.WithTokenExpiry(cfg.GetIDTokenExpiry(), cfg.GetRefreshTokenExpiry()),
	)

	svc, err := lnauth.NewService(lnauth.Deps{
		Store:      store,
		Verifier:   lnurl.NewAuthVerifier(),
		Tokens:     tokens,
		Generators: generators.Default(),
	}, cfg.GetBaseURL(),
		lnauth.WithCallbackPath(cfg.GetCallbackPath()),
		lnauth.WithAvatarPath(cfg.GetAvatarPath()),
		lnauth.WithIntervals(cfg.GetPollInterval(), cfg.GetCreateInterval()),
		lnauth.WithLogger(logger),
	)
	if err != nil {
		return errors.Wrap(err, "protocol engine")
	}

	srv, err := server.New(cfg, svc, generators.Default(), logger)
	if err != nil {
		return errors.Wrap(err, "http server")
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: srv}
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("ListenAndServe")
		}
	}()

	waitForStopSignal()
	return shutdown(httpServer, logger)
}

func newSessionStore(cfg config.Config) (lnauth.SessionRepo, error) {
	switch cfg.GetStoreKind() {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.GetDBPath()), &gorm.Config{})
		if err != nil {
			return nil, errors.Wrap(err, "gorm.Open")
		}
		return gormstore.New(db)
	case "memory":
		return memstore.New(cfg.GetSessionTTL()), nil
	default:
		return nil, errors.Errorf("unknown store kind %q", cfg.GetStoreKind())
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server, logger zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info().Msg("shutting down")
	if err := httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	return nil
}

func displayAppName(appName string) {
	figure.NewFigure(appName, "", true).Print()
}
