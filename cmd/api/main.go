package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orlando572/sumaq-seguros-sub000/auth"
	"github.com/orlando572/sumaq-seguros-sub000/comparator"
	"github.com/orlando572/sumaq-seguros-sub000/config"
	"github.com/orlando572/sumaq-seguros-sub000/dashboard"
	"github.com/orlando572/sumaq-seguros-sub000/db"
	"github.com/orlando572/sumaq-seguros-sub000/logger"
	"github.com/orlando572/sumaq-seguros-sub000/plan"
	"github.com/orlando572/sumaq-seguros-sub000/quotation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Error("load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Env)
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(cfg.Database.URL); err != nil {
			log.Error("apply migrations", "error", err)
			os.Exit(1)
		}
	}

	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Error("bootstrap database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	authService := auth.NewService(auth.NewRepository(pool), cfg.Auth.JWTSecret)
	planService := plan.NewService(plan.NewRepository(pool))
	dashboardLoader := dashboard.NewLoader(dashboard.NewRepository(pool))

	dispatcher := quotation.NewDispatcher(quotation.NewRepository(pool))
	if cfg.Quotation.WebhookURL != "" {
		dispatcher.WithNotifier(quotation.NewWebhookNotifier(cfg.Quotation.WebhookURL, cfg.Quotation.WebhookTimeout))
	}

	comparators := comparator.NewRegistry(planService).WithIdleTTL(cfg.Comparator.IdleTTL)
	server := NewServer(authService, planService, comparators, dashboardLoader, dispatcher)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("api listening", "addr", cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("serve", "error", err)
		os.Exit(1)
	}
}
