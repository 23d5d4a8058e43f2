// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkd/internal/ai"
	"parkd/internal/config"
	httptransport "parkd/internal/http"
	"parkd/internal/infra"
	"parkd/internal/maps"
	"parkd/internal/modules/holiday"
	"parkd/internal/modules/lot"
	"parkd/internal/modules/session"
	"parkd/internal/modules/tariff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	var tzResolver lot.TimezoneResolver
	if cfg.Maps.APIKey != "" {
		svc, err := maps.NewTimezoneService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		tzResolver = svc
	}

	var explainer ai.LLMProvider
	if cfg.AI.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer provider.Close()
		explainer = provider
	}

	lotStore := lot.NewStore(dbPool)
	lotSvc := lot.NewService(lotStore, tzResolver, cfg.Pricing.CountryCode, cfg.Pricing.DefaultCurrency)

	holidayStore := holiday.NewStore(dbPool, redisClient)
	holidaySvc := holiday.NewService(holidayStore)

	tariffStore := tariff.NewStore(dbPool)
	tariffSvc := tariff.NewService(tariffStore, lotSvc, holidaySvc)

	sessionStore := session.NewStore(dbPool)
	sessionSvc := session.NewService(sessionStore, tariffSvc)

	handler := httptransport.NewRouter(httptransport.ServerDeps{
		Sessions:  sessionSvc,
		Tariffs:   tariffSvc,
		Lots:      lotSvc,
		Holidays:  holidaySvc,
		Explainer: explainer,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("parkd-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
