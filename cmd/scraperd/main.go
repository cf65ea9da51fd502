package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"linkedin-scraper/internal/auth"
	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/crawler"
	"linkedin-scraper/internal/database"
	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/orchestrator"
	"linkedin-scraper/internal/server"
	"linkedin-scraper/internal/session"
	"linkedin-scraper/internal/storage"
	"linkedin-scraper/internal/transport"
	"linkedin-scraper/internal/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	db, err := database.New(cfg.CacheDBPath)
	if err != nil {
		return fmt.Errorf("opening session cache database: %w", err)
	}
	defer db.Close()

	authenticator := auth.NewLoginService(auth.Options{
		Headless: cfg.BrowserHeadless,
		Timeout:  cfg.LoginTimeout,
		Log:      log,
	})
	sessions := session.NewStore(authenticator, storage.NewSessionCache(db, cfg.SessionTTL), session.StoreOptions{
		Secret:    cfg.CacheSecret,
		MemoryTTL: cfg.MemorySessionTTL,
		Log:       log,
	})

	client := transport.NewClient(transport.Options{
		Timeout:  cfg.RequestTimeout,
		Attempts: cfg.TransportAttempts,
	})
	lister := crawler.NewPaginationService(client, crawler.RetryPolicy{
		Attempts: cfg.ListingRetry.Attempts,
		Wait:     cfg.ListingRetry.Wait,
	}, log)
	fetcher := crawler.NewProfileService(client, crawler.RetryPolicy{
		Attempts: cfg.ProfileRetry.Attempts,
		Wait:     cfg.ProfileRetry.Wait,
	}, log)

	pipeline := orchestrator.New(sessions, lister, fetcher, cfg.FetchConcurrency, log)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(pipeline, cfg.APIKeys, log).Handler(),
	}

	ctx, stop := utils.NotifyContext(context.Background())
	defer stop()

	errCh := make(chan error, 1)
	start := time.Now()
	go func() {
		log.Info("listening", "addr", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", "uptime", utils.FormatDuration(time.Since(start)))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
