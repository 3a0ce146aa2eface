package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MindTrace/internal/api"
	"MindTrace/internal/geo"
	"MindTrace/internal/listeners"
	"MindTrace/internal/sos"
	"MindTrace/pkg/cache"
	"MindTrace/pkg/config"
	"MindTrace/pkg/logger"
	"MindTrace/pkg/metrics"
	"MindTrace/pkg/notification"
	"MindTrace/pkg/scheduler"
	"MindTrace/pkg/search"
	"MindTrace/pkg/util"

	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}
	cfg := config.GlobalConfig
	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer logger.Sync()

	client := api.New(cfg.BaseURL, cfg.RequestTimeout)
	if tok := util.GetEnv("API_TOKEN"); tok != "" {
		client.SetToken(tok)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if email := util.GetEnv("ACCOUNT_EMAIL"); email != "" {
		if _, err := client.Login(ctx, email, util.GetEnv("ACCOUNT_PASSWORD")); err != nil {
			logger.Error("login failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("logged in", zap.String("email", email))
	}

	store := cache.NewGoCache(5*time.Minute, 10*time.Minute)
	defer store.Close()
	notices := notification.NewCenter(4 * time.Second)

	listeners.InitAlertListeners(notices)
	listeners.InitProfileListeners(store)

	go func() {
		for n := range notices.Subscribe() {
			logger.Info("notice", zap.String("level", string(n.Level)), zap.String("message", n.Message))
		}
	}()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	settings := sos.NewSettings(client, store, notices)
	cron := scheduler.NewCron(nil)
	if _, err := cron.AddWithCtx(cfg.ContactsRefresh, func(jobCtx context.Context) {
		if _, err := settings.Contacts(jobCtx, true); err != nil {
			logger.Debug("contacts refresh failed", zap.Error(err))
		}
	}); err != nil {
		logger.Warn("invalid contacts refresh schedule", zap.Error(err))
	}
	cron.Start()
	defer cron.Stop()

	histIndex, err := search.New(sos.HistoryIndexMapping())
	if err != nil {
		logger.Error("history index init failed", zap.Error(err))
		os.Exit(1)
	}
	defer histIndex.Close()

	watcher := sos.NewWatcher(client, geo.New(cfg.GeocoderURL), notices, sos.Options{
		PollInterval: cfg.PollInterval,
		MaxBackoff:   cfg.PollMaxBackoff,
		HistoryLimit: cfg.HistoryLimit,
		SearchIndex:  histIndex,
	})

	logger.Info("watcher started",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("poll_interval", cfg.PollInterval))
	watcher.Run(ctx)
	logger.Info("watcher stopped")
}
