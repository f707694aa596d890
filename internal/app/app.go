package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"curex/internal/adapters"
	"curex/internal/adapters/cache"
	"curex/internal/adapters/httpclient"
	"curex/internal/adapters/postgres"
	"curex/internal/api"
	"curex/internal/catalog"
	"curex/internal/config"
	"curex/internal/converter"
	"curex/internal/domain"
	"curex/internal/handler"
	"curex/internal/persist"
	"curex/internal/platform/db"
	httpserver "curex/internal/platform/http"
	"curex/internal/quota"
	"curex/internal/rates"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, initial reads)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, pool); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// Repositories
	kv := postgres.NewKVRepository(pool)
	selectionRepo := persist.NewSelectionRepository(kv)
	quotaRepo := persist.NewQuotaRepository(kv)

	cat, err := catalog.New(catalogEntries(appCfg.Catalog))
	if err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	logrus.WithField("currencies", cat.Codes()).Info("✅ Catalog loaded")

	// Quota
	savedQuota, err := quotaRepo.LoadQuota(startupCtx)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load api quota, starting from zero")
	}
	policy := quota.Policy{
		DailyLimit:   appCfg.Quota.DailyLimit,
		MonthlyLimit: appCfg.Quota.MonthlyLimit,
		ResetDay:     appCfg.Quota.ResetDay,
	}
	tracker := quota.NewTracker(policy, savedQuota, quotaRepo, time.Now)

	// External client
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	source, history := newRateSource(appCfg.RatesAPI, baseHTTPClient)
	logrus.WithField("provider", appCfg.RatesAPI.Provider).Info("✅ Rates provider configured")

	tableCache, err := cache.NewRateTableCache(appCfg.Cache.MaxItems, time.Duration(appCfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to create rate cache: %w", err)
	}
	defer tableCache.Close()

	// Services
	rateService := rates.NewService(source, history, tableCache, tracker, appCfg.Selection.Base)
	converterService, err := converter.NewService(startupCtx, cat, rateService, selectionRepo, appCfg.Selection.Defaults)
	if err != nil {
		logrus.WithError(err).Error("Failed to restore selection")
		return err
	}
	rateService.OnApply(converterService.Recompute)

	scheduler := rates.NewScheduler(rateService, tracker, time.Duration(appCfg.Scheduler.CheckIntervalSec)*time.Second)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.WithError(shutDownErr).Error("Scheduler shutdown error")
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	h := handler.NewHandler(cat, converterService, rateService, tracker)
	refreshLimiter, err := api.NewRateLimiter(appCfg.HTTPServer.RefreshRateLimit)
	if err != nil {
		return fmt.Errorf("invalid http_server.refresh_rate_limit: %w", err)
	}
	router := api.NewRouter(h, refreshLimiter)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.WithError(serverErr).Error("HTTP server error")
		return serverErr
	}
	return nil
}

// newRateSource picks the provider. Only Frankfurter serves history.
func newRateSource(cfg config.RatesAPI, client *http.Client) (adapters.RateSource, adapters.HistorySource) {
	if cfg.Provider == config.ProviderExchangeRate {
		return httpclient.NewExchangeRateClient(client, fmt.Sprintf("%s/%s/latest", cfg.URL(), cfg.APIKey)), nil
	}
	fc := httpclient.NewFrankfurterClient(client, cfg.URL())
	return fc, fc
}

func catalogEntries(cfg config.Catalog) []domain.CatalogEntry {
	if len(cfg.Currencies) == 0 {
		return catalog.Defaults()
	}
	entries := make([]domain.CatalogEntry, 0, len(cfg.Currencies))
	for _, c := range cfg.Currencies {
		entries = append(entries, domain.CatalogEntry{Code: c.Code, Name: c.Name, Symbol: c.Symbol})
	}
	return entries
}
