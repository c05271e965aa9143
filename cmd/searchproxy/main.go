package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchproxy/internal/config"
	dbRedis "github.com/kailas-cloud/searchproxy/internal/db/redis"
	"github.com/kailas-cloud/searchproxy/internal/domain"
	logpkg "github.com/kailas-cloud/searchproxy/internal/logger"
	"github.com/kailas-cloud/searchproxy/internal/metrics"
	budgetrepo "github.com/kailas-cloud/searchproxy/internal/repository/budget"
	"github.com/kailas-cloud/searchproxy/internal/repository/searchcache"
	chiTransport "github.com/kailas-cloud/searchproxy/internal/transport/chi"
	openaiLLM "github.com/kailas-cloud/searchproxy/internal/transport/openai"
	"github.com/kailas-cloud/searchproxy/internal/transport/searxng"
	answeruc "github.com/kailas-cloud/searchproxy/internal/usecase/answer"
	completionuc "github.com/kailas-cloud/searchproxy/internal/usecase/completion"
	healthuc "github.com/kailas-cloud/searchproxy/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchproxy/internal/usecase/search"
	usageuc "github.com/kailas-cloud/searchproxy/internal/usecase/usage"
	"github.com/kailas-cloud/searchproxy/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchproxy API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("searxng", cfg.SearXNG.BaseURL),
		zap.Bool("cache", cfg.Cache.Enabled),
		zap.Bool("llm", cfg.LLM.Enabled),
	)

	// Register metrics explicitly (no init())
	metrics.Register(prometheus.DefaultRegisterer)

	ctx := context.Background()

	// The store backs the result cache and answer budget counters; both are optional.
	var store *dbRedis.Store
	if len(cfg.Database.Addrs) > 0 && (cfg.Cache.Enabled || cfg.LLM.Enabled) {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Database.Addrs,
			Password:   cfg.Database.Password,
			Standalone: cfg.Database.Standalone,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Strings("addrs", cfg.Database.Addrs),
		)
	}

	engine, err := searxng.NewClient(&searxng.Config{
		BaseURL:           cfg.SearXNG.BaseURL,
		Timeout:           time.Duration(cfg.SearXNG.TimeoutSec) * time.Second,
		Language:          cfg.SearXNG.Language,
		SafeSearch:        cfg.SearXNG.SafeSearch,
		RequestsPerSecond: cfg.SearXNG.RequestsPerSecond,
		Burst:             cfg.SearXNG.Burst,
		Logger:            logger,
	})
	if err != nil {
		logger.Fatal("Failed to create search engine client", zap.Error(err))
	}

	searchSvc := buildSearcher(cfg, engine, store, logger)

	// Answer generation chain: OpenAI -> Instrumented (budget + metrics).
	// Interfaces stay nil (not typed nil pointers) when answers are disabled.
	var (
		completer    domain.Completer
		llmChecker   healthuc.Checker
		budgetReader usageuc.BudgetReader
		model        string
	)
	if cfg.LLM.Enabled {
		base := openaiLLM.NewCompleter(&openaiLLM.Config{
			APIKey:           cfg.LLM.APIKey,
			BaseURL:          cfg.LLM.BaseURL,
			Model:            cfg.LLM.Model,
			MaxTokens:        cfg.LLM.MaxTokens,
			Temperature:      cfg.LLM.Temperature,
			TopP:             cfg.LLM.TopP,
			FrequencyPenalty: cfg.LLM.FrequencyPenalty,
			PresencePenalty:  cfg.LLM.PresencePenalty,
			Stop:             cfg.LLM.Stop,
			Timeout:          time.Duration(cfg.LLM.TimeoutSec) * time.Second,
			Provider:         cfg.LLM.Provider,
			Logger:           logger,
		})
		model = base.Model()
		llmChecker = base

		// Single BudgetTracker shared by the completer and the usage service.
		budget := buildBudget(ctx, cfg.LLM, store, logger)
		budgetReader = budget
		completer = completionuc.NewInstrumentedCompleter(base, cfg.LLM.Provider, model, budget, logger)

		logger.Info("Answer generation enabled",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", model),
		)
	}

	answerSvc := answeruc.New(searchSvc, completer, answeruc.Config{
		Model:               model,
		ResultsToConsider:   cfg.LLM.ResultsToConsider,
		IncludeURLsInPrompt: cfg.LLM.IncludeURLsInPrompt,
		SystemPrompt:        cfg.LLM.SystemPrompt,
		MaxSearchLimit:      cfg.Search.MaxLimit,
	}, logger)
	usageSvc := usageuc.New(budgetReader)

	var storePinger healthuc.StorePinger
	if store != nil {
		storePinger = store
	}
	healthSvc := healthuc.New(storePinger, engine, llmChecker, logger)

	server := chiTransport.NewServer(
		searchSvc, answerSvc, usageSvc, healthSvc, cfg.Search.DefaultLimit, cfg.Search.MaxLimit,
	)
	router := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSearcher assembles the search chain: SearXNG -> Normalize -> Cached.
func buildSearcher(
	cfg config.Config, engine searchuc.Engine, store *dbRedis.Store, logger *zap.Logger,
) chiTransport.Searcher {
	svc := searchuc.New(engine, domain.SearchConfig{
		TextCategories:  cfg.Search.TextCategories,
		ImageCategories: cfg.Search.ImageCategories,
	}, logger)
	if !cfg.Cache.Enabled || store == nil {
		return svc
	}

	ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
	logger.Info("Search result cache enabled", zap.Duration("ttl", ttl))
	return searchcache.New(svc, store, ttl, metrics.SearchCacheTotal, logger)
}

// buildBudget creates the answer token tracker. Zero limits only count usage.
func buildBudget(
	ctx context.Context, llm config.LLMConfig, store *dbRedis.Store, logger *zap.Logger,
) *completionuc.BudgetTracker {
	action := completionuc.BudgetActionWarn
	if llm.Budget.Action == "reject" {
		action = completionuc.BudgetActionReject
	}
	budget := completionuc.NewBudgetTracker(
		llm.Provider, llm.Budget.DailyTokenLimit, llm.Budget.MonthlyTokenLimit, action, logger,
	)
	if store != nil {
		// Connect persistence store, loads current counters from DB.
		budget.WithStore(ctx, budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour))
	}
	return budget
}
