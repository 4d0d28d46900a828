package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/riskibarqy/nfl-dfs-helper/external/dfsfeed"
	"github.com/riskibarqy/nfl-dfs-helper/external/sleeper"
	"github.com/riskibarqy/nfl-dfs-helper/internal/config"
	"github.com/riskibarqy/nfl-dfs-helper/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nfl-dfs-helper/internal/interfaces/httpapi"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/cache"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/logging"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/resilience"
	"github.com/riskibarqy/nfl-dfs-helper/internal/usecase"
)

// App bundles the HTTP server with the background refresh scheduler so
// main can manage both lifecycles together.
type App struct {
	Server    *http.Server
	Scheduler *usecase.RefreshScheduler
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	rosterRepo := memory.NewRosterRepository()
	salaryRepo := memory.NewSalaryRepository()
	lineupRepo := memory.NewLineupRepository()

	feedClient := dfsfeed.NewClient(dfsfeed.ClientConfig{
		BaseURL:    cfg.FeedBaseURL,
		APIKey:     cfg.FeedAPIKey,
		Sport:      cfg.FeedSport,
		Site:       cfg.FeedSite,
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.FeedMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})
	sleeperClient := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:    cfg.SleeperBaseURL,
		Timeout:    cfg.SleeperTimeout,
		MaxRetries: cfg.SleeperMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMax,
		},
	})

	var slateBooks *cache.Store
	if cfg.CacheEnabled {
		slateBooks = cache.NewStore(cfg.CacheTTL)
	}

	slateSvc := usecase.NewSlateService(feedClient, slateBooks, appLogger)
	kickoffs := usecase.DefaultKickoffTimes()
	if len(cfg.KickoffByWeekday) > 0 {
		kickoffs.ByWeekday = cfg.KickoffByWeekday
	}
	if cfg.KickoffFallback != "" {
		kickoffs.Fallback = cfg.KickoffFallback
	}
	attributor := usecase.NewGameAttributor(slateSvc, kickoffs, appLogger)
	resolver := usecase.NewIdentityResolver()

	rosterSvc := usecase.NewRosterService(sleeperClient, rosterRepo, usecase.RosterServiceConfig{
		SeasonStart: cfg.SeasonStart,
	}, appLogger)
	salarySvc := usecase.NewSalaryService(
		feedClient,
		slateSvc,
		attributor,
		resolver,
		rosterRepo,
		salaryRepo,
		usecase.SalaryServiceConfig{
			ScrapeWorkers: cfg.ScrapeWorkers,
			SeasonStart:   cfg.SeasonStart,
		},
		appLogger,
	)
	admissionSvc := usecase.NewAdmissionService(salaryRepo, lineupRepo, appLogger)

	scheduler := usecase.NewRefreshScheduler(usecase.RefreshSchedulerConfig{
		BaseInterval:    cfg.RefreshBaseInterval,
		GameDayInterval: cfg.RefreshGameDayInterval,
	}, appLogger)
	scheduler.Register(usecase.RefreshTask{
		Name: "refresh-roster",
		Run: func(ctx context.Context) (any, error) {
			count, err := rosterSvc.Refresh(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]int{"players": count}, nil
		},
	})
	scheduler.Register(usecase.RefreshTask{
		Name: "refresh-salaries",
		Run: func(ctx context.Context) (any, error) {
			return salarySvc.Refresh(ctx)
		},
	})

	handler := httpapi.NewHandler(rosterSvc, salarySvc, admissionSvc, scheduler, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, Scheduler: scheduler}, nil
}
