package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/crickpick/prediction-league/internal/config"
	"github.com/crickpick/prediction-league/internal/infrastructure/account/local"
	"github.com/crickpick/prediction-league/internal/infrastructure/state"
	"github.com/crickpick/prediction-league/internal/interfaces/httpapi"
	"github.com/crickpick/prediction-league/internal/platform/cache"
	"github.com/crickpick/prediction-league/internal/platform/logging"
	"github.com/crickpick/prediction-league/internal/usecase"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, err := state.Open(filepath.Join(cfg.DataDir, "game"), logger)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	accounts, err := local.Open(filepath.Join(cfg.DataDir, "accounts"), cfg.JWTSecret, cfg.TokenTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("open account store: %w", err)
	}
	if cfg.AdminUsername != "" {
		if err := accounts.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("bootstrap admin account: %w", err)
		}
	}

	var viewCache *cache.Store
	if cfg.CacheEnabled {
		viewCache = cache.NewStore(cfg.CacheTTL)
	}

	scoringService := usecase.NewScoringService(store.Matches(), store.Players(), store.Predictions(), store.Rosters(), store, viewCache)
	scoringService.SetRecountWorkers(cfg.RecountMaxWorkers)

	handler := httpapi.NewHandler(
		usecase.NewAuthService(accounts),
		usecase.NewMatchService(store.Matches()),
		usecase.NewRegistryService(store.Players(), viewCache),
		usecase.NewPredictionService(store.Matches(), store.Players(), store.Predictions()),
		scoringService,
		usecase.NewLeaderboardService(store.Players(), viewCache),
		usecase.NewTeamService(store.Rosters()),
		logger,
	)
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve schedule timezone: %w", err)
	}
	handler.SetScheduleLocation(loc)

	router := httpapi.NewRouter(handler, accounts, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
