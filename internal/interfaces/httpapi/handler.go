package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/crickpick/prediction-league/internal/platform/logging"
	"github.com/crickpick/prediction-league/internal/usecase"
)

type Handler struct {
	authService        *usecase.AuthService
	matchService       *usecase.MatchService
	registryService    *usecase.RegistryService
	predictionService  *usecase.PredictionService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	teamService        *usecase.TeamService
	logger             *logging.Logger
	validator          *validator.Validate
	scheduleLoc        *time.Location
	now                func() time.Time
}

func NewHandler(
	authService *usecase.AuthService,
	matchService *usecase.MatchService,
	registryService *usecase.RegistryService,
	predictionService *usecase.PredictionService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	teamService *usecase.TeamService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:        authService,
		matchService:       matchService,
		registryService:    registryService,
		predictionService:  predictionService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		teamService:        teamService,
		logger:             logger,
		validator:          validator.New(),
		scheduleLoc:        time.UTC,
		now:                time.Now,
	}
}

// SetScheduleLocation sets the timezone used to interpret schedule times
// submitted without a UTC offset.
func (h *Handler) SetScheduleLocation(loc *time.Location) {
	if loc != nil {
		h.scheduleLoc = loc
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, dst any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
