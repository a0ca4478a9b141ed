package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/usecase"
)

type joinGameRequest struct {
	Team string `json:"team" validate:"required"`
}

type switchTeamRequest struct {
	Team string `json:"team" validate:"required"`
}

type playerDTO struct {
	Username           string `json:"username"`
	CurrentTeam        string `json:"currentTeam"`
	OriginalTeam       string `json:"originalTeam"`
	Points             int    `json:"points"`
	PerfectPredictions int    `json:"perfectPredictions"`
	LoyaltyBonuses     int    `json:"loyaltyBonuses"`
	HasSwitched        bool   `json:"hasSwitched"`
	JoinedAt           string `json:"joinedAt"`
}

func (h *Handler) JoinGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinGame")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinGameRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	joined, err := h.registryService.Join(ctx, principal.Username, req.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "join game failed",
			"username", principal.Username, "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, joined))
}

func (h *Handler) GetMyPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	p, err := h.registryService.Get(ctx, principal.Username)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, p))
}

func (h *Handler) SwitchMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwitchMyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req switchTeamRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	switched, err := h.registryService.SwitchTeam(ctx, principal.Username, req.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "team switch failed",
			"username", principal.Username, "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, switched))
}

func playerToDTO(ctx context.Context, p player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		Username:           p.Username,
		CurrentTeam:        p.CurrentTeam,
		OriginalTeam:       p.OriginalTeam,
		Points:             p.Points,
		PerfectPredictions: p.PerfectPredictions,
		LoyaltyBonuses:     p.LoyaltyBonuses,
		HasSwitched:        p.HasSwitched,
		JoinedAt:           p.JoinedAt.UTC().Format(time.RFC3339),
	}
}
