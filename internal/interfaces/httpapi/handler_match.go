package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/usecase"
)

type createMatchRequest struct {
	ID          string `json:"id" validate:"required,max=64"`
	Team1       string `json:"team1" validate:"required"`
	Team2       string `json:"team2" validate:"required"`
	ScheduledAt string `json:"scheduledAt" validate:"required"`
	Venue       string `json:"venue" validate:"required,max=120"`
	IsPlayoff   bool   `json:"isPlayoff"`
}

type updateMatchRequest struct {
	Team1       string `json:"team1" validate:"required"`
	Team2       string `json:"team2" validate:"required"`
	ScheduledAt string `json:"scheduledAt" validate:"required"`
	Venue       string `json:"venue" validate:"required,max=120"`
	IsPlayoff   bool   `json:"isPlayoff"`
}

type recordResultRequest struct {
	Winner         string `json:"winner" validate:"required"`
	TopScorer      string `json:"topScorer" validate:"required"`
	TopWicketTaker string `json:"topWicketTaker" validate:"required"`
}

type matchResultDTO struct {
	Winner         string `json:"winner"`
	TopScorer      string `json:"topScorer"`
	TopWicketTaker string `json:"topWicketTaker"`
}

type matchDTO struct {
	ID          string          `json:"id"`
	Team1       string          `json:"team1"`
	Team2       string          `json:"team2"`
	ScheduledAt string          `json:"scheduledAt"`
	CutoffAt    string          `json:"cutoffAt"`
	Venue       string          `json:"venue"`
	IsPlayoff   bool            `json:"isPlayoff"`
	Status      string          `json:"status"`
	Result      *matchResultDTO `json:"result,omitempty"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	var (
		matches []match.Match
		err     error
	)
	switch status := strings.TrimSpace(r.URL.Query().Get("status")); status {
	case "":
		matches, err = h.matchService.List(ctx)
	case "upcoming":
		matches, err = h.matchService.ListUpcoming(ctx)
	default:
		writeError(ctx, w, fmt.Errorf("%w: unsupported status filter %q", usecase.ErrInvalidInput, status))
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, m))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scheduledAt, err := h.parseScheduleTime(req.ScheduledAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		ID:          req.ID,
		Team1:       req.Team1,
		Team2:       req.Team2,
		ScheduledAt: scheduledAt,
		Venue:       req.Venue,
		IsPlayoff:   req.IsPlayoff,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "match_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, m))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req updateMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scheduledAt, err := h.parseScheduleTime(req.ScheduledAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.Update(ctx, matchID, usecase.UpdateMatchInput{
		Team1:       req.Team1,
		Team2:       req.Team2,
		ScheduledAt: scheduledAt,
		Venue:       req.Venue,
		IsPlayoff:   req.IsPlayoff,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, m))
}

func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordResult")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req recordResultRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.scoringService.Score(ctx, matchID, match.Result{
		Winner:         req.Winner,
		TopScorer:      req.TopScorer,
		TopWicketTaker: req.TopWicketTaker,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match scored",
		"match_id", matchID,
		"multiplier", outcome.Multiplier,
		"predictions_scored", outcome.Scored,
	)
	writeSuccess(ctx, w, http.StatusOK, outcome)
}

// parseScheduleTime accepts RFC 3339 or a local wall-clock time without an
// offset, which is interpreted in the configured schedule timezone.
func (h *Handler) parseScheduleTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", value, h.scheduleLoc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: scheduledAt must be RFC 3339 or a local YYYY-MM-DDTHH:MM:SS time: %v", usecase.ErrInvalidInput, err)
	}
	return parsed, nil
}

func matchToDTO(ctx context.Context, m match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	dto := matchDTO{
		ID:          m.ID,
		Team1:       m.Team1,
		Team2:       m.Team2,
		ScheduledAt: m.ScheduledAt.UTC().Format(time.RFC3339),
		CutoffAt:    m.CutoffAt.UTC().Format(time.RFC3339),
		Venue:       m.Venue,
		IsPlayoff:   m.IsPlayoff,
		Status:      m.Status,
	}
	if m.Result != nil {
		dto.Result = &matchResultDTO{
			Winner:         m.Result.Winner,
			TopScorer:      m.Result.TopScorer,
			TopWicketTaker: m.Result.TopWicketTaker,
		}
	}
	return dto
}
