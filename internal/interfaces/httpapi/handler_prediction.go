package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/prediction"
	"github.com/crickpick/prediction-league/internal/usecase"
)

type submitPredictionRequest struct {
	Winner         string `json:"winner" validate:"required"`
	TopScorer      string `json:"topScorer" validate:"required,max=80"`
	TopWicketTaker string `json:"topWicketTaker" validate:"required,max=80"`
}

type predictionDTO struct {
	MatchID        string `json:"matchId"`
	Username       string `json:"username"`
	Winner         string `json:"winner"`
	TopScorer      string `json:"topScorer"`
	TopWicketTaker string `json:"topWicketTaker"`
	SubmittedAt    string `json:"submittedAt"`
}

type matchPredictionsDTO struct {
	MatchID     string          `json:"matchId"`
	Count       int             `json:"count"`
	Predictions []predictionDTO `json:"predictions,omitempty"`
}

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID := r.PathValue("matchID")
	var req submitPredictionRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.predictionService.Submit(ctx, usecase.SubmitPredictionInput{
		MatchID:        matchID,
		Username:       principal.Username,
		Winner:         req.Winner,
		TopScorer:      req.TopScorer,
		TopWicketTaker: req.TopWicketTaker,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit prediction failed",
			"match_id", matchID, "username", principal.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(ctx, p))
}

func (h *Handler) GetMyPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID := r.PathValue("matchID")
	p, err := h.predictionService.Get(ctx, matchID, principal.Username)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(ctx, p))
}

// ListMatchPredictions is public, but individual picks stay hidden until the
// prediction window closes; before the cutoff only the count is returned.
func (h *Handler) ListMatchPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPredictions")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	predictions, err := h.predictionService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list predictions failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := matchPredictionsDTO{MatchID: m.ID, Count: len(predictions)}
	if h.now().Before(m.CutoffAt) {
		writeSuccess(ctx, w, http.StatusOK, out)
		return
	}

	out.Predictions = make([]predictionDTO, 0, len(predictions))
	for _, p := range predictions {
		out.Predictions = append(out.Predictions, predictionToDTO(ctx, p))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func predictionToDTO(ctx context.Context, p prediction.Prediction) predictionDTO {
	ctx, span := startSpan(ctx, "httpapi.predictionToDTO")
	defer span.End()

	return predictionDTO{
		MatchID:        p.MatchID,
		Username:       p.Username,
		Winner:         p.Winner,
		TopScorer:      p.TopScorer,
		TopWicketTaker: p.TopWicketTaker,
		SubmittedAt:    p.SubmittedAt.UTC().Format(time.RFC3339),
	}
}
