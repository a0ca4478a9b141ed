package httpapi

import (
	"net/http"

	"github.com/crickpick/prediction-league/internal/usecase"
)

type recountRequest struct {
	MaxWorkers int  `json:"maxWorkers" validate:"gte=0,lte=64"`
	DryRun     bool `json:"dryRun"`
}

// RecountPoints rebuilds every player's totals from the stored predictions
// and results. The request body is optional; an empty body runs a full
// recount with default worker settings.
func (h *Handler) RecountPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecountPoints")
	defer span.End()

	req := recountRequest{}
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.scoringService.Recount(ctx, usecase.RecountInput{
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recount failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recount finished",
		"matches", result.MatchCount,
		"predictions", result.PredictionCount,
		"players", result.PlayerCount,
		"workers", result.WorkerCount,
		"dry_run", result.DryRun,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
