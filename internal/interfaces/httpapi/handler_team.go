package httpapi

import (
	"context"
	"net/http"

	"github.com/crickpick/prediction-league/internal/domain/catalog"
	"github.com/crickpick/prediction-league/internal/domain/roster"
)

type teamDTO struct {
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoPath       string `json:"logoPath"`
}

type rosterDTO struct {
	Team        string   `json:"team"`
	Batsmen     []string `json:"batsmen"`
	Bowlers     []string `json:"bowlers"`
	AllRounders []string `json:"allRounders"`
}

type teamSupportersDTO struct {
	Team       string   `json:"team"`
	Supporters []string `json:"supporters"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams := h.teamService.ListTeams(ctx)
	items := make([]teamDTO, 0, len(teams))
	for _, info := range teams {
		items = append(items, teamToDTO(ctx, info))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	info, err := h.teamService.GetTeam(ctx, r.PathValue("team"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, info))
}

func (h *Handler) ListTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStats")
	defer span.End()

	stats, err := h.registryService.StatsByTeam(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "team stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	team := r.PathValue("team")
	squad, err := h.teamService.GetRoster(ctx, team)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(ctx, squad))
}

func (h *Handler) ListTeamSupporters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamSupporters")
	defer span.End()

	team := r.PathValue("team")
	supporters, err := h.registryService.SupportersOf(ctx, team)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSupportersDTO{
		Team:       team,
		Supporters: supporters,
	})
}

func teamToDTO(ctx context.Context, info catalog.Info) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		Name:           info.Name,
		Abbreviation:   info.Abbreviation,
		PrimaryColor:   info.PrimaryColor,
		SecondaryColor: info.SecondaryColor,
		LogoPath:       info.LogoPath,
	}
}

func rosterToDTO(ctx context.Context, squad roster.Roster) rosterDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterToDTO")
	defer span.End()

	return rosterDTO{
		Team:        squad.Team,
		Batsmen:     append([]string(nil), squad.Batsmen...),
		Bowlers:     append([]string(nil), squad.Bowlers...),
		AllRounders: append([]string(nil), squad.AllRounders...),
	}
}
