package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/crickpick/prediction-league/internal/domain/catalog"
	"github.com/crickpick/prediction-league/internal/domain/roster"
)

// TeamService serves the franchise catalog and squad lists.
type TeamService struct {
	rosterRepo roster.Repository
}

func NewTeamService(rosterRepo roster.Repository) *TeamService {
	return &TeamService{rosterRepo: rosterRepo}
}

func (s *TeamService) ListTeams(ctx context.Context) []catalog.Info {
	_, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	teams := catalog.Teams()
	out := make([]catalog.Info, 0, len(teams))
	for _, team := range teams {
		info, _ := catalog.InfoFor(team)
		out = append(out, info)
	}
	return out
}

func (s *TeamService) GetTeam(ctx context.Context, team string) (catalog.Info, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	info, ok := catalog.InfoFor(strings.TrimSpace(team))
	if !ok {
		return catalog.Info{}, fmt.Errorf("%w: unknown team %q", ErrNotFound, team)
	}
	return info, nil
}

func (s *TeamService) GetRoster(ctx context.Context, team string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetRoster")
	defer span.End()

	team = strings.TrimSpace(team)
	if !catalog.IsTeam(team) {
		return roster.Roster{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
	}

	r, exists, err := s.rosterRepo.GetByTeam(ctx, team)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get roster for %s: %w", team, err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: no roster for team %s", ErrNotFound, team)
	}
	return r, nil
}
