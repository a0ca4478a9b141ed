// Command importer converts season CSV exports into the snapshot files the
// API serves from. The schedule CSV becomes matches.json and the auction
// list CSV becomes rosters.json, both written through the state store so the
// usual validation applies.
//
// Schedule CSV columns: match_id, team1, team2, scheduled_at, venue, playoff.
// Auction CSV columns: player, team, role (BATSMAN, BOWLER or ALL_ROUNDER).
// Teams may be given as full franchise names or abbreviations.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/catalog"
	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/roster"
	"github.com/crickpick/prediction-league/internal/infrastructure/state"
	"github.com/crickpick/prediction-league/internal/platform/logging"
)

const scheduleTimeLayout = "2006-01-02 15:04"

func main() {
	var (
		schedulePath = flag.String("schedule", "", "path to the match schedule CSV")
		squadsPath   = flag.String("squads", "", "path to the player auction list CSV")
		dataDir      = flag.String("data", "./data/game", "snapshot directory to write into")
		timezone     = flag.String("tz", "Asia/Kolkata", "IANA timezone schedule times are given in")
	)
	flag.Parse()

	if *schedulePath == "" && *squadsPath == "" {
		flag.Usage()
		log.Fatal("nothing to import: pass -schedule and/or -squads")
	}

	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", *timezone, err)
	}

	store, err := state.Open(*dataDir, logging.NewNop())
	if err != nil {
		log.Fatalf("open snapshot dir: %v", err)
	}

	ctx := context.Background()

	if *schedulePath != "" {
		matches, err := readSchedule(*schedulePath, loc)
		if err != nil {
			log.Fatalf("read schedule: %v", err)
		}
		repo := store.Matches()
		for _, m := range matches {
			if err := repo.Create(ctx, m); err != nil {
				log.Fatalf("import match %s: %v", m.ID, err)
			}
		}
		log.Printf("imported %d matches from %s", len(matches), *schedulePath)
	}

	if *squadsPath != "" {
		rosters, err := readSquads(*squadsPath)
		if err != nil {
			log.Fatalf("read squads: %v", err)
		}
		if err := store.ReplaceRosters(ctx, rosters); err != nil {
			log.Fatalf("import rosters: %v", err)
		}
		log.Printf("imported %d squads from %s", len(rosters), *squadsPath)
	}
}

func readSchedule(path string, loc *time.Location) ([]match.Match, error) {
	rows, err := readCSV(path, 6)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(rows))
	for i, row := range rows {
		team1, err := resolveTeam(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		team2, err := resolveTeam(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		scheduledAt, err := time.ParseInLocation(scheduleTimeLayout, strings.TrimSpace(row[3]), loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse scheduled_at %q: %w", i+2, row[3], err)
		}
		playoff, err := parsePlayoff(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		m, err := match.New(row[0], team1, team2, scheduledAt, row[4], playoff)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func readSquads(path string) ([]roster.Roster, error) {
	rows, err := readCSV(path, 3)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string]*roster.Roster)
	for i, row := range rows {
		name := strings.TrimSpace(row[0])
		if name == "" {
			return nil, fmt.Errorf("row %d: player name is empty", i+2)
		}
		team, err := resolveTeam(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		r := byTeam[team]
		if r == nil {
			r = &roster.Roster{Team: team}
			byTeam[team] = r
		}

		switch role := strings.ToUpper(strings.TrimSpace(row[2])); role {
		case "BATSMAN", "WICKETKEEPER":
			r.Batsmen = append(r.Batsmen, name)
		case "BOWLER":
			r.Bowlers = append(r.Bowlers, name)
		case "ALL_ROUNDER", "ALL-ROUNDER":
			r.AllRounders = append(r.AllRounders, name)
		default:
			return nil, fmt.Errorf("row %d: unknown role %q", i+2, row[2])
		}
	}

	out := make([]roster.Roster, 0, len(byTeam))
	for _, r := range byTeam {
		out = append(out, *r)
	}
	return out, nil
}

// readCSV loads all data rows, skipping the header, and checks the column
// count so later indexing is safe.
func readCSV(path string, wantCols int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	var rows [][]string
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if line == 1 {
			continue
		}
		if len(row) != wantCols {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, wantCols, len(row))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}
	return rows, nil
}

// resolveTeam accepts either a full franchise name or its abbreviation.
func resolveTeam(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if catalog.IsTeam(name) {
		return name, nil
	}
	for _, team := range catalog.Teams() {
		info, _ := catalog.InfoFor(team)
		if strings.EqualFold(info.Abbreviation, name) {
			return team, nil
		}
	}
	return "", fmt.Errorf("unknown team %q", raw)
}

func parsePlayoff(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid playoff flag %q", raw)
}
