package tables

import (
	"context"

	"github.com/JonMunkholm/esports/internal/core"
	"github.com/JonMunkholm/esports/internal/store"
)

func init() {
	core.RegisterReport(core.Report{Key: "match_results", Label: "Match Results", Run: matchResults})
	core.RegisterReport(core.Report{Key: "completed_matches", Label: "Completed Matches", Run: completedMatches})
	core.RegisterReport(core.Report{Key: "team_ranking", Label: "Team Ranking", Run: teamRanking})
	core.RegisterReport(core.Report{Key: "final_eligible", Label: "Final Eligible Teams", Run: finalEligible})
	core.RegisterReport(core.Report{Key: "player_stats", Label: "Player Performance", Run: playerStats})
	core.RegisterReport(core.Report{Key: "seating", Label: "Seating Plan", Run: seating})
	core.RegisterReport(core.Report{Key: "audit_log", Label: "Audit Log", Run: auditLog})
}

// teamNames returns the teams table reduced to id and name, with the columns
// renamed so it can be joined onto a match's team reference.
func teamNames(ctx context.Context, s *core.Service, idColumn, nameColumn string) (*store.Table, error) {
	t, err := s.Project(ctx, "teams", "team_id", "team_name")
	if err != nil {
		return nil, err
	}
	return store.New([]string{idColumn, nameColumn}, t.Rows()...), nil
}

// matchResults lists every match with both team names and the winner's.
func matchResults(ctx context.Context, s *core.Service) (*store.Table, error) {
	t, err := s.View(ctx, "matches")
	if err != nil {
		return nil, err
	}
	for _, ref := range []struct{ id, name string }{
		{"team1_id", "team1_name"},
		{"team2_id", "team2_name"},
		{"winner_team_id", "winner_name"},
	} {
		names, err := teamNames(ctx, s, ref.id, ref.name)
		if err != nil {
			return nil, err
		}
		if t, err = store.KeyJoin(t, ref.id, names, ref.id); err != nil {
			return nil, err
		}
	}
	return store.Project(t,
		"match_id", "scheduled_date", "scheduled_time", "match_level",
		"team1_name", "team1_score", "team2_score", "team2_name",
		"winner_name", "match_status",
	)
}

func completedMatches(ctx context.Context, s *core.Service) (*store.Table, error) {
	t, err := matchResults(ctx, s)
	if err != nil {
		return nil, err
	}
	if t, err = store.Filter(t, "match_status", "Completed"); err != nil {
		return nil, err
	}
	return store.SortByTwoKeys(t, "scheduled_date", "scheduled_time", true)
}

func teamRanking(ctx context.Context, s *core.Service) (*store.Table, error) {
	t, err := s.Project(ctx, "teams", "team_id", "team_name", "university", "country", "ranking_points", "team_status")
	if err != nil {
		return nil, err
	}
	return store.SortByOneKey(t, "ranking_points", false)
}

// finalEligible lists registered teams that have checked in, earliest
// registration first.
func finalEligible(ctx context.Context, s *core.Service) (*store.Table, error) {
	t, err := s.SearchTwo(ctx, "teams", "team_status", "Registered", "check_in_status", "CheckedIn")
	if err != nil {
		return nil, err
	}
	if t, err = store.SortByTwoKeys(t, "registration_date", "registration_time", true); err != nil {
		return nil, err
	}
	return store.Project(t, "team_id", "team_name", "team_type", "registration_date", "registration_time", "checked_in_time")
}

// playerStats attaches player names and teams to per-match statistics,
// highest kills first.
func playerStats(ctx context.Context, s *core.Service) (*store.Table, error) {
	players, err := s.Project(ctx, "players", "in_game_name", "player_name", "team_id")
	if err != nil {
		return nil, err
	}
	stats, err := s.View(ctx, "gameStats")
	if err != nil {
		return nil, err
	}
	t, err := store.KeyJoin(stats, "in_game_name", players, "in_game_name")
	if err != nil {
		return nil, err
	}
	if t, err = store.SortByOneKey(t, "kills", false); err != nil {
		return nil, err
	}
	return store.Project(t, "match_id", "in_game_name", "player_name", "team_id", "hero_played", "kills", "deaths", "assists", "gpm", "xpm")
}

func seating(ctx context.Context, s *core.Service) (*store.Table, error) {
	t, err := s.Join(ctx, "seats", "spectator_id", "spectators", "spectator_id")
	if err != nil {
		return nil, err
	}
	if t, err = store.SortByTwoKeys(t, "section_name", "seat_number", true); err != nil {
		return nil, err
	}
	return store.Project(t, "section_name", "seat_number", "spectator_id", "spectator_name", "spectator_type")
}

func auditLog(ctx context.Context, s *core.Service) (*store.Table, error) {
	t, err := s.AuditLog(ctx)
	if err != nil {
		return nil, err
	}
	return store.Project(t, "created_at", "operator", "action", "severity", "table_key", "row_key", "column_name", "rows_affected")
}
