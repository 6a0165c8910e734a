package tables

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/JonMunkholm/esports/internal/core"
	"github.com/JonMunkholm/esports/internal/store"
)

func TestRegisteredTables(t *testing.T) {
	tests := []struct {
		key     string
		file    string
		columns string
		keys    []string
	}{
		{"teams", "teams.csv", "team_id,team_name,university,country,team_type,registration_date,registration_time,ranking_points,team_status,checked_in_time,check_in_status", []string{"team_id"}},
		{"players", "player.csv", "player_id,player_name,team_id,role,university,country,in_game_name,email,ranking_points,player_status,eligibility_status,checked_in_time", []string{"player_id"}},
		{"matches", "matches.csv", "match_id,scheduled_date,scheduled_time,match_round_number,actual_start_time,actual_end_time,team1_id,team2_id,winner_team_id,team1_score,team2_score,match_status,match_level", []string{"match_id"}},
		{"bracket", "tournament_bracket.csv", "team_id,position,bracket", []string{"team_id"}},
		{"gameStats", "gameStat.csv", "match_id,in_game_name,hero_played,kills,deaths,assists,gpm,xpm", []string{"match_id", "in_game_name"}},
		{"spectators", "spectators.csv", "spectator_id,spectator_name,spectator_type,check_in", []string{"spectator_id"}},
		{"seats", "seatAssignment.csv", "spectator_id,section_name,seat_number", []string{"spectator_id"}},
	}

	if core.TableCount() != len(tests) {
		t.Errorf("TableCount() = %d, want %d", core.TableCount(), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			def, ok := core.Get(tt.key)
			if !ok {
				t.Fatalf("table %s not registered", tt.key)
			}
			if def.Info.File != tt.file {
				t.Errorf("File = %q, want %q", def.Info.File, tt.file)
			}
			if got := strings.Join(def.Info.Columns, ","); got != tt.columns {
				t.Errorf("Columns = %s\nwant %s", got, tt.columns)
			}
			if !slices.Equal(def.Info.KeyColumns, tt.keys) {
				t.Errorf("KeyColumns = %v, want %v", def.Info.KeyColumns, tt.keys)
			}
		})
	}
}

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"country code", NormalizeCountry, " my ", "Malaysia"},
		{"country name", NormalizeCountry, "SOUTH KOREA", "South Korea"},
		{"unknown country", NormalizeCountry, " Atlantis ", "Atlantis"},
		{"id", NormalizeID, " t001", "T001"},
		{"email", NormalizeEmail, "Ana@Uni.EDU ", "ana@uni.edu"},
		{"handle", NormalizeHandle, "  dark   knight ", "dark knight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func newTournament(t *testing.T, files map[string]string) *core.Service {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return core.NewService(store.NewStore(dir), core.ServiceConfig{AuditFile: "audit.csv", AuditEnabled: true})
}

const teamsCSV = "team_id,team_name,university,country,team_type,registration_date,registration_time,ranking_points,team_status,checked_in_time,check_in_status\n" +
	"T001,Alpha,APU,Malaysia,EarlyBird,2024-03-01,09:00,7,Registered,08:50,CheckedIn\n" +
	"T002,Bravo,UM,Malaysia,Standard,2024-03-01,08:30,10,Registered,08:40,CheckedIn\n" +
	"T003,Charlie,NUS,Singapore,WildCard,2024-02-28,12:00,9,WaitingList,,Pending\n"

const matchesCSV = "match_id,scheduled_date,scheduled_time,match_round_number,actual_start_time,actual_end_time,team1_id,team2_id,winner_team_id,team1_score,team2_score,match_status,match_level\n" +
	"M002,2024-03-06,10:00,1,,,T003,T001,,,,Scheduled,Upper Bracket R1\n" +
	"M001,2024-03-05,18:00,1,18:05,19:10,T001,T002,T002,1,2,Completed,Upper Bracket R1, Game 1\n"

func TestReport_MatchResults(t *testing.T) {
	svc := newTournament(t, map[string]string{"teams.csv": teamsCSV, "matches.csv": matchesCSV})

	got, err := svc.RunReport(context.Background(), "match_results")
	if err != nil {
		t.Fatalf("RunReport() error = %v", err)
	}
	want := []string{"match_id", "scheduled_date", "scheduled_time", "match_level", "team1_name", "team1_score", "team2_score", "team2_name", "winner_name", "match_status"}
	if !slices.Equal(got.Columns(), want) {
		t.Errorf("Columns() = %v", got.Columns())
	}
	if row := got.Row(0); row[4] != "Charlie" || row[7] != "Alpha" || row[8] != store.JoinPlaceholder {
		t.Errorf("scheduled match row = %v", row)
	}
	if row := got.Row(1); row[3] != "Upper Bracket R1, Game 1" || row[8] != "Bravo" {
		t.Errorf("completed match row = %v", row)
	}
}

func TestReport_CompletedMatches(t *testing.T) {
	svc := newTournament(t, map[string]string{"teams.csv": teamsCSV, "matches.csv": matchesCSV})

	got, err := svc.RunReport(context.Background(), "completed_matches")
	if err != nil {
		t.Fatalf("RunReport() error = %v", err)
	}
	if got.Len() != 1 || got.Row(0)[0] != "M001" {
		t.Errorf("completed matches = %v", got.Rows())
	}
}

func TestReport_TeamRankingAndEligibility(t *testing.T) {
	svc := newTournament(t, map[string]string{"teams.csv": teamsCSV})
	ctx := context.Background()

	ranking, err := svc.RunReport(ctx, "team_ranking")
	if err != nil {
		t.Fatalf("team_ranking error = %v", err)
	}
	ids, _ := store.ExtractColumn(ranking, "team_id")
	if !slices.Equal(ids.Values, []string{"T002", "T003", "T001"}) {
		t.Errorf("team_ranking order = %v", ids.Values)
	}

	eligible, err := svc.RunReport(ctx, "final_eligible")
	if err != nil {
		t.Fatalf("final_eligible error = %v", err)
	}
	ids, _ = store.ExtractColumn(eligible, "team_id")
	if !slices.Equal(ids.Values, []string{"T002", "T001"}) {
		t.Errorf("final_eligible order = %v, want earliest registration first", ids.Values)
	}
}

func TestReport_Seating(t *testing.T) {
	svc := newTournament(t, map[string]string{
		"spectators.csv":     "spectator_id,spectator_name,spectator_type,check_in\nS001,Ana,VIP,09:00\nS002,Bo,Normal,09:05\n",
		"seatAssignment.csv": "spectator_id,section_name,seat_number\nS002,Normal,10\nS001,VIP,2\nS009,Normal,9\n",
	})

	got, err := svc.RunReport(context.Background(), "seating")
	if err != nil {
		t.Fatalf("RunReport() error = %v", err)
	}
	names, _ := store.ExtractColumn(got, "spectator_name")
	if !slices.Equal(names.Values, []string{"-", "Bo", "Ana"}) {
		t.Errorf("seating names = %v", names.Values)
	}
}

func TestAddTeamEndToEnd(t *testing.T) {
	svc := newTournament(t, nil)
	ctx := context.Background()

	if _, err := svc.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	row, err := svc.Add(ctx, "teams", []string{"", "Delta", "Taylor's", "sg", "wildcard", "1/3/2024", "7:15 pm", "1,500", "waitinglist", "", "pending"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	want := []string{"T001", "Delta", "Taylor's", "Singapore", "WildCard", "2024-01-03", "19:15", "1500", "WaitingList", "", "Pending"}
	if !slices.Equal(row, want) {
		t.Errorf("Add() row = %v\nwant %v", row, want)
	}

	if err := svc.UpdateField(ctx, "teams", []string{"t001"}, "check_in_status", "checkedin"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	rec, err := svc.Lookup(ctx, "teams", "T001")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := rec.Get("check_in_status"); v != "CheckedIn" {
		t.Errorf("check_in_status = %q, want CheckedIn", v)
	}
}
