package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/JonMunkholm/esports/internal/store"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	registerTestTables(t)
	dir := t.TempDir()
	svc := NewService(store.NewStore(dir), ServiceConfig{AuditFile: "audit.csv", AuditEnabled: true})
	return svc, dir
}

func readData(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(b)
}

func writeData(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestService_Init(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	created, err := svc.Init(ctx)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	slices.Sort(created)
	if want := []string{"gameStats", "players", "teams"}; !slices.Equal(created, want) {
		t.Errorf("Init() created = %v, want %v", created, want)
	}
	if got := readData(t, dir, "teams.csv"); got != "team_id,team_name,ranking_points,team_status\n" {
		t.Errorf("teams.csv = %q", got)
	}

	created, err = svc.Init(ctx)
	if err != nil || len(created) != 0 {
		t.Errorf("second Init() = %v, %v; want nothing created", created, err)
	}

	log, err := svc.AuditLog(ctx)
	if err != nil {
		t.Fatalf("AuditLog() error = %v", err)
	}
	if log.Len() != 3 {
		t.Errorf("audit entries = %d, want 3 table_init entries", log.Len())
	}
}

func TestService_AddGeneratesIDsAndNormalizes(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	row, err := svc.Add(ctx, "teams", []string{"", "Alpha", "1,200", "active"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if want := []string{"T001", "Alpha", "1200", "Active"}; !slices.Equal(row, want) {
		t.Errorf("Add() row = %v, want %v", row, want)
	}

	writeData(t, dir, "teams.csv", readData(t, dir, "teams.csv")+"T041,Bravo,10,Active\n")
	row, err = svc.Add(ctx, "teams", []string{"", "Charlie", "", ""})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if row[0] != "T042" {
		t.Errorf("generated id = %q, want T042", row[0])
	}

	want := "team_id,team_name,ranking_points,team_status\n" +
		"T001,Alpha,1200,Active\n" +
		"T041,Bravo,10,Active\n" +
		"T042,Charlie,,\n"
	if got := readData(t, dir, "teams.csv"); got != want {
		t.Errorf("teams.csv =\n%s\nwant\n%s", got, want)
	}
}

func TestService_AddRejects(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	writeData(t, dir, "teams.csv", "team_id,team_name,ranking_points,team_status\nT001,Alpha,5,Active\n")
	writeData(t, dir, "gameStat.csv", "match_id,in_game_name,kills\nM1,ace,3\n")

	tests := []struct {
		name   string
		table  string
		cells  []string
		target error
	}{
		{name: "duplicate key", table: "teams", cells: []string{"T001", "Other", "", ""}, target: ErrDuplicateKey},
		{name: "duplicate composite key", table: "gameStats", cells: []string{"M1", "ace", "9"}, target: ErrDuplicateKey},
		{name: "bad integer", table: "teams", cells: []string{"T002", "Bravo", "many", ""}, target: ErrValidation},
		{name: "delimiter in cell", table: "teams", cells: []string{"T002", "Bravo, Inc", "", ""}, target: ErrValidation},
		{name: "wrong width", table: "teams", cells: []string{"T002", "Bravo"}, target: store.ErrColumnCount},
		{name: "unknown table", table: "coaches", cells: nil, target: ErrUnknownTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := readData(t, dir, "teams.csv")
			_, err := svc.Add(ctx, tt.table, tt.cells)
			if !errors.Is(err, tt.target) {
				t.Fatalf("Add() error = %v, want %v", err, tt.target)
			}
			if after := readData(t, dir, "teams.csv"); after != before {
				t.Errorf("teams.csv changed on failed add:\n%s", after)
			}
		})
	}
}

func TestService_AddCompositeKeyDifferentPair(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "gameStat.csv", "match_id,in_game_name,kills\nM1,ace,3\n")

	if _, err := svc.Add(ctx, "gameStats", []string{"M2", "ace", "4"}); err != nil {
		t.Fatalf("Add(M2, ace) error = %v", err)
	}
	if _, err := svc.Add(ctx, "gameStats", []string{"M1", "blaze", "1"}); err != nil {
		t.Fatalf("Add(M1, blaze) error = %v", err)
	}
	if got := strings.Count(readData(t, dir, "gameStat.csv"), "\n"); got != 4 {
		t.Errorf("gameStat.csv lines = %d, want 4", got)
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "gameStat.csv", "match_id,in_game_name,kills\nM1,ace,3\nM1,blaze,1\nM2,ace,7\n")

	n, err := svc.Update(ctx, "gameStats", []string{"M1", "ace"}, []string{"M1", "ace", "5"})
	if err != nil || n != 1 {
		t.Fatalf("Update() = %d, %v; want 1, nil", n, err)
	}

	_, err = svc.Update(ctx, "gameStats", []string{"M1", "ace"}, []string{"M2", "ace", "5"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("Update() onto existing key error = %v, want ErrDuplicateKey", err)
	}

	_, err = svc.Update(ctx, "gameStats", []string{"M1"}, []string{"M1", "ace", "5"})
	if !errors.Is(err, ErrKeyCount) {
		t.Errorf("Update() with one key error = %v, want ErrKeyCount", err)
	}

	n, err = svc.Delete(ctx, "gameStats", "M1", "blaze")
	if err != nil || n != 1 {
		t.Fatalf("Delete() = %d, %v; want 1, nil", n, err)
	}

	_, err = svc.Delete(ctx, "gameStats", "M9", "nobody")
	if !errors.Is(err, store.ErrKeyNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrKeyNotFound", err)
	}

	want := "match_id,in_game_name,kills\nM1,ace,5\nM2,ace,7\n"
	if got := readData(t, dir, "gameStat.csv"); got != want {
		t.Errorf("gameStat.csv =\n%s\nwant\n%s", got, want)
	}
}

func TestService_Reset(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "teams.csv", "team_id,team_name,points,team_status\nT001,Alpha,7,Registered\nT002,Bravo,9,Registered\n")

	n, err := svc.Reset(ctx, "teams")
	if err != nil || n != 2 {
		t.Fatalf("Reset() = %d, %v; want 2, nil", n, err)
	}
	if got := readData(t, dir, "teams.csv"); got != "team_id,team_name,ranking_points,team_status\n" {
		t.Errorf("teams.csv = %q, want the registered header only", got)
	}

	n, err = svc.Reset(ctx, "players")
	if err != nil || n != 0 {
		t.Errorf("Reset(missing file) = %d, %v; want 0, nil", n, err)
	}

	log, err := svc.QueryAudit(ctx, AuditFilter{Action: ActionTableReset})
	if err != nil {
		t.Fatal(err)
	}
	if log.Len() != 2 {
		t.Errorf("table_reset entries = %d, want 2", log.Len())
	}
}

func TestService_UpdateField(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "teams.csv", "team_id,team_name,ranking_points,team_status\nT001,Alpha,5,Active\n")
	writeData(t, dir, "player.csv", "player_name,in_game_name,team_id\nAna,ace,T001\nBo,blaze,T001\n")

	if err := svc.UpdateField(ctx, "teams", []string{"T001"}, "team_status", "eliminated"); err != nil {
		t.Fatalf("UpdateField(teams) error = %v", err)
	}
	if err := svc.UpdateField(ctx, "players", []string{"blaze"}, "team_id", "T002"); err != nil {
		t.Fatalf("UpdateField(players) error = %v", err)
	}

	if got := readData(t, dir, "teams.csv"); got != "team_id,team_name,ranking_points,team_status\nT001,Alpha,5,Eliminated\n" {
		t.Errorf("teams.csv = %q", got)
	}
	if got := readData(t, dir, "player.csv"); got != "player_name,in_game_name,team_id\nAna,ace,T001\nBo,blaze,T002\n" {
		t.Errorf("player.csv = %q", got)
	}

	tests := []struct {
		name   string
		table  string
		key    []string
		column string
		value  string
		target error
	}{
		{name: "key column", table: "teams", key: []string{"T001"}, column: "team_id", value: "T009", target: ErrValidation},
		{name: "unknown column", table: "teams", key: []string{"T001"}, column: "coach", value: "x", target: store.ErrColumnNotFound},
		{name: "invalid value", table: "teams", key: []string{"T001"}, column: "ranking_points", value: "ten", target: ErrValidation},
		{name: "missing record", table: "teams", key: []string{"T404"}, column: "team_name", value: "x", target: store.ErrKeyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateField(ctx, tt.table, tt.key, tt.column, tt.value)
			if !errors.Is(err, tt.target) {
				t.Errorf("UpdateField() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestService_UpdateFieldDuplicateKeys(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "teams.csv", "team_id,team_name,ranking_points,team_status\nT001,Alpha,5,Active\nT001,Bravo,8,Active\n")
	writeData(t, dir, "player.csv", "player_name,in_game_name,team_id\nAlice,ace,T001\nBob,ace,T002\n")

	tests := []struct {
		name   string
		table  string
		file   string
		key    []string
		column string
		value  string
		want   string
	}{
		{
			name: "key in first column", table: "teams", file: "teams.csv",
			key: []string{"T001"}, column: "team_status", value: "eliminated",
			want: "team_id,team_name,ranking_points,team_status\nT001,Alpha,5,Eliminated\nT001,Bravo,8,Active\n",
		},
		{
			name: "key in later column", table: "players", file: "player.csv",
			key: []string{"ace"}, column: "team_id", value: "T009",
			want: "player_name,in_game_name,team_id\nAlice,ace,T009\nBob,ace,T002\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.UpdateField(ctx, tt.table, tt.key, tt.column, tt.value); err != nil {
				t.Fatalf("UpdateField() error = %v", err)
			}
			if got := readData(t, dir, tt.file); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestService_Queries(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "teams.csv", "team_id,team_name,ranking_points,team_status\nT001,Alpha,7,Active\nT002,Bravo,10,Eliminated\nT003,Charlie,9,Active\n")
	writeData(t, dir, "player.csv", "player_name,in_game_name,team_id\nAna,ace,T002\nBo,blaze,T009\n")

	sorted, err := svc.Sort(ctx, "teams", SortSpec{Column: "ranking_points"})
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	ids, _ := store.ExtractColumn(sorted, "team_id")
	if want := []string{"T002", "T003", "T001"}; !slices.Equal(ids.Values, want) {
		t.Errorf("Sort(desc) ids = %v, want %v", ids.Values, want)
	}

	active, err := svc.Search(ctx, "teams", "team_status", "Active")
	if err != nil || active.Len() != 2 {
		t.Errorf("Search() = %v rows, %v; want 2", active.Len(), err)
	}

	joined, err := svc.Join(ctx, "players", "team_id", "teams", "team_id")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if got := joined.Row(1); got[3] != store.JoinPlaceholder {
		t.Errorf("Join() unmatched row = %v, want placeholder", got)
	}

	names, err := svc.Project(ctx, "teams", "team_name")
	if err != nil || names.Width() != 1 {
		t.Errorf("Project() width = %d, %v", names.Width(), err)
	}

	rec, err := svc.Lookup(ctx, "players", "blaze")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if v, _ := rec.Get("player_name"); v != "Bo" {
		t.Errorf("Lookup() player_name = %q, want Bo", v)
	}

	if _, err := svc.Lookup(ctx, "teams", "T404"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ErrKeyNotFound", err)
	}

	col, err := svc.ColumnValues(ctx, "teams", "team_name")
	if err != nil || !slices.Equal(col.Values, []string{"Alpha", "Bravo", "Charlie"}) {
		t.Errorf("ColumnValues() = %v, %v", col, err)
	}
}

func TestService_RefusesShiftedHeader(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	content := "team_name,team_id,ranking_points,team_status\nAlpha,T001,5,Active\n"
	writeData(t, dir, "teams.csv", content)

	_, err := svc.Delete(ctx, "teams", "T001")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Delete() error = %v, want ErrValidation", err)
	}
	if got := readData(t, dir, "teams.csv"); got != content {
		t.Errorf("teams.csv changed: %q", got)
	}

	if _, err := svc.View(ctx, "teams"); err != nil {
		t.Errorf("View() error = %v, want table with a logged warning", err)
	}
}

func TestService_RunReport(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "teams.csv", "team_id,team_name,ranking_points,team_status\nT001,Alpha,5,Active\n")

	RegisterReport(Report{Key: "names", Label: "Names", Run: func(ctx context.Context, s *Service) (*store.Table, error) {
		return s.Project(ctx, "teams", "team_name")
	}})

	got, err := svc.RunReport(ctx, "names")
	if err != nil {
		t.Fatalf("RunReport() error = %v", err)
	}
	if got.Len() != 1 || got.Row(0)[0] != "Alpha" {
		t.Errorf("RunReport() rows = %v", got.Rows())
	}

	if _, err := svc.RunReport(ctx, "missing"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("RunReport(missing) error = %v, want ErrUnknownTable", err)
	}
}
