package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestService_Import(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "teams.csv", "team_id,team_name,ranking_points,team_status\nT007,Alpha,5,Active\n")

	input := strings.Join([]string{
		"Team_Name,team_id,ranking_points,coach",
		"Bravo,T008,12,Kim",
		"Charlie,,3,Lee",
		"Delta,T007,1,Ng",
		"Echo,T008,2,Ng",
		"Foxtrot,T015,lots,Ng",
		"Golf,,,",
	}, "\n")

	result, err := svc.Import(ctx, "teams", strings.NewReader(input), ImportOptions{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if result.TotalRows != 6 || result.Inserted != 3 {
		t.Errorf("Import() rows = %d inserted = %d, want 6 and 3", result.TotalRows, result.Inserted)
	}
	if result.Existing != 1 || result.DuplicateInFile != 1 || result.ErrorRows != 1 {
		t.Errorf("Import() existing=%d repeated=%d invalid=%d, want 1 each",
			result.Existing, result.DuplicateInFile, result.ErrorRows)
	}
	if result.Skipped() != 3 || len(result.Failures) != 3 {
		t.Errorf("Skipped() = %d, failures = %v", result.Skipped(), result.Failures)
	}
	if f := result.Failures[2]; f.Row != 5 || f.RowKey != "T015" {
		t.Errorf("failure = %+v, want row 5 key T015", f)
	}

	want := "team_id,team_name,ranking_points,team_status\n" +
		"T007,Alpha,5,Active\n" +
		"T008,Bravo,12,\n" +
		"T016,Charlie,3,\n" +
		"T017,Golf,,\n"
	if got := readData(t, dir, "teams.csv"); got != want {
		t.Errorf("teams.csv =\n%s\nwant\n%s", got, want)
	}

	entries, err := svc.QueryAudit(ctx, AuditFilter{Action: ActionImport})
	if err != nil {
		t.Fatal(err)
	}
	if entries.Len() != 1 {
		t.Errorf("import audit entries = %d, want 1", entries.Len())
	}
}

func TestService_ImportWritesRejectedRows(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "teams.csv", "team_id,team_name,ranking_points,team_status\nT007,Alpha,5,Active\n")

	input := "Team_Name,team_id,ranking_points,coach\nBravo,T008,12,Kim\nDelta,T007,1,Ng\nFoxtrot,T015,lots,Ng\n"
	result, err := svc.Import(ctx, "teams", strings.NewReader(input), ImportOptions{FailedFile: filepath.Join(dir, "teams - failed.csv")})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.FailedFile == "" {
		t.Fatal("FailedFile not reported")
	}

	lines := strings.Split(strings.TrimSuffix(readData(t, dir, "teams - failed.csv"), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("rejected file has %d lines, want 3:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if lines[0] != "Team_Name,team_id,ranking_points,coach,error" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Delta,T007,1,Ng,key already exists in teams.csv" {
		t.Errorf("existing row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Foxtrot,T015,lots,Ng,") {
		t.Errorf("invalid row = %q", lines[2])
	}

	_, err = svc.Import(ctx, "teams", strings.NewReader(input), ImportOptions{DryRun: true, FailedFile: filepath.Join(dir, "dry.csv")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dry.csv")); !os.IsNotExist(err) {
		t.Errorf("dry run wrote a rejected file: %v", err)
	}
}

func TestService_ImportDryRun(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Import(ctx, "gameStats", strings.NewReader("match_id,in_game_name,kills\nM1,ace,3\nM1,ace,4\n"), ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Inserted != 1 || result.DuplicateInFile != 1 {
		t.Errorf("Import() inserted=%d repeated=%d, want 1 and 1", result.Inserted, result.DuplicateInFile)
	}
	if _, err := svc.View(ctx, "gameStats"); !isNotExist(err) {
		t.Errorf("dry run created gameStat.csv (View error = %v)", err)
	}
}

func TestService_ImportMissingColumns(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Import(context.Background(), "gameStats", strings.NewReader("match_id,kills\nM1,3\n"), ImportOptions{})
	if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "in_game_name") {
		t.Errorf("Import() error = %v, want missing in_game_name", err)
	}
}

func TestService_History(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()
	writeData(t, dir, "gameStat.csv", "match_id,in_game_name,kills\nM1,ace,3\nM2,ace,1\n")

	if _, err := svc.Update(ctx, "gameStats", []string{"M1", "ace"}, []string{"M1", "ace", "4"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateField(ctx, "gameStats", []string{"M1", "ace"}, "kills", "6"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Delete(ctx, "gameStats", "M2", "ace"); err != nil {
		t.Fatal(err)
	}

	h, err := svc.History(ctx, "gameStats", "M1", "ace")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if h.Len() != 2 {
		t.Fatalf("History() = %d entries, want 2", h.Len())
	}
	if action, _ := h.Cell(0, "action"); action != string(ActionFieldUpdate) {
		t.Errorf("newest action = %q, want field_update", action)
	}
	if v, _ := h.Cell(0, "old_value"); v != "4" {
		t.Errorf("old_value = %q, want 4", v)
	}

	limited, err := svc.QueryAudit(ctx, AuditFilter{TableKey: "gameStats", Limit: 1})
	if err != nil || limited.Len() != 1 {
		t.Errorf("QueryAudit(limit 1) = %v rows, %v", limited.Len(), err)
	}

	if _, err := svc.History(ctx, "gameStats", "M1"); !errors.Is(err, ErrKeyCount) {
		t.Errorf("History(one key) error = %v, want ErrKeyCount", err)
	}
}
