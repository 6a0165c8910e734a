package core

import (
	"context"
	"testing"

	"github.com/JonMunkholm/esports/internal/store"
)

// registerTestTables replaces the registry with a small tournament schema:
// a single-key teams table with generated IDs, a single-key player table
// whose key is not the first column, and a two-key stats table.
func registerTestTables(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{
		Info: TableInfo{
			Key: "teams", Group: "Competition", Label: "Teams", File: "teams.csv",
			KeyColumns: []string{"team_id"}, IDPrefix: "T",
		},
		FieldSpecs: []FieldSpec{
			{Name: "team_id", Type: FieldText, Required: true},
			{Name: "team_name", Type: FieldText, Required: true},
			{Name: "ranking_points", Type: FieldInteger},
			{Name: "team_status", Type: FieldEnum, EnumValues: []string{"Active", "Eliminated"}},
		},
	})
	Register(TableDefinition{
		Info: TableInfo{
			Key: "players", Group: "Competition", Label: "Players", File: "player.csv",
			KeyColumns: []string{"in_game_name"},
		},
		FieldSpecs: []FieldSpec{
			{Name: "player_name", Type: FieldText, Required: true},
			{Name: "in_game_name", Type: FieldText, Required: true},
			{Name: "team_id", Type: FieldText},
		},
	})
	Register(TableDefinition{
		Info: TableInfo{
			Key: "gameStats", Group: "Results", Label: "Game Stats", File: "gameStat.csv",
			KeyColumns: []string{"match_id", "in_game_name"},
		},
		FieldSpecs: []FieldSpec{
			{Name: "match_id", Type: FieldText, Required: true},
			{Name: "in_game_name", Type: FieldText, Required: true},
			{Name: "kills", Type: FieldInteger},
		},
	})
}

func TestRegister(t *testing.T) {
	registerTestTables(t)

	if TableCount() != 3 {
		t.Fatalf("TableCount() = %d, want 3", TableCount())
	}

	def, ok := Get("gameStats")
	if !ok {
		t.Fatal("Get(gameStats) not found")
	}
	if got := def.Info.Columns; len(got) != 3 || got[2] != "kills" {
		t.Errorf("Columns = %v, want filled from field specs", got)
	}
	if idx := def.KeyIndexes(); len(idx) != 2 || idx[0] != 0 || idx[1] != 1 {
		t.Errorf("KeyIndexes() = %v, want [0 1]", idx)
	}

	if got := Groups(); len(got) != 2 || got[0] != "Competition" || got[1] != "Results" {
		t.Errorf("Groups() = %v", got)
	}
	if got := ByGroup("Competition"); len(got) != 2 || got[0].Info.Key != "players" {
		t.Errorf("ByGroup(Competition) = %v, want players then teams", got)
	}
	if got := All(); got[len(got)-1].Info.Key != "gameStats" {
		t.Errorf("All() last = %s, want gameStats", got[len(got)-1].Info.Key)
	}
}

func TestRegister_Panics(t *testing.T) {
	tests := []struct {
		name string
		def  TableDefinition
	}{
		{
			name: "duplicate key",
			def: TableDefinition{
				Info:       TableInfo{Key: "teams", File: "other.csv", KeyColumns: []string{"a"}},
				FieldSpecs: []FieldSpec{{Name: "a"}},
			},
		},
		{
			name: "no file",
			def: TableDefinition{
				Info:       TableInfo{Key: "x", KeyColumns: []string{"a"}},
				FieldSpecs: []FieldSpec{{Name: "a"}},
			},
		},
		{
			name: "three keys",
			def: TableDefinition{
				Info:       TableInfo{Key: "x", File: "x.csv", KeyColumns: []string{"a", "b", "c"}},
				FieldSpecs: []FieldSpec{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			},
		},
		{
			name: "key not in header",
			def: TableDefinition{
				Info:       TableInfo{Key: "x", File: "x.csv", KeyColumns: []string{"z"}},
				FieldSpecs: []FieldSpec{{Name: "a"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registerTestTables(t)
			defer func() {
				if recover() == nil {
					t.Error("Register() did not panic")
				}
			}()
			Register(tt.def)
		})
	}
}

func TestRegisterReport(t *testing.T) {
	registerTestTables(t)

	run := func(context.Context, *Service) (*store.Table, error) { return store.New(nil), nil }
	RegisterReport(Report{Key: "b", Label: "B", Run: run})
	RegisterReport(Report{Key: "a", Label: "A", Run: run})

	got := Reports()
	if len(got) != 2 || got[0].Key != "b" || got[1].Key != "a" {
		t.Errorf("Reports() = %v, want registration order", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("RegisterReport(duplicate) did not panic")
		}
	}()
	RegisterReport(Report{Key: "a", Run: run})
}
