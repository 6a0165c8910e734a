package tables

import "github.com/JonMunkholm/esports/internal/core"

func init() {
	registerMatches()
	registerGameStats()
}

var matchStatuses = []string{"Scheduled", "Ongoing", "Completed", "Cancelled"}

func registerMatches() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:        "matches",
			Group:      "Results",
			Label:      "Matches",
			File:       "matches.csv",
			KeyColumns: []string{"match_id"},
			IDPrefix:   "M",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "match_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID, Hint: "blank for next id"},
			{Name: "scheduled_date", Type: core.FieldDate, Hint: "YYYY-MM-DD"},
			{Name: "scheduled_time", Type: core.FieldTime, Hint: "HH:MM"},
			{Name: "match_round_number", Type: core.FieldInteger},
			{Name: "actual_start_time", Type: core.FieldTime, Hint: "HH:MM"},
			{Name: "actual_end_time", Type: core.FieldTime, Hint: "HH:MM"},
			{Name: "team1_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "team2_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "winner_team_id", Type: core.FieldText, Normalizer: NormalizeID},
			{Name: "team1_score", Type: core.FieldInteger},
			{Name: "team2_score", Type: core.FieldInteger},
			{Name: "match_status", Type: core.FieldEnum, Required: true, EnumValues: matchStatuses},
			// Last column, so it may hold commas.
			{Name: "match_level", Type: core.FieldText, Hint: "Upper Bracket R1, Final"},
		},
	})
}

func registerGameStats() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:        "gameStats",
			Group:      "Results",
			Label:      "Game Stats",
			File:       "gameStat.csv",
			KeyColumns: []string{"match_id", "in_game_name"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "match_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "in_game_name", Type: core.FieldText, Required: true, Normalizer: NormalizeHandle},
			{Name: "hero_played", Type: core.FieldText},
			{Name: "kills", Type: core.FieldInteger},
			{Name: "deaths", Type: core.FieldInteger},
			{Name: "assists", Type: core.FieldInteger},
			{Name: "gpm", Type: core.FieldNumeric, Hint: "gold per minute"},
			{Name: "xpm", Type: core.FieldNumeric, Hint: "experience per minute"},
		},
	})
}
