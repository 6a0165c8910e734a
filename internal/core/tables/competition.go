package tables

import "github.com/JonMunkholm/esports/internal/core"

func init() {
	registerTeams()
	registerPlayers()
	registerBracket()
}

var (
	teamTypes         = []string{"EarlyBird", "Standard", "WildCard"}
	teamStatuses      = []string{"Registered", "WaitingList", "Withdraw", "Eliminated", "Disqualified"}
	checkInStatuses   = []string{"Pending", "CheckedIn", "Absent"}
	playerRoles       = []string{"Main", "Sub"}
	eligibilityStates = []string{"Eligible", "Standby", "Withdrawn"}
	bracketNames      = []string{"upper_bracket", "lower_bracket", "disqualified"}
)

func registerTeams() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:        "teams",
			Group:      "Competition",
			Label:      "Teams",
			File:       "teams.csv",
			KeyColumns: []string{"team_id"},
			IDPrefix:   "T",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "team_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID, Hint: "blank for next id"},
			{Name: "team_name", Type: core.FieldText, Required: true},
			{Name: "university", Type: core.FieldText},
			{Name: "country", Type: core.FieldText, Normalizer: NormalizeCountry},
			{Name: "team_type", Type: core.FieldEnum, Required: true, EnumValues: teamTypes},
			{Name: "registration_date", Type: core.FieldDate, Hint: "YYYY-MM-DD"},
			{Name: "registration_time", Type: core.FieldTime, Hint: "HH:MM"},
			{Name: "ranking_points", Type: core.FieldInteger},
			{Name: "team_status", Type: core.FieldEnum, EnumValues: teamStatuses},
			{Name: "checked_in_time", Type: core.FieldTime, Hint: "HH:MM"},
			{Name: "check_in_status", Type: core.FieldEnum, EnumValues: checkInStatuses},
		},
	})
}

func registerPlayers() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:        "players",
			Group:      "Competition",
			Label:      "Players",
			File:       "player.csv",
			KeyColumns: []string{"player_id"},
			IDPrefix:   "P",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "player_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID, Hint: "blank for next id"},
			{Name: "player_name", Type: core.FieldText, Required: true},
			{Name: "team_id", Type: core.FieldText, Normalizer: NormalizeID},
			{Name: "role", Type: core.FieldEnum, EnumValues: playerRoles},
			{Name: "university", Type: core.FieldText},
			{Name: "country", Type: core.FieldText, Normalizer: NormalizeCountry},
			{Name: "in_game_name", Type: core.FieldText, Required: true, Normalizer: NormalizeHandle},
			{Name: "email", Type: core.FieldText, Normalizer: NormalizeEmail},
			{Name: "ranking_points", Type: core.FieldInteger},
			{Name: "player_status", Type: core.FieldEnum, EnumValues: checkInStatuses},
			{Name: "eligibility_status", Type: core.FieldEnum, EnumValues: eligibilityStates},
			{Name: "checked_in_time", Type: core.FieldTime, Hint: "HH:MM"},
		},
	})
}

func registerBracket() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:        "bracket",
			Group:      "Competition",
			Label:      "Tournament Bracket",
			File:       "tournament_bracket.csv",
			KeyColumns: []string{"team_id"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "team_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "position", Type: core.FieldText, Required: true, Hint: "UB-R1-M1-S1, Eliminated"},
			{Name: "bracket", Type: core.FieldEnum, EnumValues: bracketNames},
		},
	})
}
