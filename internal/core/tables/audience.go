package tables

import "github.com/JonMunkholm/esports/internal/core"

func init() {
	registerSpectators()
	registerSeats()
}

var spectatorTypes = []string{"VIP", "Normal", "Streamer"}

func registerSpectators() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:        "spectators",
			Group:      "Audience",
			Label:      "Spectators",
			File:       "spectators.csv",
			KeyColumns: []string{"spectator_id"},
			IDPrefix:   "S",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "spectator_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID, Hint: "blank for next id"},
			{Name: "spectator_name", Type: core.FieldText, Required: true},
			{Name: "spectator_type", Type: core.FieldEnum, Required: true, EnumValues: spectatorTypes},
			{Name: "check_in", Type: core.FieldTime, Hint: "arrival, HH:MM"},
		},
	})
}

func registerSeats() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:        "seats",
			Group:      "Audience",
			Label:      "Seat Assignments",
			File:       "seatAssignment.csv",
			KeyColumns: []string{"spectator_id"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "spectator_id", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "section_name", Type: core.FieldText, Required: true, Hint: "VIP, Normal, Streamer"},
			{Name: "seat_number", Type: core.FieldInteger, Required: true},
		},
	})
}
