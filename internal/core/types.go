package core

import (
	"context"

	"github.com/JonMunkholm/esports/internal/store"
)

// FieldType represents the expected data type for a CSV field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldTime
	FieldNumeric
	FieldInteger
	FieldBool
)

// FieldSpec defines validation rules for a single CSV column.
type FieldSpec struct {
	Name       string              // Column header name (must match the file exactly)
	Type       FieldType           // Expected data type
	Required   bool                // Value must be non-empty
	EnumValues []string            // Valid values for FieldEnum type
	Normalizer func(string) string // Optional transformation applied before validation
	Hint       string              // Short input hint shown next to prompts
}

// TableInfo contains display information about a table.
type TableInfo struct {
	Key        string   // Unique identifier: "teams"
	Group      string   // Menu group: "Competition", "Audience"
	Label      string   // Display name: "Teams"
	File       string   // File name inside the data directory: "teams.csv"
	Columns    []string // Header column names, in file order
	KeyColumns []string // One or two columns identifying a record
	IDPrefix   string   // Prefix for generated IDs ("T" gives T001); empty disables generation
}

// TableDefinition contains everything needed to manage a table.
type TableDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec
}

// KeyIndexes returns the column positions of the table's key columns.
func (d TableDefinition) KeyIndexes() []int {
	idx := make([]int, 0, len(d.Info.KeyColumns))
	for _, k := range d.Info.KeyColumns {
		for i, c := range d.Info.Columns {
			if c == k {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

// Spec returns the field spec for a column, if one is defined.
func (d TableDefinition) Spec(column string) (FieldSpec, bool) {
	for _, s := range d.FieldSpecs {
		if s.Name == column {
			return s, true
		}
	}
	return FieldSpec{}, false
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// SortSpec describes an ordering on one column.
type SortSpec struct {
	Column    string
	Ascending bool
}

// ReportFunc builds a derived table from the service's tables.
type ReportFunc func(ctx context.Context, s *Service) (*store.Table, error)

// Report is a named, read-only view combining one or more tables.
type Report struct {
	Key   string
	Label string
	Run   ReportFunc
}
