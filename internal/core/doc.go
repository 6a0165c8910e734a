// Package core provides the business logic for tournament record management.
//
// This package holds every domain rule independent of any UI. The terminal
// menu and the plain line-mode console both drive the same [Service], and
// tests can use it with nothing but a temporary directory.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Table Definitions: Registered via the registry, each table has a file,
//     key columns and field specs.
//   - Service: The main entry point for all operations (view, search, sort,
//     add, update, delete).
//   - Reports: Named read-only views that combine tables with the algebra in
//     package store.
//   - Audit: A CSV log of every change, stored next to the tables.
//
// # Table Registry
//
// Tables are registered at init time using [Register]. Each [TableDefinition]
// describes one file in the data directory:
//
//	core.Register(TableDefinition{
//	    Info: TableInfo{Key: "teams", Group: "Competition", Label: "Teams",
//	        File: "teams.csv", KeyColumns: []string{"team_id"}, IDPrefix: "T"},
//	    FieldSpecs: []FieldSpec{
//	        {Name: "team_id", Required: true, Type: FieldText},
//	        {Name: "ranking_points", Type: FieldInteger},
//	    },
//	})
//
// # Writes
//
// Every mutation reloads the file, checks that its header still lines up
// with the definition, and rewrites or appends through the store. Values
// are normalized first (dates to YYYY-MM-DD, times to HH:MM, numbers
// without separators) and rejected if the unquoted file format could not
// read them back.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE, LOAD, WRITE: data file problems
//   - KEY, ROW, COL: record and column problems
//   - VAL: rejected values
//   - TBL: unknown tables or reports
//
// # Audit Logging
//
// All data modifications are recorded in the audit log with severity levels:
//
//   - Low: Table initialization
//   - Medium: Record adds and edits
//   - High: Single record deletions
//   - Critical: Deletions removing more than one record
package core
