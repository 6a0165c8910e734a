// Package tables registers the tournament tables and reports with the core
// registry. Import it for its side effects.
package tables

// Each file registers one group of tables from init():
//   - competition.go: teams, players, bracket
//   - results.go: matches, game stats
//   - audience.go: spectators, seat assignments
//   - reports.go: derived views
