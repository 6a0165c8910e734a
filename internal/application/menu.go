package application

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/esports/internal/admin"
	"github.com/JonMunkholm/esports/internal/core"
)

const (
	backLabel = "Back"
	exitLabel = "Exit"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  *Action
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

// Labels returns the item labels in display order.
func (m *Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, item := range m.Items {
		labels[i] = item.Label
	}
	return labels
}

// Path returns the titles from the root down to m.
func (m *Menu) Path() []string {
	if m.Parent == nil {
		return []string{m.Title}
	}
	return append(m.Parent.Path(), m.Title)
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == backLabel {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(svc *core.Service) *Menu {

	/* Submenus */
	setup := &Menu{
		Title: "Setup",
		Items: []MenuItem{
			{Label: "Initialise Data Files", Action: initAction(svc)},
			{Label: "Show Data Directory", Action: dataDirAction(svc)},
			{Label: backLabel},
		},
	}

	/* Root Menu */
	root := &Menu{
		Title: "Main Menu",
		Items: []MenuItem{
			{Label: "Tables ->", Submenu: loadTables(svc)},
			{Label: "Reports ->", Submenu: loadReports(svc)},
			{Label: "Audit ->", Submenu: loadAudit(svc)},
			{Label: "Setup ->", Submenu: setup},
			{Label: "Reset ->", Submenu: loadReset(svc)},
			{Label: exitLabel},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadTables(svc *core.Service) *Menu {
	menu := &Menu{Title: "Tables"}
	for _, group := range core.Groups() {
		sub := &Menu{Title: group}
		for _, def := range core.ByGroup(group) {
			sub.Items = append(sub.Items, MenuItem{
				Label:   def.Info.Label + " ->",
				Submenu: loadTableMenu(svc, def),
			})
		}
		sub.Items = append(sub.Items, MenuItem{Label: backLabel})
		menu.Items = append(menu.Items, MenuItem{Label: group + " ->", Submenu: sub})
	}
	menu.Items = append(menu.Items, MenuItem{Label: backLabel})
	return menu
}

func loadTableMenu(svc *core.Service, def core.TableDefinition) *Menu {
	return &Menu{
		Title: def.Info.Label,
		Items: []MenuItem{
			{Label: "View All", Action: viewAction(svc, def)},
			{Label: "Search", Action: searchAction(svc, def)},
			{Label: "Search (two fields)", Action: searchTwoAction(svc, def)},
			{Label: "Sort", Action: sortAction(svc, def)},
			{Label: "Sort (two keys)", Action: sortTwoAction(svc, def)},
			{Label: "Select Columns", Action: projectAction(svc, def)},
			{Label: "Column Values", Action: columnValuesAction(svc, def)},
			{Label: "Lookup", Action: lookupAction(svc, def)},
			{Label: "Add", Action: addAction(svc, def)},
			{Label: "Update", Action: updateAction(svc, def)},
			{Label: "Update Field", Action: updateFieldAction(svc, def)},
			{Label: "Delete", Action: deleteAction(svc, def)},
			{Label: "History", Action: historyAction(svc, def)},
			{Label: "Import File", Action: importAction(svc, def)},
			{Label: backLabel},
		},
	}
}

func loadReports(svc *core.Service) *Menu {
	menu := &Menu{Title: "Reports"}
	for _, r := range svc.Reports() {
		menu.Items = append(menu.Items, MenuItem{Label: r.Label, Action: reportAction(svc, r)})
	}
	menu.Items = append(menu.Items,
		MenuItem{Label: "Join Two Tables", Action: joinAction(svc)},
		MenuItem{Label: backLabel},
	)
	return menu
}

func loadAudit(svc *core.Service) *Menu {
	return &Menu{
		Title: "Audit",
		Items: []MenuItem{
			{Label: "Recent Changes", Action: auditAction(svc)},
			{Label: "Filter Changes", Action: auditFilterAction(svc)},
			{Label: backLabel},
		},
	}
}

func loadReset(svc *core.Service) *Menu {
	r := &admin.Resetter{Service: svc}

	return &Menu{
		Title: "Reset",
		Items: []MenuItem{
			{Label: "Reset Table", Action: &Action{
				Fields:  []Field{{Label: "table", Validate: tableValidator}},
				Confirm: "Remove every row from this table?",
				Run: func(ctx context.Context, in []string) (Output, error) {
					n, err := r.ResetTable(ctx, in[0])
					return resetOutput(in[0], n), err
				},
			}},
			{Label: "Reset Group", Action: &Action{
				Fields: []Field{{
					Label: "group",
					Hint:  strings.Join(core.Groups(), ", "),
					Validate: func(s string) error {
						if !slices.Contains(core.Groups(), s) {
							return fmt.Errorf("unknown group %q", s)
						}
						return nil
					},
				}},
				Confirm: "Remove every row from every table in this group?",
				Run: func(ctx context.Context, in []string) (Output, error) {
					n, err := r.ResetGroup(ctx, in[0])
					return resetOutput(in[0], n), err
				},
			}},
			{Label: "Reset All", Action: &Action{
				Confirm: "Remove every row from every table?",
				Run: func(ctx context.Context, _ []string) (Output, error) {
					n, err := r.ResetAll(ctx)
					return resetOutput("all tables", n), err
				},
			}},
			{Label: backLabel},
		},
	}
}

func resetOutput(target string, rows int) Output {
	return Output{Message: fmt.Sprintf("Reset %s, %d row(s) removed", target, rows)}
}
