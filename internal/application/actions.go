package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/JonMunkholm/esports/internal/console"
	"github.com/JonMunkholm/esports/internal/core"
	"github.com/JonMunkholm/esports/internal/store"
)

// Field is one value an action asks for before it runs.
type Field struct {
	Label    string
	Hint     string
	Optional bool
	Validate func(string) error
}

// check applies the field's rules to a trimmed value.
func (f Field) check(v string) error {
	if v == "" {
		if f.Optional {
			return nil
		}
		return console.ErrEmptyInput
	}
	if f.Validate != nil {
		return f.Validate(v)
	}
	return nil
}

// Prompt is the label shown next to the input.
func (f Field) Prompt() string {
	p := f.Label
	if f.Hint != "" {
		p += " (" + f.Hint + ")"
	}
	if f.Optional {
		p += " [optional]"
	}
	return p
}

// Output is what a completed action shows.
type Output struct {
	Title   string
	Message string
	Table   *store.Table
}

// Action is a menu leaf. Fields are collected first, Confirm (when set) is
// asked last, then Run receives the trimmed values in field order.
type Action struct {
	Fields  []Field
	Confirm string
	Run     func(ctx context.Context, in []string) (Output, error)
}

/* ----------------------------------------
	FIELD BUILDERS
---------------------------------------- */

func columnField(def core.TableDefinition, label string) Field {
	return Field{
		Label:    label,
		Hint:     "column name",
		Validate: columnValidator(def.Info.Columns),
	}
}

func columnValidator(columns []string) func(string) error {
	return func(s string) error {
		if slices.Contains(columns, s) {
			return nil
		}
		return fmt.Errorf("unknown column %q, expected one of %s", s, strings.Join(columns, ", "))
	}
}

func tableValidator(s string) error {
	if _, ok := core.Get(s); ok {
		return nil
	}
	var keys []string
	for _, def := range core.All() {
		keys = append(keys, def.Info.Key)
	}
	return fmt.Errorf("unknown table %q, expected one of %s", s, strings.Join(keys, ", "))
}

func orderField() Field {
	return Field{
		Label:    "order",
		Hint:     "asc or desc",
		Optional: true,
		Validate: func(s string) error {
			switch strings.ToLower(s) {
			case "asc", "desc":
				return nil
			}
			return fmt.Errorf("order %q is not asc or desc", s)
		},
	}
}

func ascending(order string) bool {
	return !strings.EqualFold(order, "desc")
}

func keyFields(def core.TableDefinition, prefix string) []Field {
	fields := make([]Field, 0, len(def.Info.KeyColumns))
	for _, col := range def.Info.KeyColumns {
		fields = append(fields, Field{Label: strings.TrimSpace(prefix + " " + col)})
	}
	return fields
}

// rowFields asks for every column of def. With generateID the key may be
// left blank.
func rowFields(def core.TableDefinition, generateID bool) []Field {
	fields := make([]Field, 0, len(def.FieldSpecs))
	for _, spec := range def.FieldSpecs {
		f := Field{Label: spec.Name, Hint: spec.Hint, Optional: !spec.Required}
		switch spec.Type {
		case core.FieldEnum:
			f.Hint = strings.Join(spec.EnumValues, ", ")
		case core.FieldBool:
			f.Hint = "true or false"
		}
		if generateID && def.Info.IDPrefix != "" && len(def.Info.KeyColumns) > 0 && spec.Name == def.Info.KeyColumns[0] {
			f.Optional = true
		}
		fields = append(fields, f)
	}
	return fields
}

func limitField() Field {
	return Field{
		Label:    "limit",
		Hint:     "max entries",
		Optional: true,
		Validate: func(s string) error {
			if err := console.ValidateInt(s); err != nil {
				return err
			}
			if n, _ := strconv.Atoi(s); n < 0 {
				return fmt.Errorf("limit must not be negative")
			}
			return nil
		},
	}
}

/* ----------------------------------------
	TABLE ACTIONS
---------------------------------------- */

func tableOutput(title string, t *store.Table) Output {
	return Output{Title: title, Table: t}
}

func viewAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Run: func(ctx context.Context, _ []string) (Output, error) {
			t, err := svc.View(ctx, def.Info.Key)
			if err != nil {
				return Output{}, err
			}
			return tableOutput(def.Info.Label, t), nil
		},
	}
}

func searchAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: []Field{columnField(def, "column"), {Label: "value"}},
		Run: func(ctx context.Context, in []string) (Output, error) {
			t, err := svc.Search(ctx, def.Info.Key, in[0], in[1])
			if err != nil {
				return Output{}, err
			}
			return tableOutput(fmt.Sprintf("%s where %s = %s", def.Info.Label, in[0], in[1]), t), nil
		},
	}
}

func searchTwoAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: []Field{
			columnField(def, "first column"), {Label: "first value"},
			columnField(def, "second column"), {Label: "second value"},
		},
		Run: func(ctx context.Context, in []string) (Output, error) {
			t, err := svc.SearchTwo(ctx, def.Info.Key, in[0], in[1], in[2], in[3])
			if err != nil {
				return Output{}, err
			}
			title := fmt.Sprintf("%s where %s = %s and %s = %s", def.Info.Label, in[0], in[1], in[2], in[3])
			return tableOutput(title, t), nil
		},
	}
}

func sortAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: []Field{columnField(def, "sort by"), orderField()},
		Run: func(ctx context.Context, in []string) (Output, error) {
			t, err := svc.Sort(ctx, def.Info.Key, core.SortSpec{Column: in[0], Ascending: ascending(in[1])})
			if err != nil {
				return Output{}, err
			}
			return tableOutput(fmt.Sprintf("%s by %s", def.Info.Label, in[0]), t), nil
		},
	}
}

func sortTwoAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: []Field{columnField(def, "primary"), columnField(def, "secondary"), orderField()},
		Run: func(ctx context.Context, in []string) (Output, error) {
			t, err := svc.SortTwo(ctx, def.Info.Key, in[0], in[1], ascending(in[2]))
			if err != nil {
				return Output{}, err
			}
			return tableOutput(fmt.Sprintf("%s by %s, %s", def.Info.Label, in[0], in[1]), t), nil
		},
	}
}

func projectAction(svc *core.Service, def core.TableDefinition) *Action {
	validate := columnValidator(def.Info.Columns)
	return &Action{
		Fields: []Field{{
			Label: "columns",
			Hint:  "comma separated",
			Validate: func(s string) error {
				for _, c := range splitList(s) {
					if err := validate(c); err != nil {
						return err
					}
				}
				return nil
			},
		}},
		Run: func(ctx context.Context, in []string) (Output, error) {
			t, err := svc.Project(ctx, def.Info.Key, splitList(in[0])...)
			if err != nil {
				return Output{}, err
			}
			return tableOutput(def.Info.Label, t), nil
		},
	}
}

func columnValuesAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: []Field{columnField(def, "column")},
		Run: func(ctx context.Context, in []string) (Output, error) {
			col, err := svc.ColumnValues(ctx, def.Info.Key, in[0])
			if err != nil {
				return Output{}, err
			}
			rows := make([][]string, len(col.Values))
			for i, v := range col.Values {
				rows[i] = []string{v}
			}
			return tableOutput(def.Info.Label+" "+col.Name, store.New([]string{col.Name}, rows...)), nil
		},
	}
}

func lookupAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: keyFields(def, ""),
		Run: func(ctx context.Context, in []string) (Output, error) {
			rec, err := svc.Lookup(ctx, def.Info.Key, in...)
			if err != nil {
				return Output{}, err
			}
			return tableOutput(def.Info.Label+" "+strings.Join(in, "/"), store.New(rec.Columns, rec.Values)), nil
		},
	}
}

func addAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: rowFields(def, true),
		Run: func(ctx context.Context, in []string) (Output, error) {
			row, err := svc.Add(ctx, def.Info.Key, in)
			if err != nil {
				return Output{}, err
			}
			return Output{
				Title:   def.Info.Label,
				Message: "Record added",
				Table:   store.New(def.Info.Columns, row),
			}, nil
		},
	}
}

func updateAction(svc *core.Service, def core.TableDefinition) *Action {
	keys := keyFields(def, "current")
	return &Action{
		Fields: append(keys, rowFields(def, false)...),
		Run: func(ctx context.Context, in []string) (Output, error) {
			n, err := svc.Update(ctx, def.Info.Key, in[:len(keys)], in[len(keys):])
			if err != nil {
				return Output{}, err
			}
			return Output{Message: fmt.Sprintf("%d record(s) updated", n)}, nil
		},
	}
}

func updateFieldAction(svc *core.Service, def core.TableDefinition) *Action {
	keys := keyFields(def, "")
	fields := append(keys, columnField(def, "column"), Field{Label: "new value", Optional: true})
	return &Action{
		Fields: fields,
		Run: func(ctx context.Context, in []string) (Output, error) {
			n := len(keys)
			if err := svc.UpdateField(ctx, def.Info.Key, in[:n], in[n], in[n+1]); err != nil {
				return Output{}, err
			}
			return Output{Message: fmt.Sprintf("%s updated", in[n])}, nil
		},
	}
}

func deleteAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields:  keyFields(def, ""),
		Confirm: "Delete the matching " + strings.ToLower(def.Info.Label) + " record(s)?",
		Run: func(ctx context.Context, in []string) (Output, error) {
			n, err := svc.Delete(ctx, def.Info.Key, in...)
			if err != nil {
				return Output{}, err
			}
			return Output{Message: fmt.Sprintf("%d record(s) deleted", n)}, nil
		},
	}
}

func historyAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: keyFields(def, ""),
		Run: func(ctx context.Context, in []string) (Output, error) {
			t, err := svc.History(ctx, def.Info.Key, in...)
			if err != nil {
				return Output{}, err
			}
			return tableOutput("History of "+strings.Join(in, "/"), auditView(t)), nil
		},
	}
}

func importAction(svc *core.Service, def core.TableDefinition) *Action {
	return &Action{
		Fields: []Field{
			{Label: "file", Hint: "path to a delimited file with a header"},
			{Label: "dry run", Hint: "y or n", Optional: true, Validate: yesNo},
		},
		Run: func(ctx context.Context, in []string) (Output, error) {
			f, err := os.Open(in[0])
			if err != nil {
				return Output{}, fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			res, err := svc.Import(ctx, def.Info.Key, f, core.ImportOptions{
				DryRun:     isYes(in[1]),
				FailedFile: failedPath(in[0]),
			})
			if err != nil {
				return Output{}, err
			}
			return importOutput(res), nil
		},
	}
}

func importOutput(res *core.ImportResult) Output {
	verb := "imported"
	if res.DryRun {
		verb = "would be imported"
	}
	out := Output{
		Title: "Import " + res.TableKey,
		Message: fmt.Sprintf("%d of %d row(s) %s (%d invalid, %d already present, %d repeated in file)",
			res.Inserted, res.TotalRows, verb, res.ErrorRows, res.Existing, res.DuplicateInFile),
	}
	if res.FailedFile != "" {
		out.Message += "\nRejected rows written to " + res.FailedFile
	}
	if len(res.Failures) > 0 {
		rows := make([][]string, 0, len(res.Failures))
		for _, f := range res.Failures {
			rows = append(rows, []string{strconv.Itoa(f.Row), f.RowKey, strings.Join(f.Errors, "; ")})
		}
		out.Table = store.New([]string{"row", "key", "problem"}, rows...)
	}
	return out
}

/* ----------------------------------------
	REPORTS, AUDIT AND SETUP
---------------------------------------- */

func reportAction(svc *core.Service, r core.Report) *Action {
	return &Action{
		Run: func(ctx context.Context, _ []string) (Output, error) {
			t, err := svc.RunReport(ctx, r.Key)
			if err != nil {
				return Output{}, err
			}
			return tableOutput(r.Label, t), nil
		},
	}
}

func joinAction(svc *core.Service) *Action {
	return &Action{
		Fields: []Field{
			{Label: "left table", Validate: tableValidator},
			{Label: "left column"},
			{Label: "right table", Validate: tableValidator},
			{Label: "right column"},
		},
		Run: func(ctx context.Context, in []string) (Output, error) {
			t, err := svc.Join(ctx, in[0], in[1], in[2], in[3])
			if err != nil {
				return Output{}, err
			}
			return tableOutput(fmt.Sprintf("%s joined with %s", in[0], in[2]), t), nil
		},
	}
}

// auditView keeps the audit columns that fit on a screen.
func auditView(t *store.Table) *store.Table {
	v, err := store.Project(t, "created_at", "operator", "action", "severity", "table_key", "row_key", "column_name", "old_value", "new_value", "rows_affected")
	if err != nil {
		return t
	}
	return v
}

func auditAction(svc *core.Service) *Action {
	return &Action{
		Fields: []Field{limitField()},
		Run: func(ctx context.Context, in []string) (Output, error) {
			limit, _ := strconv.Atoi(in[0])
			if limit == 0 {
				limit = 50
			}
			t, err := svc.QueryAudit(ctx, core.AuditFilter{Limit: limit})
			if err != nil {
				return Output{}, err
			}
			return tableOutput("Recent Changes", auditView(t)), nil
		},
	}
}

func auditFilterAction(svc *core.Service) *Action {
	return &Action{
		Fields: []Field{
			{Label: "table", Optional: true, Validate: tableValidator},
			{Label: "action", Hint: "record_add, record_update, field_update, record_delete, table_init, import", Optional: true},
			{Label: "severity", Hint: "low, medium, high, critical", Optional: true},
			limitField(),
		},
		Run: func(ctx context.Context, in []string) (Output, error) {
			limit, _ := strconv.Atoi(in[3])
			t, err := svc.QueryAudit(ctx, core.AuditFilter{
				TableKey: in[0],
				Action:   core.AuditAction(in[1]),
				Severity: core.AuditSeverity(strings.ToLower(in[2])),
				Limit:    limit,
			})
			if err != nil {
				return Output{}, err
			}
			return tableOutput("Filtered Changes", auditView(t)), nil
		},
	}
}

func initAction(svc *core.Service) *Action {
	return &Action{
		Run: func(ctx context.Context, _ []string) (Output, error) {
			created, err := svc.Init(ctx)
			if err != nil {
				return Output{}, err
			}
			if len(created) == 0 {
				return Output{Message: "All data files already exist"}, nil
			}
			return Output{Message: "Initialised " + strings.Join(created, ", ")}, nil
		},
	}
}

func dataDirAction(svc *core.Service) *Action {
	return &Action{
		Run: func(context.Context, []string) (Output, error) {
			return Output{Message: "Data directory: " + svc.Store().Dir()}, nil
		},
	}
}

/* ----------------------------------------
	HELPERS
---------------------------------------- */

// failedPath names the rejected-rows file written next to an import file.
func failedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + " - failed" + ext
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func yesNo(s string) error {
	switch strings.ToLower(s) {
	case "y", "yes", "n", "no":
		return nil
	}
	return fmt.Errorf("answer %q is not y or n", s)
}

func isYes(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "y")
}
