package core

// validation.go provides row-level validation for records before they are written.
//
// Validation happens at two levels:
//  1. Header validation: Ensures a file's header carries the registered columns
//  2. Row validation: Checks each cell against its FieldSpec (type, format, enum values)
//
// NormalizeRow both validates and rewrites cells into their canonical form,
// so dates typed as 3/5/2024 are stored as 2024-03-05. ValidateRowFirst
// returns only the first problem for callers that only need pass/fail.

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks errors caused by user-supplied values.
var ErrValidation = errors.New("validation failed")

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating a row.
type ValidationResult struct {
	Valid  bool              // True if all validations passed
	Errors []ValidationError // List of validation errors (empty if Valid)
}

// Err returns nil for a valid result, otherwise one error wrapping
// ErrValidation that lists every problem.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

// RowValidator validates rows against a table's field specifications.
type RowValidator struct {
	specs     []FieldSpec
	headerIdx HeaderIndex
}

// NewRowValidator creates a validator for the given field specs and header index.
func NewRowValidator(specs []FieldSpec, headerIdx HeaderIndex) *RowValidator {
	return &RowValidator{
		specs:     specs,
		headerIdx: headerIdx,
	}
}

// ValidateRow validates a single row and returns all validation errors.
func (v *RowValidator) ValidateRow(row []string) ValidationResult {
	_, result := v.NormalizeRow(row)
	return result
}

// NormalizeRow validates row and returns a copy with every specified cell
// cleaned and rewritten in canonical form. Cells without a spec are only
// trimmed.
func (v *RowValidator) NormalizeRow(row []string) ([]string, ValidationResult) {
	result := ValidationResult{Valid: true}
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}

	for _, spec := range v.specs {
		pos, ok := v.headerIdx[strings.ToLower(spec.Name)]
		if !ok || pos >= len(row) {
			if spec.Required {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   spec.Name,
					Message: "missing required column",
				})
			}
			continue
		}

		normalized, err := NormalizeCell(row[pos], spec)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   spec.Name,
				Value:   row[pos],
				Message: err.Error(),
			})
			continue
		}
		out[pos] = normalized
	}

	return out, result
}

// ValidateRowFirst validates a row and returns the first error only.
func (v *RowValidator) ValidateRowFirst(row []string) error {
	for _, spec := range v.specs {
		pos, ok := v.headerIdx[strings.ToLower(spec.Name)]
		if !ok || pos >= len(row) {
			if spec.Required {
				return fmt.Errorf("%w: missing required column %q", ErrValidation, spec.Name)
			}
			continue
		}

		if _, err := NormalizeCell(row[pos], spec); err != nil {
			return fmt.Errorf("%w: %s %q for %q: %w", ErrValidation, fieldTypeName(spec.Type), row[pos], spec.Name, err)
		}
	}
	return nil
}

// NormalizeCell cleans value, applies the spec's normalizer, checks the
// result against the spec and returns its canonical form.
func NormalizeCell(value string, spec FieldSpec) (string, error) {
	raw := CleanCell(value)

	if raw == "" {
		if spec.Required {
			return "", errors.New("required field is empty")
		}
		return "", nil
	}

	if spec.Normalizer != nil {
		raw = spec.Normalizer(raw)
	}

	if err := ValidateCell(raw, spec); err != nil {
		return "", err
	}

	switch spec.Type {
	case FieldNumeric:
		raw, _ = NormalizeNumeric(raw)
	case FieldInteger:
		raw, _ = NormalizeInteger(raw)
	case FieldDate:
		raw, _ = NormalizeDate(raw)
	case FieldTime:
		raw, _ = NormalizeTime(raw)
	case FieldBool:
		raw, _ = NormalizeBool(raw)
	case FieldEnum:
		for _, ev := range spec.EnumValues {
			if strings.EqualFold(ev, raw) {
				raw = ev
				break
			}
		}
	}
	return raw, nil
}

// ValidateCell validates a single cell value against a field specification.
// Returns nil if valid, or an error describing the problem.
func ValidateCell(value string, spec FieldSpec) error {
	if value == "" {
		return nil // Emptiness is checked by NormalizeCell
	}

	switch spec.Type {
	case FieldNumeric:
		if _, ok := NormalizeNumeric(value); !ok {
			return fmt.Errorf("invalid number format")
		}
	case FieldInteger:
		if _, ok := NormalizeInteger(value); !ok {
			return fmt.Errorf("invalid number format (whole number required)")
		}
	case FieldDate:
		if _, ok := NormalizeDate(value); !ok {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD or similar)")
		}
	case FieldTime:
		if _, ok := NormalizeTime(value); !ok {
			return fmt.Errorf("invalid time format (use HH:MM)")
		}
	case FieldBool:
		if _, ok := NormalizeBool(value); !ok {
			return fmt.Errorf("must be yes/no, true/false, or 1/0")
		}
	case FieldEnum:
		if len(spec.EnumValues) > 0 {
			for _, ev := range spec.EnumValues {
				if strings.EqualFold(ev, value) {
					return nil
				}
			}
			return fmt.Errorf("invalid enum value, must be one of: %s", strings.Join(spec.EnumValues, ", "))
		}
	}
	return nil
}

// ValidateHeaders checks that every registered column exists in a file's
// header. Returns a mapping from column name to index, or an error listing
// missing columns.
func ValidateHeaders(headers []string, columns []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, c := range columns {
		if _, ok := idx[strings.ToLower(c)]; !ok {
			missing = append(missing, c)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", ErrValidation, strings.Join(missing, ", "))
	}

	return idx, nil
}

// ValidateStorable rejects cells that would not read back as written: a
// line break anywhere, or the delimiter or a double quote in any cell but
// the last.
func ValidateStorable(columns, cells []string, delim byte) error {
	var bad []string
	for i, c := range cells {
		if strings.ContainsAny(c, "\r\n") {
			bad = append(bad, fmt.Sprintf("%s contains a line break", columnName(columns, i)))
			continue
		}
		if i == len(cells)-1 {
			continue
		}
		if strings.IndexByte(c, delim) >= 0 || strings.IndexByte(c, '"') >= 0 {
			bad = append(bad, fmt.Sprintf("%s contains %q or a double quote", columnName(columns, i), string(delim)))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: invalid characters: %s", ErrValidation, strings.Join(bad, "; "))
	}
	return nil
}

func columnName(columns []string, i int) string {
	if i < len(columns) {
		return columns[i]
	}
	return fmt.Sprintf("column %d", i+1)
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldEnum:
		return "enum"
	case FieldDate:
		return "date"
	case FieldTime:
		return "time"
	case FieldNumeric:
		return "numeric"
	case FieldInteger:
		return "integer"
	case FieldBool:
		return "bool"
	default:
		return "value"
	}
}
