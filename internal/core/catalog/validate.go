package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Assignment sets one documentation field. A nil Value stores NULL.
type Assignment struct {
	Field string
	Value any
}

// Update is an ordered set of field assignments produced by validation.
type Update []Assignment

// Get returns the value assigned to field, if any.
func (u Update) Get(field string) (any, bool) {
	for _, a := range u {
		if a.Field == field {
			return a.Value, true
		}
	}
	return nil, false
}

// Fields returns the assigned field names in order.
func (u Update) Fields() []string {
	names := make([]string, len(u))
	for i, a := range u {
		names[i] = a.Field
	}
	return names
}

// Validator turns parsed buffer values into an update, or fails with a
// *ValidationError.
type Validator func(raw map[string]string) (Update, error)

// TableValidator returns the validator for table documentation edits.
// now is called once per validation to stamp approvals.
func TableValidator(now func() time.Time) Validator {
	return func(raw map[string]string) (Update, error) {
		return ValidateTableEdit(raw, now())
	}
}

// ValidateTableEdit checks edited table fields and derives last_approval_at.
//
// Rules:
//   - only editable fields may appear
//   - intended_update_frequency must be empty or one of UpdateFrequencies
//   - docs_approved and deprecated must be empty or a yes/no value
//   - docs_approved=true stamps last_approval_at with now; false leaves it alone
//   - empty or whitespace-only values are stored as NULL
func ValidateTableEdit(raw map[string]string, now time.Time) (Update, error) {
	if err := checkFieldSet(raw, TableEditableFields, TableUneditableFields); err != nil {
		return nil, err
	}

	var update Update
	for _, field := range TableEditableFields {
		value, ok := raw[field]
		if !ok {
			continue
		}

		switch field {
		case FieldIntendedUpdateFrequency:
			freq := nullIfBlank(value)
			if freq != nil && !ValidUpdateFrequency(freq.(string)) {
				return nil, &ValidationError{
					Field:  field,
					Reason: fmt.Sprintf("bad update frequency %s. Expected one of: %s", freq, strings.Join(UpdateFrequencies, ", ")),
				}
			}
			update = append(update, Assignment{Field: field, Value: freq})
		case FieldDocsApproved, FieldDeprecated:
			flag, err := parseFlag(field, value)
			if err != nil {
				return nil, err
			}
			update = append(update, Assignment{Field: field, Value: flag})
		default:
			update = append(update, Assignment{Field: field, Value: nullIfBlank(value)})
		}
	}

	if approved, ok := update.Get(FieldDocsApproved); ok && approved == true {
		update = append(update, Assignment{Field: FieldLastApprovalAt, Value: now})
	}

	return update, nil
}

// ValidateColumnEdit checks edited column fields. All editable column
// fields are free text.
func ValidateColumnEdit(raw map[string]string) (Update, error) {
	if err := checkFieldSet(raw, ColumnEditableFields, ColumnUneditableFields); err != nil {
		return nil, err
	}

	var update Update
	for _, field := range ColumnEditableFields {
		if value, ok := raw[field]; ok {
			update = append(update, Assignment{Field: field, Value: nullIfBlank(value)})
		}
	}
	return update, nil
}

// checkFieldSet rejects read-only and unknown fields. Errors name the
// alphabetically first offending field so messages are stable.
func checkFieldSet(raw map[string]string, editable, uneditable []string) error {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if slices.Contains(editable, name) {
			continue
		}
		if slices.Contains(uneditable, name) {
			return &ValidationError{Field: name, Reason: "field is read-only"}
		}
		return &ValidationError{Field: name, Reason: "unknown field"}
	}
	return nil
}

// parseFlag accepts yes/no style booleans. Empty means NULL.
func parseFlag(field, value string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return nil, nil
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("expected true or false, got %q", value)}
}

// nullIfBlank maps empty and whitespace-only values to NULL.
func nullIfBlank(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
