package catalog

import "slices"

// Field names shared by the documentation tables and the edit buffer.
const (
	FieldID                      = "id"
	FieldTableSchema             = "table_schema"
	FieldTableName               = "table_name"
	FieldColumnName              = "column_name"
	FieldDataType                = "data_type"
	FieldDescription             = "description"
	FieldCommonJoins             = "common_joins"
	FieldRowsCount               = "rows_count"
	FieldRowsCountAsOf           = "rows_count_as_of"
	FieldIntendedUpdateFrequency = "intended_update_frequency"
	FieldDocsApproved            = "docs_approved"
	FieldLastApprovalAt          = "last_approval_at"
	FieldDeprecated              = "deprecated"
	FieldOrphaned                = "orphaned"
	FieldExampleVals             = "example_vals"
	FieldAlsoGoesBy              = "also_goes_by"
	FieldInsertedAt              = "inserted_at"
)

// UpdateFrequencies are the accepted values of intended_update_frequency.
var UpdateFrequencies = []string{"hourly", "sub-hourly", "daily", "weekly", "ad-hoc", "never-again"}

// Table documentation fields, in display order.
var (
	TableUneditableFields = []string{
		FieldID, FieldTableSchema, FieldTableName, FieldLastApprovalAt,
		FieldOrphaned, FieldRowsCount, FieldRowsCountAsOf, FieldInsertedAt,
	}
	TableEditableFields = []string{
		FieldDescription, FieldCommonJoins, FieldIntendedUpdateFrequency,
		FieldDocsApproved, FieldDeprecated,
	}
)

// Column documentation fields, in display order.
var (
	ColumnUneditableFields = []string{
		FieldID, FieldTableSchema, FieldTableName, FieldColumnName,
		FieldDataType, FieldOrphaned, FieldInsertedAt,
	}
	ColumnEditableFields = []string{
		FieldDescription, FieldExampleVals, FieldAlsoGoesBy,
	}
)

// TableUpdatableFields are the columns an edit may write: the editable
// fields plus values derived during validation.
var TableUpdatableFields = append(append([]string{}, TableEditableFields...), FieldLastApprovalAt)

// ColumnUpdatableFields are the columns an edit may write.
var ColumnUpdatableFields = ColumnEditableFields

// ValidUpdateFrequency reports whether freq is an accepted update frequency.
func ValidUpdateFrequency(freq string) bool {
	return slices.Contains(UpdateFrequencies, freq)
}
