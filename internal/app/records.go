package app

import (
	"strconv"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/core/editbuffer"
	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

func recordToTableDoc(r *secondary.TableDocRecord) *primary.TableDoc {
	return &primary.TableDoc{
		ID:                      r.ID,
		TableSchema:             r.TableSchema,
		TableName:               r.TableName,
		Description:             r.Description,
		CommonJoins:             r.CommonJoins,
		RowsCount:               r.RowsCount,
		RowsCountAsOf:           r.RowsCountAsOf,
		IntendedUpdateFrequency: r.IntendedUpdateFrequency,
		DocsApproved:            r.DocsApproved,
		LastApprovalAt:          r.LastApprovalAt,
		Deprecated:              r.Deprecated,
		Orphaned:                r.Orphaned,
		InsertedAt:              r.InsertedAt,
	}
}

func recordToColumnDoc(r *secondary.ColumnDocRecord) *primary.ColumnDoc {
	return &primary.ColumnDoc{
		ID:          r.ID,
		TableSchema: r.TableSchema,
		TableName:   r.TableName,
		ColumnName:  r.ColumnName,
		DataType:    r.DataType,
		Description: r.Description,
		ExampleVals: r.ExampleVals,
		AlsoGoesBy:  r.AlsoGoesBy,
		Orphaned:    r.Orphaned,
		InsertedAt:  r.InsertedAt,
	}
}

// tableFields formats a table record for the edit buffer, uneditable
// fields first. NULL renders as empty.
func tableFields(r *secondary.TableDocRecord) []editbuffer.Field {
	values := map[string]string{
		catalog.FieldID:                      strconv.FormatInt(r.ID, 10),
		catalog.FieldTableSchema:             r.TableSchema,
		catalog.FieldTableName:               r.TableName,
		catalog.FieldLastApprovalAt:          r.LastApprovalAt,
		catalog.FieldOrphaned:                strconv.FormatBool(r.Orphaned),
		catalog.FieldRowsCount:               formatCount(r.RowsCount),
		catalog.FieldRowsCountAsOf:           r.RowsCountAsOf,
		catalog.FieldInsertedAt:              r.InsertedAt,
		catalog.FieldDescription:             r.Description,
		catalog.FieldCommonJoins:             r.CommonJoins,
		catalog.FieldIntendedUpdateFrequency: r.IntendedUpdateFrequency,
		catalog.FieldDocsApproved:            formatFlag(r.DocsApproved),
		catalog.FieldDeprecated:              formatFlag(r.Deprecated),
	}
	return orderedFields(values, catalog.TableUneditableFields, catalog.TableEditableFields)
}

// columnFields formats a column record for the edit buffer.
func columnFields(r *secondary.ColumnDocRecord) []editbuffer.Field {
	values := map[string]string{
		catalog.FieldID:          strconv.FormatInt(r.ID, 10),
		catalog.FieldTableSchema: r.TableSchema,
		catalog.FieldTableName:   r.TableName,
		catalog.FieldColumnName:  r.ColumnName,
		catalog.FieldDataType:    r.DataType,
		catalog.FieldOrphaned:    strconv.FormatBool(r.Orphaned),
		catalog.FieldInsertedAt:  r.InsertedAt,
		catalog.FieldDescription: r.Description,
		catalog.FieldExampleVals: r.ExampleVals,
		catalog.FieldAlsoGoesBy:  r.AlsoGoesBy,
	}
	return orderedFields(values, catalog.ColumnUneditableFields, catalog.ColumnEditableFields)
}

func orderedFields(values map[string]string, groups ...[]string) []editbuffer.Field {
	var fields []editbuffer.Field
	for _, group := range groups {
		for _, name := range group {
			fields = append(fields, editbuffer.Field{Name: name, Value: values[name]})
		}
	}
	return fields
}

func formatFlag(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func formatCount(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}
