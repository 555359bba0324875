package sqlite

import (
	"context"
	"log/slog"
	"strings"

	"github.com/example/schemadoc/internal/ctxutil"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.ChangeLog. Each committed change is
// appended to the change history and emitted as a structured log record.
type LogWriterAdapter struct {
	logRepo secondary.ChangeLogRepository
	logger  *slog.Logger
	schema  string
}

// NewLogWriterAdapter creates a change log. logRepo may be nil, in which case
// changes are only logged. schema is the working schema the changes were
// committed to.
func NewLogWriterAdapter(logRepo secondary.ChangeLogRepository, logger *slog.Logger, schema string) *LogWriterAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogWriterAdapter{logRepo: logRepo, logger: logger, schema: schema}
}

// LogUpdate logs the fields written to a record.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityType, entity string, fields []string) {
	w.writeLog(ctx, "update", entityType, entity, strings.Join(fields, ","),
		slog.String("entity", entity), slog.Any("fields", fields))
}

// LogRename logs a rename of a record.
func (w *LogWriterAdapter) LogRename(ctx context.Context, entityType, from, to string) {
	w.writeLog(ctx, "rename", entityType, from, to, slog.String("from", from), slog.String("to", to))
}

// LogDelete logs a removal of a record.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, entityType, entity string) {
	w.writeLog(ctx, "delete", entityType, entity, "", slog.String("entity", entity))
}

// LogTransfer logs documentation moved from one record onto another.
func (w *LogWriterAdapter) LogTransfer(ctx context.Context, entityType, from, to string) {
	w.writeLog(ctx, "transfer", entityType, from, to, slog.String("from", from), slog.String("to", to))
}

// writeLog writes a log entry with common logic. The change is already
// committed, so a failed history write is reported but not returned.
func (w *LogWriterAdapter) writeLog(ctx context.Context, action, entityType, entity, detail string, attrs ...slog.Attr) {
	operator := ctxutil.OperatorFromContext(ctx)

	attrs = append([]slog.Attr{
		slog.String("schema", w.schema),
		slog.String("operator", operator),
		slog.String("entity_type", entityType),
		slog.String("action", action),
	}, attrs...)
	w.logger.LogAttrs(ctx, slog.LevelInfo, "documentation changed", attrs...)

	if w.logRepo == nil {
		return
	}
	err := w.logRepo.Create(ctx, &secondary.ChangeLogRecord{
		Operator:   operator,
		EntityType: entityType,
		Entity:     entity,
		Action:     action,
		Detail:     detail,
	})
	if err != nil {
		w.logger.WarnContext(ctx, "failed to record change history", "entity", entity, "action", action, "error", err)
	}
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.ChangeLog = (*LogWriterAdapter)(nil)
