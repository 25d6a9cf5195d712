package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/abcretail/retail/model"
)

// AuditSink accepts audit log entries.
type AuditSink interface {
	Append(ctx context.Context, message any) error
}

// AuditQueue is the full audit queue surface: append plus bounded,
// non-destructive read-back.
type AuditQueue interface {
	AuditSink
	PeekRecent(ctx context.Context, max int) ([]model.AuditLog, error)
}

// PhotoUpload carries an incoming photo file.
type PhotoUpload struct {
	FileName string
	Body     io.Reader
}

// AuditService exposes the audit trail: arbitrary entry submission and
// read-back of recent entries.
type AuditService struct {
	queue  AuditQueue
	logger *slog.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(queue AuditQueue, logger *slog.Logger) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{
		queue:  queue,
		logger: logger,
	}
}

// Record appends a structured audit event. Unlike the implicit logging
// done by the entity services, a failure here is surfaced: the caller
// explicitly asked for the entry to be written.
func (s *AuditService) Record(ctx context.Context, action, entityType string, details map[string]any) error {
	if action == "" {
		action = "Unknown"
	}
	if entityType == "" {
		entityType = "Unknown"
	}
	return s.queue.Append(ctx, model.AuditEvent{
		Action:     action,
		EntityType: entityType,
		Timestamp:  time.Now().UTC(),
		Details:    details,
	})
}

// Recent returns up to DefaultPeekLimit of the oldest available entries
// without removing them.
func (s *AuditService) Recent(ctx context.Context) ([]model.AuditLog, error) {
	return s.queue.PeekRecent(ctx, 30)
}

// logEvent appends an audit event for a mutating operation. Failures are
// logged at warn and swallowed: audit logging never fails the operation
// that triggered it.
func logEvent(ctx context.Context, sink AuditSink, logger *slog.Logger, action, entityType string, details map[string]any) {
	event := model.AuditEvent{
		Action:     action,
		EntityType: entityType,
		Timestamp:  time.Now().UTC(),
		Details:    details,
	}
	if err := sink.Append(ctx, event); err != nil {
		logger.Warn("audit log append failed",
			"action", action,
			"entityType", entityType,
			"error", err,
		)
	}
}

// logError appends an audit event for a failed operation, same swallow
// policy as logEvent.
func logError(ctx context.Context, sink AuditSink, logger *slog.Logger, entityType, operation string, opErr error) {
	logEvent(ctx, sink, logger, "Error", entityType, map[string]any{
		"Operation": operation,
		"Error":     opErr.Error(),
	})
}
