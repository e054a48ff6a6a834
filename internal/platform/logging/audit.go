package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes a single write performed on behalf of a user.
type AuditEvent struct {
	Action       string // "create", "update"
	Actor        string // uid of the authenticated caller
	ResourceType string // "profile", "post"
	ResourceID   string
	Result       string // AuditSuccess or AuditFailure
	Details      map[string]any
}

// LogAudit writes the event at info level with audit.* keys so log sinks can
// route it separately from request logs.
func LogAudit(ctx context.Context, ev AuditEvent) {
	fields := []zap.Field{
		zap.String("audit.action", ev.Action),
		zap.String("audit.user_id", ev.Actor),
		zap.String("audit.resource_type", ev.ResourceType),
		zap.String("audit.resource_id", ev.ResourceID),
		zap.String("audit.result", ev.Result),
	}
	if len(ev.Details) > 0 {
		fields = append(fields, zap.Any("audit.details", ev.Details))
	}
	LoggerFromContext(ctx).Info("Audit event", fields...)
}
