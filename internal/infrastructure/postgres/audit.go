package postgres

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// AuditLogger appends auth events to auth_audit_log. Writes are best-effort:
// a failed insert is logged and swallowed, never surfaced to the request.
type AuditLogger struct {
	db     DB
	logger *logrus.Logger
}

func NewAuditLogger(db DB, logger *logrus.Logger) *AuditLogger {
	return &AuditLogger{db: db, logger: logger}
}

// Record inserts one audit row. Username may be empty for anonymous events.
func (a *AuditLogger) Record(ctx context.Context, username, action, ip, userAgent string, metadata map[string]any) {
	if a == nil || a.db == nil {
		return
	}
	md, _ := json.Marshal(metadata)
	_, err := a.db.Exec(ctx, `
		INSERT INTO auth_audit_log (username, action, ip, user_agent, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`, username, action, ip, userAgent, md)
	if err != nil && a.logger != nil {
		a.logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}
