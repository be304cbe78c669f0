package bootstrap

import "context"

// AuditLog is one audit entry. Meta carries event specific fields.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
