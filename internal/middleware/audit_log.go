package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// AuditLog records a user action such as a login or a package change.
// sink may be nil.
func AuditLog(sink LogSink, c *gin.Context, actionType, message string, fields map[string]any) {
	if sink == nil {
		return
	}
	sink.Log(auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError records a failed user action.
func AuditLogError(sink LogSink, c *gin.Context, actionType, message string, err error, fields map[string]any) {
	if sink == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]any) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		Fields:     fields,
	}
	entry.UserID, entry.UserEmail = userFromContext(c)
	return entry
}

// userFromContext returns the identity stored by JWTAuth or APIKeyAuth.
func userFromContext(c *gin.Context) (id, email string) {
	id = c.GetString(ContextUserID)
	email = c.GetString(ContextUserEmail)
	return id, email
}
