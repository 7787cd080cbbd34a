package worker

import (
	"github.com/creatorhub/memberkit/internal/service"
)

// StartSessionAuditWorker registers the session audit handlers.
func StartSessionAuditWorker(audit *service.SessionAuditService) {
	if audit == nil {
		return
	}
	audit.RegisterHandlers()
}
