package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/creatorhub/memberkit/internal/events"
)

// SessionAuditService writes a structured log line for every session change.
type SessionAuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSessionAuditService creates the service.
func NewSessionAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *SessionAuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionAuditService{dispatcher: dispatcher, logger: logger.Named("session")}
}

// RegisterHandlers subscribes to events.
func (a *SessionAuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	events.SubscribeAll(a.dispatcher, a.handle, events.SessionEvents...)
}

func (a *SessionAuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("user_id", event.UserID),
		zap.Any("payload", event.Payload))
	return nil
}
