package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/defect-service/internal/config"
	"github.com/spec-kit/defect-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventDefectCreated, n.handleDefectCreated)
	n.dispatcher.Subscribe(events.EventDefectStatusChanged, n.handleDefectStatusChanged)
	n.dispatcher.Subscribe(events.EventDefectAssigned, n.handleDefectAssigned)
	n.dispatcher.Subscribe(events.EventDefectCommentAdded, n.handleDefectCommentAdded)
}

func (n *NotificationService) handleDefectCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("DefectCreated", zap.Int64("defect_id", event.DefectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDefectStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("DefectStatusChanged", zap.Int64("defect_id", event.DefectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDefectAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("DefectAssigned", zap.Int64("defect_id", event.DefectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDefectCommentAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("DefectCommentAdded", zap.Int64("defect_id", event.DefectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("defect_id", event.DefectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("defect_id", event.DefectID),
		zap.String("event_type", string(event.Type)))
}
