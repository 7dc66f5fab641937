package services

import (
	"context"
	"encoding/json"

	"storefront-service/models"

	aws_pkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
)

// CartEventPublisher sends cart events to an SNS topic. A nil publisher, a
// nil client or an empty topic disables publishing.
type CartEventPublisher struct {
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewCartEventPublisher(snsClient aws_pkg.SNSPublisher, snsTopicArn string, logger *zap.Logger) *CartEventPublisher {
	return &CartEventPublisher{
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

// Publish is best effort: failures are logged and never returned.
func (p *CartEventPublisher) Publish(ctx context.Context, event models.CartEvent) {
	if p == nil {
		return
	}
	if p.snsClient == nil || p.snsTopicArn == "" {
		p.logger.Debug("SNS client not configured, skipping cart event", zap.String("event_type", event.EventType))
		return
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal cart event", zap.Error(err))
		return
	}

	if err := p.snsClient.Publish(ctx, p.snsTopicArn, eventBytes); err != nil {
		p.logger.Error("Failed to publish cart event",
			zap.String("event_type", event.EventType),
			zap.Int("cart_id", event.CartID),
			zap.Error(err),
		)
		return
	}

	p.logger.Info("Published cart event",
		zap.String("event_type", event.EventType),
		zap.Int("cart_id", event.CartID),
	)
}
