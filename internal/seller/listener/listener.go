package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/seller"
)

const (
	EventSubscriptionActivated = "SubscriptionActivated"
	EventSubscriptionCancelled = "SubscriptionCancelled"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// SubscriptionListener applies plan changes published by billing to vendors.
type SubscriptionListener struct {
	consumer MessageReader
	uc       seller.UseCase
	backoff  time.Duration
	logger   logger.ZapLogger
}

func NewSubscriptionListener(consumer MessageReader, uc seller.UseCase, log logger.ZapLogger) *SubscriptionListener {
	return &SubscriptionListener{
		consumer: consumer,
		uc:       uc,
		backoff:  time.Second,
		logger:   log,
	}
}

type SubscriptionEvent struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Payload   SubscriptionPayload `json:"payload"`
	Timestamp time.Time           `json:"timestamp"`
}

type SubscriptionPayload struct {
	VendorID int64  `json:"vendor_id"`
	EndsOn   string `json:"ends_on"` // YYYY-MM-DD, required for activations
}

// Start blocks until ctx is cancelled.
func (l *SubscriptionListener) Start(ctx context.Context) {
	l.logger.Info("starting subscription listener")
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("stopping subscription listener")
				return
			}
			l.logger.Error("failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.backoff):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

func (l *SubscriptionListener) processMessage(ctx context.Context, value []byte) {
	var event SubscriptionEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal subscription event", zap.Error(err))
		return
	}

	var (
		plan string
		end  *time.Time
	)
	switch event.EventType {
	case EventSubscriptionActivated:
		d, err := time.Parse(time.DateOnly, event.Payload.EndsOn)
		if err != nil {
			l.logger.Error("subscription event without a valid end date",
				zap.String("event_id", event.EventID), zap.String("ends_on", event.Payload.EndsOn))
			return
		}
		plan, end = model.PlanPremium, &d
	case EventSubscriptionCancelled:
		plan = model.PlanFree
	default:
		l.logger.Debug("ignoring subscription event",
			zap.String("event_id", event.EventID), zap.String("event_type", event.EventType))
		return
	}

	err := l.uc.SetPlan(ctx, event.Payload.VendorID, plan, end)
	switch {
	case err == nil:
		l.logger.Info("vendor plan updated from billing",
			zap.String("event_id", event.EventID),
			zap.Int64("vendor_id", event.Payload.VendorID),
			zap.String("plan", plan),
		)
	case errors.Is(err, apperror.ErrNotFound):
		l.logger.Warn("subscription event for unknown vendor", zap.Int64("vendor_id", event.Payload.VendorID))
	default:
		l.logger.Error("failed to update vendor plan",
			zap.Int64("vendor_id", event.Payload.VendorID), zap.Error(err))
	}
}
