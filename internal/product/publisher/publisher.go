package publisher

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// Producer is the part of broker.KafkaProducer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type ProductEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Payload   ProductPayload `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

type ProductPayload struct {
	ID         int64  `json:"id"`
	VendorID   int64  `json:"vendor_id"`
	CategoryID *int64 `json:"category_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	IsActive   bool   `json:"is_active"`
}

type KafkaPublisher struct {
	producer Producer
	metrics  *metrics.Metrics
	logger   logger.ZapLogger
}

func NewKafkaPublisher(producer Producer, m *metrics.Metrics, log logger.ZapLogger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		metrics:  m,
		logger:   log,
	}
}

// Publish sends the event synchronously with a short timeout. Failures are logged and
// counted; the product write that triggered the event has already succeeded.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, product *model.Product) {
	event := ProductEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload: ProductPayload{
			ID:         product.ID,
			VendorID:   product.VendorID,
			CategoryID: product.CategoryID,
			Name:       product.Name,
			Price:      product.Price.StringFixed(2),
			IsActive:   product.IsActive,
		},
		Timestamp: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal product event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	// Keyed by vendor so one vendor's events stay ordered.
	if err := p.producer.Publish(ctx, strconv.FormatInt(product.VendorID, 10), value); err != nil {
		p.metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
		p.logger.Error("failed to publish product event",
			zap.String("event_type", eventType),
			zap.Int64("product_id", product.ID),
			zap.Error(err),
		)
		return
	}
	p.metrics.EventsPublishedTotal.WithLabelValues("success").Inc()
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, *model.Product) {}
