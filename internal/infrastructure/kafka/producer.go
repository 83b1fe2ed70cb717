package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// checkoutEventEnvelope — JSON-конверт события чекаута.
type checkoutEventEnvelope struct {
	EventID     string    `json:"eventId"`
	EventName   string    `json:"eventName"`
	OccurredAt  time.Time `json:"occurredAt"`
	SessionID   string    `json:"sessionId"`
	UserID      string    `json:"userId,omitempty"`
	AttemptID   string    `json:"attemptId"`
	TotalAmount int64     `json:"totalAmount"`
	Currency    string    `json:"currency"`
	Message     string    `json:"message,omitempty"`
}

// WriteCheckoutEvent публикует событие жизненного цикла чекаута.
// Ключ — идентификатор сессии: события одной сессии идут в одну партицию.
func (p *Producer) WriteCheckoutEvent(ctx context.Context, req *usecase.CheckoutEventReq) error {
	envelope := checkoutEventEnvelope{
		EventID:     uuid.NewString(),
		EventName:   req.Name,
		OccurredAt:  time.Now().UTC(),
		SessionID:   req.SessionID,
		UserID:      req.UserID,
		AttemptID:   req.AttemptID,
		TotalAmount: req.Total,
		Currency:    req.Currency,
		Message:     req.Message,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(req.SessionID),
		Value: value,
	})
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		err := conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
