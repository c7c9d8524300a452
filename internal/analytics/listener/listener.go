package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/analytics"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type BapEventListener struct {
	consumer MessageReader
	uc       analytics.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewBapEventListener(consumer MessageReader, uc analytics.UseCase, log logger.ZapLogger) *BapEventListener {
	return &BapEventListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
		backoff:  time.Second,
	}
}

func (l *BapEventListener) Start(ctx context.Context) {
	l.logger.Info("Starting BAP event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping BAP event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
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
}

func (l *BapEventListener) processMessage(ctx context.Context, value []byte) {
	var event model.BapEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal bap event", zap.Error(err))
		return
	}

	if err := l.uc.RecordEvent(ctx, &event); err != nil {
		l.logger.Error("Failed to record bap event",
			zap.String("event_id", event.ID),
			zap.String("bap_id", event.BapID),
			zap.Error(err),
		)
	}
}
