package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"go.uber.org/zap"
)

type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notice is a transient message for the admin UI, shown top-right and never acknowledged.
type Notice struct {
	Level      Level     `json:"level"`
	Message    string    `json:"message"`
	MerchantID string    `json:"merchant_id,omitempty"`
	At         time.Time `json:"at"`
}

// Notifier is fire-and-forget: delivery failures never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// FromError builds an error notice from anything carrying a message.
func FromError(err error) Notice {
	msg := "something went wrong"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Notice{Level: LevelError, Message: msg}
}

func stamp(ctx context.Context, n Notice) Notice {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	if n.Level == "" {
		n.Level = LevelError
	}
	if n.MerchantID == "" {
		n.MerchantID = auth.GetMerchantID(ctx)
	}
	return n
}

type LogNotifier struct {
	logger logger.ZapLogger
}

func NewLogNotifier(log logger.ZapLogger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) Notify(ctx context.Context, notice Notice) {
	notice = stamp(ctx, notice)
	fields := []zap.Field{
		zap.String("level", string(notice.Level)),
		zap.String("merchant_id", notice.MerchantID),
	}
	switch notice.Level {
	case LevelError:
		n.logger.Error(notice.Message, fields...)
	case LevelWarning:
		n.logger.Warn(notice.Message, fields...)
	default:
		n.logger.Info(notice.Message, fields...)
	}
}

type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// KafkaNotifier pushes notices to the notifications topic consumed by the admin UI gateway.
type KafkaNotifier struct {
	producer Publisher
	logger   logger.ZapLogger
}

func NewKafkaNotifier(producer Publisher, log logger.ZapLogger) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, logger: log}
}

func (n *KafkaNotifier) Notify(ctx context.Context, notice Notice) {
	notice = stamp(ctx, notice)
	data, err := json.Marshal(notice)
	if err != nil {
		n.logger.Error("failed to encode notice", zap.Error(err))
		return
	}
	if err := n.producer.Publish(context.WithoutCancel(ctx), []byte(notice.MerchantID), data); err != nil {
		n.logger.Warn("failed to publish notice", zap.Error(err))
	}
}

type Multi []Notifier

func (m Multi) Notify(ctx context.Context, notice Notice) {
	for _, n := range m {
		n.Notify(ctx, notice)
	}
}
