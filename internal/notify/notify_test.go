package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type capturePublisher struct {
	keys   []string
	values [][]byte
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, key, value []byte) error {
	p.keys = append(p.keys, string(key))
	p.values = append(p.values, value)
	return p.err
}

func TestFromError(t *testing.T) {
	n := FromError(errors.New("save failed"))
	if n.Level != LevelError || n.Message != "save failed" {
		t.Fatalf("unexpected notice: %+v", n)
	}
	if got := FromError(nil).Message; got != "something went wrong" {
		t.Fatalf("nil error message: got=%q", got)
	}
}

func TestLogNotifierUsesLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	n := NewLogNotifier(logger.Wrap(zap.New(core)))

	n.Notify(context.Background(), Notice{Level: LevelWarning, Message: "slow"})
	n.Notify(context.Background(), FromError(errors.New("boom")))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries: got=%d want=2", len(entries))
	}
	if entries[0].Level != zap.WarnLevel || entries[0].Message != "slow" {
		t.Fatalf("first entry: %+v", entries[0])
	}
	if entries[1].Level != zap.ErrorLevel || entries[1].Message != "boom" {
		t.Fatalf("second entry: %+v", entries[1])
	}
}

func TestKafkaNotifierPublishesAndSwallowsErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	pub := &capturePublisher{err: errors.New("broker down")}
	n := NewKafkaNotifier(pub, logger.Wrap(zap.New(core)))

	ctx := auth.WithMerchantID(context.Background(), "m-1")
	n.Notify(ctx, Notice{Message: "variant save failed"})

	if len(pub.values) != 1 || pub.keys[0] != "m-1" {
		t.Fatalf("publish calls: keys=%v", pub.keys)
	}
	var got Notice
	if err := json.Unmarshal(pub.values[0], &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Level != LevelError || got.MerchantID != "m-1" || got.At.IsZero() {
		t.Fatalf("unexpected notice: %+v", got)
	}
	if logs.FilterMessage("failed to publish notice").Len() != 1 {
		t.Fatalf("expected publish failure to be logged")
	}
}
