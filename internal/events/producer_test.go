package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"cargo-dispatch/internal/logger"

	"github.com/segmentio/kafka-go"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublishStatusChanged(t *testing.T) {
	fw := &fakeWriter{}
	p := NewProducerWithWriter(fw)

	evt := StatusChanged{
		ShipmentID: "ship-1",
		From:       "NEW",
		To:         "ASSIGNED",
		Timestamp:  time.Now(),
	}
	if err := p.PublishStatusChanged(context.Background(), evt); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(fw.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fw.msgs))
	}
	if string(fw.msgs[0].Key) != "ship-1" {
		t.Fatalf("expected key ship-1, got %s", fw.msgs[0].Key)
	}

	var decoded StatusChanged
	if err := json.Unmarshal(fw.msgs[0].Value, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.From != "NEW" || decoded.To != "ASSIGNED" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}
