package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/cloudevents/sdk-go/v2/event"
)

// PubSubAdapter publishes CloudEvents in structured JSON mode, mirroring the
// ce-* context attributes onto the Pub/Sub message.
type PubSubAdapter struct {
	Client *pubsub.Client

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

// topic returns a cached handle; each handle owns its own batching goroutines.
func (a *PubSubAdapter) topic(id string) *pubsub.Topic {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.topics == nil {
		a.topics = make(map[string]*pubsub.Topic)
	}
	t, ok := a.topics[id]
	if !ok {
		t = a.Client.Topic(id)
		a.topics[id] = t
	}
	return t
}

func (a *PubSubAdapter) PublishCloudEvent(ctx context.Context, topicID string, e event.Event) (string, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return "", err
	}

	msgID, err := a.topic(topicID).Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: ceAttributes(e),
	}).Get(ctx)
	if err != nil {
		slog.Error("Publish failed", "topic", topicID, "event_type", e.Type(), "error", err)
		return "", err
	}

	slog.Info("Published CloudEvent", "topic", topicID, "event_type", e.Type(), "event_id", e.ID(), "message_id", msgID, "size_bytes", len(payload))
	return msgID, nil
}

func ceAttributes(e event.Event) map[string]string {
	attrs := map[string]string{
		"ce-specversion": e.SpecVersion(),
		"ce-type":        e.Type(),
		"ce-source":      e.Source(),
		"ce-id":          e.ID(),
	}
	if !e.Time().IsZero() {
		attrs["ce-time"] = e.Time().UTC().Format(time.RFC3339Nano)
	}
	if ct := e.DataContentType(); ct != "" {
		attrs["content-type"] = ct
	}
	return attrs
}

// LogPublisher logs events instead of publishing them. Used when ENABLE_PUBLISH is off.
type LogPublisher struct{}

func (p *LogPublisher) PublishCloudEvent(ctx context.Context, topicID string, e event.Event) (string, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	slog.Info("MOCK PUBLISH", "topic", topicID, "event_type", e.Type(), "data", string(payload))
	return "mock-msg-id", nil
}
