package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// posthogEndpoint is the EU ingestion host; events stay in-region.
const posthogEndpoint = "https://eu.i.posthog.com"

// EventTracker queues product analytics events to PostHog. When no API key
// is configured the tracker is disabled and every call is a no-op, so
// callers never need to nil-check it.
type EventTracker struct {
	client posthog.Client
	logger *slog.Logger
}

// NewEventTracker builds a tracker from the configured API key. An empty key
// yields a disabled tracker.
func NewEventTracker(apiKey string, logger *slog.Logger) *EventTracker {
	t := &EventTracker{logger: logger}
	if apiKey == "" {
		logger.Info("Event tracking disabled: no API key configured.")
		return t
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{
		Endpoint: posthogEndpoint,
	})
	if err != nil {
		logger.Error("Failed to initialize event tracking client", slog.String("error", err.Error()))
		return t
	}
	t.client = client
	return t
}

// Enabled reports whether events will actually be sent.
func (t *EventTracker) Enabled() bool {
	return t != nil && t.client != nil
}

// Capture queues a single event attributed to userID. Delivery is
// asynchronous; failures are logged and never surfaced to the caller.
func (t *EventTracker) Capture(userID, event string, properties map[string]any) {
	if !t.Enabled() {
		return
	}
	if err := t.client.Enqueue(posthog.Capture{
		DistinctId: userID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		t.logger.Warn("Failed to enqueue analytics event",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}

// Close flushes queued events and shuts the client down.
func (t *EventTracker) Close() {
	if !t.Enabled() {
		return
	}
	if err := t.client.Close(); err != nil {
		t.logger.Warn("Error closing event tracking client", slog.String("error", err.Error()))
	}
}
