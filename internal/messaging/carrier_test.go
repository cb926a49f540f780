package messaging

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestMessageCarrier(t *testing.T) {
	msg := &kafka.Message{}
	carrier := NewMessageCarrier(msg)

	if got := carrier.Get("traceparent"); got != "" {
		t.Errorf("expected empty value for missing key, got %q", got)
	}

	carrier.Set("traceparent", "00-abc-def-01")
	if got := carrier.Get("traceparent"); got != "00-abc-def-01" {
		t.Errorf("unexpected value %q", got)
	}

	carrier.Set("traceparent", "00-abc-def-02")
	if got := carrier.Get("traceparent"); got != "00-abc-def-02" {
		t.Errorf("expected overwritten value, got %q", got)
	}
	if len(msg.Headers) != 1 {
		t.Errorf("expected a single header after overwrite, got %d", len(msg.Headers))
	}

	carrier.Set("baggage", "k=v")
	keys := carrier.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected two keys, got %d", len(keys))
	}
}
