package events_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"medical-booking/internal/config"
	"medical-booking/internal/events"
	"medical-booking/internal/logging"
)

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := events.NewLog(logging.NewWriter(&buf, "info", "text"))

	err := p.Publish(context.Background(), events.Event{
		Type:          events.AppointmentBooked,
		AppointmentID: "a1",
		UserID:        "u1",
		OccurredAt:    time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"type=appointment.booked", "appointment=a1", "user=u1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
}

func TestNew(t *testing.T) {
	log := logging.Discard()

	p, err := events.New(config.Events{Driver: "log"}, log)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	k, err := events.New(config.Events{Driver: "kafka", KafkaBrokers: "localhost:9092", KafkaTopic: "t"}, log)
	if err != nil {
		t.Fatalf("kafka writer is lazy and should not fail: %v", err)
	}
	k.Close()

	if _, err := events.New(config.Events{Driver: "carrier-pigeon"}, log); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
