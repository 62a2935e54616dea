package events

import (
	"testing"
	"time"
)

func TestKafkaWriterDoesNotWaitForBatch(t *testing.T) {
	p := NewKafka([]string{"localhost:9092"}, "appointments")
	defer p.Close()

	if p.w.BatchTimeout <= 0 || p.w.BatchTimeout > 10*time.Millisecond {
		t.Errorf("BatchTimeout = %v, want at most 10ms", p.w.BatchTimeout)
	}
	if p.w.Async {
		t.Error("writer is async; publish errors would be lost")
	}
}
