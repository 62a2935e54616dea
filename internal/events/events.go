// Package events announces appointment changes to other systems.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"medical-booking/internal/config"
)

type Type string

const (
	AppointmentBooked    Type = "appointment.booked"
	AppointmentCancelled Type = "appointment.cancelled"
)

type Event struct {
	Type          Type      `json:"type"`
	AppointmentID string    `json:"appointmentId"`
	UserID        string    `json:"userId"`
	Date          string    `json:"date,omitempty"`
	Time          string    `json:"time,omitempty"`
	Specialty     string    `json:"specialty,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Publisher delivers events. Callers log failures and carry on; a lost
// event never fails the request that caused it.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// New picks the publisher named by cfg.Driver.
func New(cfg config.Events, log *slog.Logger) (Publisher, error) {
	switch cfg.Driver {
	case "", "log":
		return NewLog(log), nil
	case "amqp":
		return DialAMQP(cfg.AMQPURL, cfg.Queue)
	case "kafka":
		return NewKafka(cfg.Brokers(), cfg.KafkaTopic), nil
	}
	return nil, fmt.Errorf("events: unknown driver %q", cfg.Driver)
}

type logPublisher struct{ log *slog.Logger }

// NewLog writes events to the logger and nowhere else.
func NewLog(log *slog.Logger) Publisher {
	return logPublisher{log: log}
}

func (p logPublisher) Publish(ctx context.Context, e Event) error {
	p.log.InfoContext(ctx, "event",
		"type", e.Type,
		"appointment", e.AppointmentID,
		"user", e.UserID,
		"date", e.Date,
		"time", e.Time,
	)
	return nil
}

func (logPublisher) Close() error { return nil }
