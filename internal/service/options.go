package service

import (
	"time"

	"github.com/google/uuid"
)

type options struct {
	now     func() time.Time
	newID   func() string
	latency time.Duration
}

type Option func(*options)

// WithClock replaces time.Now for creation stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDs replaces the id generator.
func WithIDs(gen func() string) Option {
	return func(o *options) { o.newID = gen }
}

// WithLatency delays the directory's register, login and profile update calls,
// standing in for the round trip to a remote directory.
func WithLatency(d time.Duration) Option {
	return func(o *options) { o.latency = d }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: newID}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// newID returns a UUIDv7: time ordered like the old millisecond ids, but
// unique across concurrent writers.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
