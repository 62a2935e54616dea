package handler

import (
	"testing"
	"time"
)

func TestTodayIsUTC(t *testing.T) {
	quito := time.FixedZone("UTC-5", -5*60*60)
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"late evening west of UTC", time.Date(2030, 1, 1, 23, 30, 0, 0, quito), "2030-01-02"},
		{"early morning east of UTC", time.Date(2030, 1, 2, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60)), "2030-01-01"},
		{"already UTC", time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC), "2030-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{now: func() time.Time { return tt.now }}
			if got := h.today(); got != tt.want {
				t.Errorf("today() = %s, want %s", got, tt.want)
			}
		})
	}
}
