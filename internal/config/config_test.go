package config_test

import (
	"testing"
	"time"

	"medical-booking/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GRPCPort != "50051" {
		t.Errorf("grpc port: got %s", cfg.GRPCPort)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("storage driver: got %s", cfg.Storage.Driver)
	}
	if cfg.Directory.Latency != 500*time.Millisecond {
		t.Errorf("latency: got %v", cfg.Directory.Latency)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "redis" {
		t.Errorf("storage driver: got %s", cfg.Storage.Driver)
	}
	if cfg.RateLimit.Burst != 3 {
		t.Errorf("burst: got %d", cfg.RateLimit.Burst)
	}
}

func TestBrokers(t *testing.T) {
	e := config.Events{KafkaBrokers: "a:9092, b:9092,,"}
	got := e.Brokers()
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Errorf("brokers: got %v", got)
	}
}
