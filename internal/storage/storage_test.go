package storage_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"medical-booking/internal/config"
	"medical-booking/internal/logging"
	"medical-booking/internal/storage"
)

// exercise runs the same checks against any backend.
func exercise(t *testing.T, s storage.Slots) {
	t.Helper()
	ctx := context.Background()

	v, err := s.Get(ctx, storage.KeyUsers)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil for missing slot, got %q", v)
	}

	if err := s.Put(ctx, storage.KeyUsers, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, storage.KeyUsers, []byte(`[{"id":"2"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, err = s.Get(ctx, storage.KeyUsers)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(v) != `[{"id": "2"}]` && string(v) != `[{"id":"2"}]` {
		t.Errorf("unexpected value %q", v)
	}

	if err := s.Delete(ctx, storage.KeyUsers); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, storage.KeyUsers); err != nil {
		t.Fatalf("delete twice: %v", err)
	}
	if v, _ := s.Get(ctx, storage.KeyUsers); v != nil {
		t.Errorf("expected deleted slot, got %q", v)
	}
}

func TestMemory(t *testing.T) {
	exercise(t, storage.NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	in := []byte("[]")
	m.Put(ctx, storage.KeyAppointments, in)
	in[0] = 'x'

	out, _ := m.Get(ctx, storage.KeyAppointments)
	if string(out) != "[]" {
		t.Fatalf("stored value aliased caller slice: %q", out)
	}
	out[0] = 'y'
	again, _ := m.Get(ctx, storage.KeyAppointments)
	if string(again) != "[]" {
		t.Fatalf("returned value aliased storage: %q", again)
	}
}

func TestPostgres(t *testing.T) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := storage.Migrate(pool, logging.Discard()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	exercise(t, storage.NewPostgres(pool, "test-"+uuid.New().String()[:8]))
}

func TestMySQL(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set")
	}
	s, err := storage.OpenMySQL(context.Background(), dsn, "test-"+uuid.New().String()[:8])
	if err != nil {
		t.Fatalf("mysql: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	exercise(t, s)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	exercise(t, storage.NewRedis(rdb, fmt.Sprintf("test-%s", uuid.New().String()[:8])))
}

func TestOpenMemoryAndUnknown(t *testing.T) {
	ctx := context.Background()
	s, closeFn, err := storage.Open(ctx, config.Storage{Driver: "memory"}, logging.Discard())
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	defer closeFn()
	exercise(t, s)

	if _, _, err := storage.Open(ctx, config.Storage{Driver: "floppy"}, logging.Discard()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if _, _, err := storage.Open(ctx, config.Storage{Driver: "s3"}, logging.Discard()); err == nil {
		t.Fatal("expected error for s3 without bucket")
	}
}
