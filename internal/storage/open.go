package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"medical-booking/internal/config"
)

// Open builds the Slots backend named by cfg.Driver. The returned func
// releases whatever connections the backend holds.
func Open(ctx context.Context, cfg config.Storage, log *slog.Logger) (Slots, func(), error) {
	switch cfg.Driver {
	case "", "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		return NewMemory(), func() {}, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		log.Info("connected to postgres")
		if err := Migrate(pool, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return NewPostgres(pool, cfg.Namespace), pool.Close, nil

	case "mysql":
		s, err := OpenMySQL(ctx, cfg.MySQLDSN, cfg.Namespace)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to mysql")
		return s, func() { s.Close() }, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rdb.Ping(pctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info("connected to redis", "addr", cfg.RedisAddr)
		return NewRedis(rdb, cfg.Namespace), func() { rdb.Close() }, nil

	case "s3":
		if cfg.S3Bucket == "" {
			return nil, nil, fmt.Errorf("s3 storage needs S3_BUCKET")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) { o.UsePathStyle = true })
		log.Info("using s3 storage", "bucket", cfg.S3Bucket)
		return NewS3(client, cfg.S3Bucket, cfg.Namespace), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
