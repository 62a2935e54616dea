package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const mysqlSchema = `CREATE TABLE IF NOT EXISTS slots (
	namespace  VARCHAR(191) NOT NULL DEFAULT '',
	slot_key   VARCHAR(191) NOT NULL,
	value      LONGBLOB     NOT NULL,
	updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	PRIMARY KEY (namespace, slot_key)
)`

type MySQL struct {
	db *sql.DB
	ns string
}

// OpenMySQL connects with the given DSN, tunes the pool and makes sure the
// slots table exists.
func OpenMySQL(ctx context.Context, dsn, namespace string) (*MySQL, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql schema: %w", err)
	}
	return &MySQL{db: db, ns: namespace}, nil
}

func (s *MySQL) Close() error { return s.db.Close() }

func (s *MySQL) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM slots WHERE namespace=? AND slot_key=? LIMIT 1", s.ns, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mysql get %s: %w", key, err)
	}
	return v, nil
}

func (s *MySQL) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO slots (namespace, slot_key, value) VALUES (?,?,?) ON DUPLICATE KEY UPDATE value=VALUES(value)",
		s.ns, key, value,
	)
	if err != nil {
		return fmt.Errorf("mysql put %s: %w", key, err)
	}
	return nil
}

func (s *MySQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE namespace=? AND slot_key=?", s.ns, key)
	if err != nil {
		return fmt.Errorf("mysql delete %s: %w", key, err)
	}
	return nil
}
