// internal/repository/pg/db.go
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/r2r72/sentinelstream-executioner/internal/service/probe"
)

// NewDB создаёт пул подключений к PostgreSQL.
// Пул ленивый: соединения открываются при первом Acquire, поэтому
// недоступная база не мешает старту сервиса.
func NewDB(dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Executioner only probes the database at startup.
	poolConfig.MaxConns = 2
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	if poolConfig.ConnConfig.ConnectTimeout == 0 {
		poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	return pool, nil
}

// ConnFactory выдаёт соединения из pgxpool.
type ConnFactory struct {
	db *pgxpool.Pool
}

func NewConnFactory(db *pgxpool.Pool) *ConnFactory {
	return &ConnFactory{db: db}
}

func (f *ConnFactory) Conn(ctx context.Context) (probe.Conn, error) {
	c, err := f.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &conn{c: c}, nil
}

type conn struct {
	c *pgxpool.Conn
}

func (c *conn) Ping(ctx context.Context) error {
	return c.c.Ping(ctx)
}

func (c *conn) Close() error {
	c.c.Release()
	return nil
}

// BrokenFactory reports a fixed error on every Conn call.
// Used when the pool could not be built so the probe still prints [FAIL].
type BrokenFactory struct {
	Err error
}

func (f BrokenFactory) Conn(context.Context) (probe.Conn, error) {
	return nil, f.Err
}
