// internal/repository/redis/client.go
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/r2r72/sentinelstream-executioner/internal/service/probe"
)

// Options — параметры подключения к Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient создаёт клиент Redis.
// Соединение не открывается: первое обращение к серверу происходит при probe.
func NewClient(opts Options) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	})
}

// ConnFactory выдаёт соединения из пула go-redis.
type ConnFactory struct {
	client *goredis.Client
}

func NewConnFactory(client *goredis.Client) *ConnFactory {
	return &ConnFactory{client: client}
}

// Conn берёт выделенное соединение из пула.
// Реальный dial происходит при первой команде, поэтому ошибки подключения
// всплывают из Ping.
func (f *ConnFactory) Conn(ctx context.Context) (probe.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &conn{c: f.client.Conn()}, nil
}

type conn struct {
	c *goredis.Conn
}

func (c *conn) Ping(ctx context.Context) error {
	return c.c.Ping(ctx).Err()
}

func (c *conn) Close() error {
	return c.c.Close()
}
