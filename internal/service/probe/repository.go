// Package probe defines the connection contract a probe target must satisfy.
package probe

import "context"

// ConnectionFactory hands out live connections to an external store.
// Implemented by redis.ConnFactory and pg.ConnFactory.
type ConnectionFactory interface {
	Conn(ctx context.Context) (Conn, error)
}

// Conn is a single connection borrowed from a ConnectionFactory.
type Conn interface {
	Ping(ctx context.Context) error
	Close() error
}
