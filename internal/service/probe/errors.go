// Package probe defines probe errors.
package probe

import "errors"

var (
	ErrAcquire    = errors.New("acquire connection")
	ErrPing       = errors.New("ping")
	ErrNoFactory  = errors.New("no connection factory")
	ErrFactoryBug = errors.New("connection factory panicked")
)
