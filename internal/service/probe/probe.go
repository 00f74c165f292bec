// Package probe provides best-effort connectivity checks run once at startup.
package probe

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"
)

// Prober checks targets and reports each outcome as one console line.
type Prober struct {
	service string
	out     io.Writer
	timeout time.Duration
}

// New creates a Prober.
// service is the line prefix; timeout <= 0 means the caller's context is the only bound.
func New(service string, out io.Writer, timeout time.Duration) *Prober {
	return &Prober{service: service, out: out, timeout: timeout}
}

// Check acquires a connection from the target, pings it and releases it.
func (p *Prober) Check(ctx context.Context, t Target) (err error) {
	if t.Factory == nil {
		return ErrNoFactory
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFactoryBug, r)
		}
	}()

	conn, err := t.Factory.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	defer conn.Close()

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPing, err)
	}
	return nil
}

// Run checks the target and prints exactly one line: [OK] or [FAIL].
// Failures are logged and swallowed; nothing is retried or stored.
func (p *Prober) Run(ctx context.Context, t Target) bool {
	err := p.Check(ctx, t)
	if err != nil {
		log.Printf("⚠️ %s probe failed: %v", t.Name, err)
	}

	fmt.Fprintln(p.out, Line(p.service, t.Name, err == nil))
	return err == nil
}

// RunAll runs every target in order and reports how many passed.
func (p *Prober) RunAll(ctx context.Context, targets ...Target) int {
	passed := 0
	for _, t := range targets {
		if p.Run(ctx, t) {
			passed++
		}
	}
	return passed
}
