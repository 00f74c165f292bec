package probe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// ---- fakes ----

type fakeConn struct {
	pingErr error
	block   bool
	closed  *atomic.Int32
}

func (c *fakeConn) Ping(ctx context.Context) error {
	if c.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return c.pingErr
}

func (c *fakeConn) Close() error {
	c.closed.Add(1)
	return nil
}

type fakeFactory struct {
	connErr error
	pingErr error
	block   bool
	panics  bool
	calls   atomic.Int32
	closed  atomic.Int32
}

func (f *fakeFactory) Conn(ctx context.Context) (Conn, error) {
	f.calls.Add(1)
	if f.panics {
		panic("boom")
	}
	if f.connErr != nil {
		return nil, f.connErr
	}
	return &fakeConn{pingErr: f.pingErr, block: f.block, closed: &f.closed}, nil
}

// ---- tests ----

func TestLine(t *testing.T) {
	if got := Line("Sentinel-Java", "Redis", true); got != "Sentinel-Java: Redis Connection [OK]" {
		t.Fatalf("unexpected ok line: %q", got)
	}
	if got := Line("Sentinel-Java", "Redis", false); got != "Sentinel-Java: Redis Connection [FAIL]" {
		t.Fatalf("unexpected fail line: %q", got)
	}
}

func TestRun(t *testing.T) {
	refused := errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

	tests := []struct {
		name    string
		factory *fakeFactory
		wantOK  bool
		wantErr error
	}{
		{name: "reachable", factory: &fakeFactory{}, wantOK: true},
		{name: "acquire fails", factory: &fakeFactory{connErr: refused}, wantErr: ErrAcquire},
		{name: "ping fails", factory: &fakeFactory{pingErr: errors.New("NOAUTH")}, wantErr: ErrPing},
		{name: "factory panics", factory: &fakeFactory{panics: true}, wantErr: ErrFactoryBug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New("Sentinel-Java", &out, time.Second)
			target := Target{Name: "Redis", Factory: tt.factory}

			ok := p.Run(context.Background(), target)
			if ok != tt.wantOK {
				t.Fatalf("Run() = %v, want %v", ok, tt.wantOK)
			}

			want := Line("Sentinel-Java", "Redis", tt.wantOK) + "\n"
			if out.String() != want {
				t.Fatalf("output = %q, want %q", out.String(), want)
			}

			if tt.factory.calls.Load() != 1 {
				t.Fatalf("factory called %d times, want exactly 1", tt.factory.calls.Load())
			}

			err := p.Check(context.Background(), target)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Check() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Check() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_ClosesConnection(t *testing.T) {
	f := &fakeFactory{pingErr: errors.New("ping failed")}
	p := New("Sentinel-Java", &bytes.Buffer{}, 0)

	p.Run(context.Background(), Target{Name: "Redis", Factory: f})

	if f.closed.Load() != 1 {
		t.Fatalf("connection closed %d times, want 1", f.closed.Load())
	}
}

func TestRun_TimeoutBoundsHungStore(t *testing.T) {
	var out bytes.Buffer
	p := New("Sentinel-Java", &out, 20*time.Millisecond)

	start := time.Now()
	ok := p.Run(context.Background(), Target{Name: "Redis", Factory: &fakeFactory{block: true}})
	if ok {
		t.Fatalf("expected failure on hung store")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("probe not bounded by timeout: %v", elapsed)
	}
	if !strings.HasSuffix(out.String(), "[FAIL]\n") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRun_NilFactory(t *testing.T) {
	var out bytes.Buffer
	p := New("Sentinel-Java", &out, time.Second)

	if p.Run(context.Background(), Target{Name: "Redis"}) {
		t.Fatalf("expected failure without factory")
	}
	if out.String() != "Sentinel-Java: Redis Connection [FAIL]\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunAll(t *testing.T) {
	var out bytes.Buffer
	p := New("Sentinel-Java", &out, time.Second)

	passed := p.RunAll(context.Background(),
		Target{Name: "Redis", Factory: &fakeFactory{}},
		Target{Name: "Postgres", Factory: &fakeFactory{connErr: errors.New("refused")}},
	)
	if passed != 1 {
		t.Fatalf("passed = %d, want 1", passed)
	}

	want := "Sentinel-Java: Redis Connection [OK]\n" +
		"Sentinel-Java: Postgres Connection [FAIL]\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}
