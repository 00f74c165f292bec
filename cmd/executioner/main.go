// Package main запускает SentinelStream Executioner.
//
// При старте сервис один раз проверяет доступность Redis (и Postgres, если
// задан DSN) и печатает в stdout строку вида:
//
//	Sentinel-Java: Redis Connection [OK]
//
// Результат проверки не влияет на запуск: HTTP-сервер стартует в любом случае.
//
// Запуск:
//
//	go run ./cmd/executioner -addr :8080 -redis-addr localhost:6379
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/r2r72/sentinelstream-executioner/cmd/executioner/handlers"
	"github.com/r2r72/sentinelstream-executioner/internal/config"
	"github.com/r2r72/sentinelstream-executioner/internal/repository/pg"
	"github.com/r2r72/sentinelstream-executioner/internal/repository/redis"
	"github.com/r2r72/sentinelstream-executioner/internal/service/probe"
)

// serviceName — префикс строк probe в stdout.
const serviceName = "Sentinel-Java"

// 🔑 Compile-time check: адаптеры реализуют probe.ConnectionFactory
var (
	_ probe.ConnectionFactory = (*redis.ConnFactory)(nil)
	_ probe.ConnectionFactory = (*pg.ConnFactory)(nil)
	_ probe.ConnectionFactory = pg.BrokenFactory{}
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, nil); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}

	log.Println("✅ Executioner stopped")
}

// parseConfig собирает конфигурацию: defaults < YAML < env < флаги.
func parseConfig(args []string, lookup func(string) (string, bool)) (*config.Config, error) {
	fs := flag.NewFlagSet("executioner", flag.ContinueOnError)

	path := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "HTTP listen address")
	redisAddr := fs.String("redis-addr", "", "Redis host:port")
	redisPassword := fs.String("redis-password", "", "Redis password")
	redisDB := fs.Int("redis-db", 0, "Redis database number")
	postgresDSN := fs.String("postgres-dsn", "", "PostgreSQL DSN (empty disables the Postgres probe)")
	probeTimeout := fs.Duration("probe-timeout", 0, "Startup probe deadline (0 = none)")
	accessLog := fs.Bool("access-log", false, "Log every HTTP request")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	// Only flags given on the command line override.
	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "redis-addr":
			if err := cfg.SetRedisAddr(*redisAddr); err != nil {
				visitErr = err
			}
		case "redis-password":
			cfg.Redis.Password = *redisPassword
		case "redis-db":
			cfg.Redis.DB = *redisDB
		case "postgres-dsn":
			cfg.PostgresDSN = *postgresDSN
		case "probe-timeout":
			cfg.Probe.Timeout = *probeTimeout
		case "access-log":
			cfg.Server.AccessLog = *accessLog
		}
	})
	if visitErr != nil {
		return nil, visitErr
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run проверяет хранилища, затем обслуживает HTTP до отмены ctx.
// ready, если задан, получает фактический адрес слушателя.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer, ready func(addr string)) error {
	// === Инициализация зависимостей ===
	rdb := redis.NewClient(redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	targets := []probe.Target{
		{Name: "Redis", Factory: redis.NewConnFactory(rdb)},
	}

	if cfg.PostgresDSN != "" {
		db, err := pg.NewDB(cfg.PostgresDSN)
		if err != nil {
			targets = append(targets, probe.Target{Name: "Postgres", Factory: pg.BrokenFactory{Err: err}})
		} else {
			defer db.Close()
			targets = append(targets, probe.Target{Name: "Postgres", Factory: pg.NewConnFactory(db)})
		}
	}

	// === Startup probe (best-effort) ===
	probe.New(serviceName, stdout, cfg.Probe.Timeout).RunAll(ctx, targets...)

	// === Настройка HTTP-сервера ===
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}

	server := &http.Server{
		Handler:      handlers.NewRouter(handlers.Options{AccessLog: cfg.Server.AccessLog}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 Executioner started on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if ready != nil {
		ready(ln.Addr().String())
	}

	// === Graceful shutdown ===
	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Println("⏳ Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
