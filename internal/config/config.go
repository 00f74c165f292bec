// internal/config/config.go
package config

import "time"

type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Probe  ProbeConfig  `yaml:"probe"`

	// Optional secondary store; empty DSN disables the Postgres probe.
	PostgresDSN string `yaml:"postgres_dsn"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	AccessLog bool   `yaml:"access_log"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ProbeConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when nothing is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
		Probe:  ProbeConfig{Timeout: 5 * time.Second},
	}
}
