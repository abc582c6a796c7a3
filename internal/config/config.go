package config

import (
	"os"
	"strconv"
	"time"

	"swapcore/internal/application"
	"swapcore/internal/domain"
	"swapcore/internal/infrastructure/watcher"
)

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port string
	// Operator API, one base URL per supported chain
	OperatorURLs map[domain.ChainID]string
	// Secondary price aggregator
	ZeroExURLs map[domain.ChainID]string
	// Quote engine
	SourceTimeout time.Duration
	// Order watcher
	WatcherPoll time.Duration
	// Redis (order snapshots)
	SnapshotBackend string
	SnapshotKey     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func durMS(key string, def time.Duration) time.Duration {
	ms := atoiDef(getEnv(key, ""), int(def/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", DefaultHTTPPort),
		OperatorURLs: map[domain.ChainID]string{
			domain.Mainnet: getEnv("OPERATOR_URL_MAINNET", "https://protocol-mainnet.gnosis.io/api"),
			domain.Rinkeby: getEnv("OPERATOR_URL_RINKEBY", "https://protocol-rinkeby.gnosis.io/api"),
			domain.XDai:    getEnv("OPERATOR_URL_XDAI", "https://protocol-xdai.gnosis.io/api"),
		},
		ZeroExURLs: map[domain.ChainID]string{
			domain.Mainnet: getEnv("ZEROEX_URL_MAINNET", "https://api.0x.org"),
		},
		SourceTimeout:   durMS("SOURCE_TIMEOUT_MS", application.DefaultSourceTimeout),
		WatcherPoll:     durMS("WATCHER_POLL_MS", watcher.DefaultPollInterval),
		SnapshotBackend: getEnv("SNAPSHOT_BACKEND", "none"), // or "redis"
		SnapshotKey:     getEnv("SNAPSHOT_KEY", "swapcore:orders"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         atoiDef(getEnv("REDIS_DB", "0"), 0),
	}
}
