package config

// Redis backs the distributed rate limiter on the booking endpoints and
// the response cache on the public event catalogue.  Both are optional:
// when no Redis connection can be established at startup the constructor
// returns nil and the middleware runs in pass-through mode.

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from the environment.  REDIS_URL
// (redis:// or rediss://) takes precedence; otherwise the address is
// assembled from REDIS_HOST/REDIS_PORT or REDIS_ADDR, with REDIS_PASSWORD,
// REDIS_DB and REDIS_TLS applied on top.  Returns nil when the initial
// ping fails.
func NewRedisClient() *redis.Client {
	opts, err := optionsFromEnv()
	if err != nil {
		return nil
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func optionsFromEnv() (*redis.Options, error) {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return redis.ParseURL(url)
	}

	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}

	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}

	opts := &redis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          dbNum,
		DialTimeout: 2 * time.Second,
	}
	if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}
