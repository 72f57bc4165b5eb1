// Package redis connects to the Redis instance that holds live battle
// snapshots. Repositories depend on Client so tests can hand them a
// miniredis-backed connection instead.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories are written against
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of a missing key
const Nil = redis.Nil

// IsNil reports whether err means the key does not exist
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

const defaultPingTimeout = 2 * time.Second

// Settings locate the server. Addr is either host:port or a
// redis:// or rediss:// URL; a URL wins over Password, DB and TLS.
type Settings struct {
	Addr     string
	Password string
	DB       int
	TLS      bool

	PoolSize    int
	DialTimeout time.Duration
	// PingTimeout bounds Connect's health check; zero uses two seconds
	PingTimeout time.Duration
}

func (s Settings) options() (*redis.Options, error) {
	if s.Addr == "" {
		return nil, errors.New("redis: address is required")
	}

	if strings.HasPrefix(s.Addr, "redis://") || strings.HasPrefix(s.Addr, "rediss://") {
		opts, err := redis.ParseURL(s.Addr)
		if err != nil {
			return nil, fmt.Errorf("redis: invalid url: %w", err)
		}
		opts.PoolSize = s.PoolSize
		opts.DialTimeout = s.DialTimeout
		return opts, nil
	}

	opts := &redis.Options{
		Addr:        s.Addr,
		Password:    s.Password,
		DB:          s.DB,
		PoolSize:    s.PoolSize,
		DialTimeout: s.DialTimeout,
	}
	if s.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

// NewClient builds a client without touching the network
func NewClient(s Settings) (Client, error) {
	opts, err := s.options()
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// Connect builds a client and pings it. The client is closed when the
// ping fails.
func Connect(ctx context.Context, s Settings) (Client, error) {
	client, err := NewClient(s)
	if err != nil {
		return nil, err
	}

	timeout := s.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", s.Addr, err)
	}
	return client, nil
}
