package store

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	upstashUser = "default"
	redisPort   = "6379"
)

// ClientOptions derives go-redis options from the store endpoint and token.
// An https:// URL is an Upstash REST endpoint; the same database speaks the
// Redis protocol over TLS on port 6379 with the REST token as password.
// redis:// and rediss:// URLs are used as given, with token filling an empty
// password.
func ClientOptions(rawURL, token string, dialTimeout time.Duration) (*redis.Options, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}

	var opts *redis.Options
	switch u.Scheme {
	case "https":
		if u.Hostname() == "" {
			return nil, fmt.Errorf("invalid store url %q: missing host", rawURL)
		}
		port := u.Port()
		if port == "" || port == "443" {
			port = redisPort
		}
		opts = &redis.Options{
			Addr:      net.JoinHostPort(u.Hostname(), port),
			Username:  upstashUser,
			Password:  token,
			TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: u.Hostname()},
		}
	case "redis", "rediss":
		opts, err = redis.ParseURL(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid store url: %w", err)
		}
		if opts.Password == "" {
			opts.Password = token
		}
	default:
		return nil, fmt.Errorf("unsupported store url scheme %q", u.Scheme)
	}

	if dialTimeout > 0 {
		opts.DialTimeout = dialTimeout
	}
	return opts, nil
}

// NewClient creates a Redis client for the configured store. The connection
// is established lazily on the first command.
func NewClient(rawURL, token string, dialTimeout time.Duration) (*redis.Client, error) {
	opts, err := ClientOptions(rawURL, token, dialTimeout)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
