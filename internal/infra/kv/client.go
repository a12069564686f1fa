package kv

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPort = "6379"

// Options строит настройки клиента Redis из адреса и токена.
//
// Поддерживаются redis:// и rediss:// URL, REST-адреса https://host
// (используется TLS-подключение к тому же хосту) и голый host:port.
// Токен используется как пароль, если в URL он не задан.
//
// Для https:// адреса клиент ходит по протоколу RESP на host:6379, а не в
// REST API. Это работает только у провайдеров, которые принимают REST-токен
// как пароль RESP-подключения (Upstash так делает). Если провайдер выдаёт
// отдельный пароль Redis, задайте rediss://default:<пароль>@host:port.
func Options(endpoint, token string) (*redis.Options, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("kv: endpoint is empty")
	}
	var opts *redis.Options
	switch {
	case strings.HasPrefix(endpoint, "redis://"), strings.HasPrefix(endpoint, "rediss://"):
		parsed, err := redis.ParseURL(endpoint)
		if err != nil {
			return nil, fmt.Errorf("kv: parse url: %w", err)
		}
		opts = parsed
	case strings.HasPrefix(endpoint, "https://"), strings.HasPrefix(endpoint, "http://"):
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("kv: parse url: %w", err)
		}
		if u.Hostname() == "" {
			return nil, fmt.Errorf("kv: no host in %q", endpoint)
		}
		opts = &redis.Options{Addr: net.JoinHostPort(u.Hostname(), defaultPort)}
		if u.Scheme == "https" {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12, ServerName: u.Hostname()}
		}
	default:
		addr := endpoint
		if _, _, err := net.SplitHostPort(addr); err != nil {
			addr = net.JoinHostPort(addr, defaultPort)
		}
		opts = &redis.Options{Addr: addr}
	}
	if opts.Password == "" {
		opts.Password = strings.TrimSpace(token)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return opts, nil
}

// Connect создаёт клиента Redis. Соединение устанавливается лениво.
func Connect(endpoint, token string) (*redis.Client, error) {
	opts, err := Options(endpoint, token)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
