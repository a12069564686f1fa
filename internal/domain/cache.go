package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается, когда ключа нет в кэше.
var ErrCacheMiss = errors.New("cache miss")

// PageCache хранит отрендеренные страницы.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
