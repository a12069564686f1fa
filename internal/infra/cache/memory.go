package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"feedback-board/internal/domain"
)

// MemoryCache реализует domain.PageCache в памяти процесса.
type MemoryCache struct {
	store *ristretto.Cache[string, []byte]
}

var _ domain.PageCache = (*MemoryCache)(nil)

// NewMemory создаёт кэш ограниченного размера (maxBytes).
func NewMemory(maxBytes int64) (*MemoryCache, error) {
	if maxBytes <= 0 {
		maxBytes = 8 << 20
	}
	store, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e4,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto: %w", err)
	}
	return &MemoryCache{store: store}, nil
}

// Get возвращает значение или domain.ErrCacheMiss.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := c.store.Get(key)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return value, nil
}

// Set задаёт значение и дожидается, пока оно станет видимым для Get.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.SetWithTTL(key, value, int64(len(value)), ttl)
	c.store.Wait()
	return nil
}

// Delete удаляет значение.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.store.Del(key)
	return nil
}

// Close останавливает фоновые горутины ristretto.
func (c *MemoryCache) Close() {
	c.store.Close()
}
