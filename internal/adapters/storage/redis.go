package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"feedback-board/internal/domain"
	"feedback-board/internal/infra/metrics"
)

// DefaultListKey задаёт ключ списка отзывов в Redis.
const DefaultListKey = "feedback"

// RedisStore хранит отзывы в списке Redis: LPUSH кладёт запись в голову,
// поэтому LRANGE 0 -1 сразу отдаёт порядок "новые первыми".
type RedisStore struct {
	client *redis.Client
	key    string
	newID  func() string
}

var _ domain.FeedbackStore = (*RedisStore)(nil)

// NewRedisStore создаёт хранилище по указанному ключу.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultListKey
	}
	return &RedisStore{client: client, key: key, newID: uuid.NewString}
}

// ReadAll реализует domain.FeedbackStore одним LRANGE.
func (s *RedisStore) ReadAll(ctx context.Context) ([]domain.FeedbackEntry, error) {
	start := time.Now()
	values, err := s.client.Do(ctx, "LRANGE", s.key, 0, -1).Slice()
	if errors.Is(err, redis.Nil) {
		values, err = nil, nil
	}
	metrics.ObserveStorageRequest(BackendRedis, "read_all", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: lrange %s: %w", domain.ErrStorageUnavailable, s.key, err)
	}
	entries := make([]domain.FeedbackEntry, 0, len(values))
	for i, raw := range values {
		entry, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", domain.ErrStorageUnavailable, i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Append реализует domain.FeedbackStore одним LPUSH.
func (s *RedisStore) Append(ctx context.Context, author, message string) (domain.FeedbackEntry, error) {
	entry := domain.FeedbackEntry{ID: s.newID(), Author: author, Message: message}
	payload, err := encodeEntry(entry)
	if err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("%w: %w", domain.ErrStorageWriteFailed, err)
	}
	start := time.Now()
	err = s.client.LPush(ctx, s.key, payload).Err()
	metrics.ObserveStorageRequest(BackendRedis, "append", start, err)
	if err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("%w: lpush %s: %w", domain.ErrStorageWriteFailed, s.key, err)
	}
	return entry, nil
}

func encodeEntry(entry domain.FeedbackEntry) (string, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("marshal entry: %w", err)
	}
	return string(payload), nil
}

// decodeEntry принимает значение из списка либо как JSON-текст,
// либо как уже разобранную структуру.
func decodeEntry(raw any) (domain.FeedbackEntry, error) {
	switch v := raw.(type) {
	case string:
		return decodeText([]byte(v))
	case []byte:
		return decodeText(v)
	case domain.FeedbackEntry:
		return v, nil
	case map[string]any:
		return entryFromFields(func(name string) (any, bool) {
			val, ok := v[name]
			return val, ok
		})
	case map[any]any:
		return entryFromFields(func(name string) (any, bool) {
			val, ok := v[name]
			return val, ok
		})
	default:
		return domain.FeedbackEntry{}, fmt.Errorf("unexpected value type %T", raw)
	}
}

func decodeText(data []byte) (domain.FeedbackEntry, error) {
	var entry domain.FeedbackEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("decode entry: %w", err)
	}
	return entry, nil
}

func entryFromFields(field func(name string) (any, bool)) (domain.FeedbackEntry, error) {
	var entry domain.FeedbackEntry
	targets := []struct {
		name string
		dst  *string
	}{
		{"id", &entry.ID},
		{"author", &entry.Author},
		{"message", &entry.Message},
	}
	for _, target := range targets {
		val, ok := field(target.name)
		if !ok {
			continue
		}
		str, ok := val.(string)
		if !ok {
			return domain.FeedbackEntry{}, fmt.Errorf("field %s: unexpected type %T", target.name, val)
		}
		*target.dst = str
	}
	return entry, nil
}
