package storage

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"feedback-board/internal/domain"
	"feedback-board/internal/infra/config"
	"feedback-board/internal/infra/kv"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Backend описывает хранилище, выбранное при старте процесса.
type Backend struct {
	Kind  string
	Store domain.FeedbackStore
	// Redis заполнен только для удалённого хранилища.
	Redis *redis.Client
}

// Close освобождает соединения выбранного хранилища.
func (b Backend) Close() error {
	if b.Redis != nil {
		return b.Redis.Close()
	}
	return nil
}

// FilePath возвращает путь к файлу отзывов или пустую строку для Redis.
func (b Backend) FilePath() string {
	if fs, ok := b.Store.(*FileStore); ok {
		return fs.Path()
	}
	return ""
}

// Open выбирает хранилище: список Redis, если заданы и адрес, и токен,
// иначе JSON-файл по filePath. Выбор не меняется до конца жизни процесса.
func Open(remote config.RemoteConfig, filePath string) (Backend, error) {
	if !remote.Enabled() {
		if filePath == "" {
			filePath = DefaultFilePath
		}
		return Backend{Kind: BackendFile, Store: NewFileStore(filePath)}, nil
	}
	client, err := kv.Connect(remote.Endpoint(), remote.Token())
	if err != nil {
		return Backend{}, fmt.Errorf("connect remote store: %w", err)
	}
	return Backend{
		Kind:  BackendRedis,
		Store: NewRedisStore(client, DefaultListKey),
		Redis: client,
	}, nil
}
