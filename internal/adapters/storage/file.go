package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"feedback-board/internal/domain"
	"feedback-board/internal/infra/metrics"
)

// DefaultFilePath задаёт путь к файлу отзывов относительно рабочего каталога.
const DefaultFilePath = "data/feedback.json"

// FileStore хранит отзывы одним JSON-документом на диске.
//
// Все операции внутри процесса сериализуются мьютексом, запись идёт через
// временный файл и rename, поэтому читатель не увидит недописанный документ.
// Несколько процессов над одним файлом по-прежнему могут потерять запись.
type FileStore struct {
	path  string
	mu    sync.Mutex
	newID func() string
}

var _ domain.FeedbackStore = (*FileStore)(nil)

// NewFileStore создаёт файловое хранилище.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, newID: uuid.NewString}
}

// Path возвращает путь к файлу.
func (s *FileStore) Path() string {
	return s.path
}

// ReadAll реализует domain.FeedbackStore. Отсутствующий файл читается как пустой список.
func (s *FileStore) ReadAll(ctx context.Context) ([]domain.FeedbackEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	start := time.Now()
	s.mu.Lock()
	entries, err := s.load()
	s.mu.Unlock()
	metrics.ObserveStorageRequest(BackendFile, "read_all", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return entries, nil
}

// Append реализует domain.FeedbackStore: новая запись становится первой.
func (s *FileStore) Append(ctx context.Context, author, message string) (domain.FeedbackEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("%w: %w", domain.ErrStorageWriteFailed, err)
	}
	start := time.Now()
	s.mu.Lock()
	entry, err := s.prepend(author, message)
	s.mu.Unlock()
	metrics.ObserveStorageRequest(BackendFile, "append", start, err)
	if err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("%w: %w", domain.ErrStorageWriteFailed, err)
	}
	return entry, nil
}

func (s *FileStore) prepend(author, message string) (domain.FeedbackEntry, error) {
	current, err := s.load()
	if err != nil {
		return domain.FeedbackEntry{}, err
	}
	entry := domain.FeedbackEntry{ID: s.newID(), Author: author, Message: message}
	updated := make([]domain.FeedbackEntry, 0, len(current)+1)
	updated = append(updated, entry)
	updated = append(updated, current...)
	if err := s.write(updated); err != nil {
		return domain.FeedbackEntry{}, err
	}
	return entry, nil
}

func (s *FileStore) load() ([]domain.FeedbackEntry, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.FeedbackEntry{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.FeedbackEntry{}, nil
	}
	var entries []domain.FeedbackEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if entries == nil {
		entries = []domain.FeedbackEntry{}
	}
	return entries, nil
}

func (s *FileStore) write(entries []domain.FeedbackEntry) error {
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".feedback-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(append(payload, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
