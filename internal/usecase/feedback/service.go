package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"feedback-board/internal/domain"
)

// BoardPageKey задаёт ключ кэша отрендеренной доски.
const BoardPageKey = "/"

var validate = validator.New()

// ValidationError содержит сообщение для пользователя.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap позволяет проверять ошибку через errors.Is(err, domain.ErrValidation).
func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// Input содержит отзыв после нормализации.
type Input struct {
	Author  string `validate:"required"`
	Message string `validate:"required"`
}

var requiredMessages = map[string]string{
	"Author":  "Author is required",
	"Message": "Message is required",
}

// Normalize обрезает пробелы и проверяет, что оба поля заполнены.
// Используется и формой, и JSON API.
func Normalize(author, message string) (Input, error) {
	in := Input{
		Author:  strings.TrimSpace(author),
		Message: strings.TrimSpace(message),
	}
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := fieldErrs[0].Field()
			return Input{}, &ValidationError{Field: strings.ToLower(field), Message: requiredMessages[field]}
		}
		return Input{}, fmt.Errorf("validate feedback: %w", err)
	}
	return in, nil
}

// Service связывает проверку ввода, хранилище и кэш страниц.
type Service struct {
	store    domain.FeedbackStore
	cache    domain.PageCache
	cacheTTL time.Duration
	log      zerolog.Logger

	// gen растёт при каждой инвалидации страницы.
	gen atomic.Uint64
}

// NewService создаёт сервис отзывов. cache может быть nil.
func NewService(store domain.FeedbackStore, cache domain.PageCache, cacheTTL time.Duration, logger zerolog.Logger) *Service {
	return &Service{store: store, cache: cache, cacheTTL: cacheTTL, log: logger}
}

// List возвращает все отзывы, новые первыми.
func (s *Service) List(ctx context.Context) ([]domain.FeedbackEntry, error) {
	return s.store.ReadAll(ctx)
}

// Submit проверяет ввод и сохраняет отзыв. При ошибке проверки
// хранилище не вызывается.
func (s *Service) Submit(ctx context.Context, author, message string) (domain.FeedbackEntry, error) {
	in, err := Normalize(author, message)
	if err != nil {
		return domain.FeedbackEntry{}, err
	}
	entry, err := s.store.Append(ctx, in.Author, in.Message)
	if err != nil {
		return domain.FeedbackEntry{}, err
	}
	s.InvalidatePage(ctx, BoardPageKey)
	s.log.Debug().Str("id", entry.ID).Msg("feedback: saved")
	return entry, nil
}

// CachedPage возвращает закэшированную страницу.
func (s *Service) CachedPage(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("key", key).Msg("feedback: page cache read failed")
		}
		return nil, false
	}
	return data, true
}

// PageGeneration возвращает текущее поколение кэша страниц.
// Снимается до чтения хранилища и передаётся в StorePage.
func (s *Service) PageGeneration() uint64 {
	return s.gen.Load()
}

// StorePage кладёт отрендеренную страницу в кэш, если с момента снятия gen
// страница не инвалидировалась. Иначе страница могла быть собрана до новой
// записи и не сохраняется.
func (s *Service) StorePage(ctx context.Context, key string, page []byte, gen uint64) {
	if s.cache == nil || s.gen.Load() != gen {
		return
	}
	if err := s.cache.Set(ctx, key, page, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("feedback: page cache write failed")
		return
	}
	// инвалидация могла пройти между проверкой и Set
	if s.gen.Load() != gen {
		s.dropPage(ctx, key)
	}
}

// InvalidatePage сбрасывает закэшированную страницу.
func (s *Service) InvalidatePage(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	s.gen.Add(1)
	s.dropPage(ctx, key)
}

func (s *Service) dropPage(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("feedback: page cache invalidation failed")
	}
}
