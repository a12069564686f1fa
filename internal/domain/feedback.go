package domain

import (
	"context"
	"errors"
)

var (
	// ErrValidation: обязательное поле пустое или тело запроса некорректно.
	ErrValidation = errors.New("validation failed")
	// ErrStorageUnavailable: хранилище отзывов не удалось прочитать.
	ErrStorageUnavailable = errors.New("feedback storage unavailable")
	// ErrStorageWriteFailed: хранилище отклонило запись.
	ErrStorageWriteFailed = errors.New("feedback storage write failed")
)

// FeedbackEntry представляет одну запись на доске отзывов.
type FeedbackEntry struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Message string `json:"message"`
}

// FeedbackStore хранит отзывы в порядке "новые первыми".
type FeedbackStore interface {
	ReadAll(ctx context.Context) ([]FeedbackEntry, error)
	Append(ctx context.Context, author, message string) (FeedbackEntry, error)
}
