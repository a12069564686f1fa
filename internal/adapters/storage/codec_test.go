package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"feedback-board/internal/domain"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	entry := domain.FeedbackEntry{ID: "0b6c3f1e", Author: "Ada \"Countess\"", Message: "Привет\nмир"}
	text, err := encodeEntry(entry)
	require.NoError(t, err)

	decoded, err := decodeEntry(text)
	require.NoError(t, err)
	require.Equal(t, entry, decoded)

	decoded, err = decodeEntry([]byte(text))
	require.NoError(t, err)
	require.Equal(t, entry, decoded)
}

func TestDecodeStructuredValues(t *testing.T) {
	want := domain.FeedbackEntry{ID: "1", Author: "Ada", Message: "Hi"}

	got, err := decodeEntry(map[string]any{"id": "1", "author": "Ada", "message": "Hi"})
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = decodeEntry(map[any]any{"id": "1", "author": "Ada", "message": "Hi"})
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = decodeEntry(want)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecodeRejectsUnexpectedShapes(t *testing.T) {
	_, err := decodeEntry(42)
	require.Error(t, err)

	_, err = decodeEntry(map[string]any{"id": 7})
	require.Error(t, err)

	_, err = decodeEntry("[1,2]")
	require.Error(t, err)
}
