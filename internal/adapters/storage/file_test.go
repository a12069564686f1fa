package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"feedback-board/internal/domain"
)

func newTempFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "data", "feedback.json"))
}

func TestFileStoreReadAllMissingFileIsEmpty(t *testing.T) {
	store := newTempFileStore(t)
	entries, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestFileStoreReadAllBlankFileIsEmpty(t *testing.T) {
	store := newTempFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("  \n"), 0o644))

	entries, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFileStoreAppendThenReadReturnsEntryFirst(t *testing.T) {
	ctx := context.Background()
	store := newTempFileStore(t)

	first, err := store.Append(ctx, "Ada", "Hi")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	second, err := store.Append(ctx, "Grace", "Hello")
	require.NoError(t, err)

	entries, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.FeedbackEntry{second, first}, entries)
}

func TestFileStoreIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	store := newTempFileStore(t)
	seen := make(map[string]struct{})
	for i := 0; i < 25; i++ {
		entry, err := store.Append(ctx, "author", fmt.Sprintf("message %d", i))
		require.NoError(t, err)
		_, dup := seen[entry.ID]
		require.False(t, dup, "duplicate id %s", entry.ID)
		seen[entry.ID] = struct{}{}
	}
}

func TestFileStorePersistedLayout(t *testing.T) {
	ctx := context.Background()
	store := newTempFileStore(t)
	_, err := store.Append(ctx, "Ada", "Hi")
	require.NoError(t, err)
	_, err = store.Append(ctx, "Grace", "Hello")
	require.NoError(t, err)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var objects []map[string]any
	require.NoError(t, json.Unmarshal(raw, &objects))
	require.Len(t, objects, 2)
	for _, obj := range objects {
		require.Len(t, obj, 3)
		require.Contains(t, obj, "id")
		require.Contains(t, obj, "author")
		require.Contains(t, obj, "message")
	}
	require.Equal(t, "Grace", objects[0]["author"])
	require.Contains(t, string(raw), "\n  {")
}

func TestFileStoreReadsExistingDocument(t *testing.T) {
	store := newTempFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	doc := `[{"id":"b","author":"Bob","message":"second"},{"id":"a","author":"Alice","message":"first"}]`
	require.NoError(t, os.WriteFile(store.Path(), []byte(doc), 0o644))

	entries, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.FeedbackEntry{
		{ID: "b", Author: "Bob", Message: "second"},
		{ID: "a", Author: "Alice", Message: "first"},
	}, entries)

	created, err := store.Append(context.Background(), "Carol", "third")
	require.NoError(t, err)
	entries, err = store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, created, entries[0])
	require.Equal(t, "a", entries[2].ID)
}

func TestFileStoreMalformedDocument(t *testing.T) {
	store := newTempFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, err := store.ReadAll(context.Background())
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, err = store.Append(context.Background(), "Ada", "Hi")
	require.ErrorIs(t, err, domain.ErrStorageWriteFailed)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	require.Equal(t, "{not json", string(raw))
}

func TestFileStoreConcurrentAppendsKeepEveryEntry(t *testing.T) {
	ctx := context.Background()
	store := newTempFileStore(t)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Append(ctx, "writer", fmt.Sprintf("note %d", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, writers)
}

func TestFileStoreCanceledContext(t *testing.T) {
	store := newTempFileStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Append(ctx, "Ada", "Hi")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, domain.ErrStorageWriteFailed)

	_, err = store.ReadAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, statErr := os.Stat(store.Path())
	require.True(t, os.IsNotExist(statErr))
}
