package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lepinkainen/bookdice/internal/book"
	"github.com/lepinkainen/bookdice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	isbn := "9780801884726"
	require.NoError(t, store.Record(ctx, "birds", book.Record{
		Title:      "Birds of the World",
		Authors:    []string{"Les Beletsky"},
		ISBN:       &isbn,
		InfoLink:   "http://books.google.com/books?id=abc",
		TotalItems: 812,
	}))
	require.NoError(t, store.Record(ctx, "ships", book.Record{
		Title:   "Wooden Ships",
		Authors: []string{},
	}))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "ships", entries[0].Subject)
	assert.Equal(t, "Wooden Ships", entries[0].Title)
	assert.Empty(t, entries[0].ISBN)
	assert.Empty(t, entries[0].Authors)

	assert.Equal(t, "birds", entries[1].Subject)
	assert.Equal(t, []string{"Les Beletsky"}, entries[1].Authors)
	assert.Equal(t, isbn, entries[1].ISBN)
	assert.Equal(t, "http://books.google.com/books?id=abc", entries[1].InfoLink)
	assert.Equal(t, 812, entries[1].TotalItems)
	assert.WithinDuration(t, time.Now(), entries[1].PickedAt, 24*time.Hour)
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		require.NoError(t, store.Record(ctx, "numbers", book.Record{Title: title}))
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Three", entries[0].Title)
	assert.Equal(t, "Two", entries[1].Title)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil))
	assert.Equal(t, "No books picked yet.\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTable(&buf, []Entry{{
		Subject:  "birds",
		Title:    "Birds of the World",
		Authors:  []string{"A", "B"},
		PickedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}}))

	out := buf.String()
	assert.Contains(t, out, "SUBJECT")
	assert.Contains(t, out, "Birds of the World")
	assert.Contains(t, out, "A, B")
	assert.Contains(t, out, "unknown")
}

func TestListCmdRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	orig := config.HistoryDBFile
	config.HistoryDBFile = dbPath
	t.Cleanup(func() { config.HistoryDBFile = orig })

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), "birds", book.Record{Title: "Birds of the World"}))
	require.NoError(t, store.Close())

	var buf bytes.Buffer
	cmd := &ListCmd{Limit: 5, out: &buf}
	require.NoError(t, cmd.Run())
	assert.Contains(t, buf.String(), "Birds of the World")
}
