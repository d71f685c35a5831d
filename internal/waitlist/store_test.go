package waitlist

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"waitly/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "waitlist.json")
	return NewFileStore(path, 10, logger.GetDefault())
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := newTestFileStore(t)

	state := store.Load(context.Background())

	assert.Equal(t, 0, state.Total)
	assert.Empty(t, state.Weeks)
	assert.Equal(t, 10, state.Cap)
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte(`{"total": not json`), 0o644))

	state := store.Load(context.Background())

	assert.Equal(t, 0, state.Total)
	assert.Equal(t, 10, state.Cap)
}

func TestFileStoreLoadUnreadablePath(t *testing.T) {
	// A directory at the state path makes the read fail outright
	dir := t.TempDir()
	store := NewFileStore(dir, 10, logger.GetDefault())

	state := store.Load(context.Background())

	assert.Equal(t, 0, state.Total)
	assert.Equal(t, 10, state.Cap)
}

func TestFileStoreLegacyUpgrade(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte(`{"total": 7}`), 0o644))

	state := store.Load(context.Background())

	assert.Equal(t, 7, state.Total)
	assert.Empty(t, state.Weeks)
	assert.Equal(t, 10, state.Cap)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	state := &State{
		Total: 9,
		Weeks: map[string]WeekCounter{"2026-W36": {Count: 4}},
		Cap:   6,
	}
	require.NoError(t, store.Save(ctx, state))

	loaded := store.Load(ctx)
	assert.Equal(t, state, loaded)

	// Saving what was just loaded leaves the semantic content unchanged
	require.NoError(t, store.Save(ctx, loaded))
	assert.Equal(t, state, store.Load(ctx))
}

func TestFileStoreSaveSchema(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Save(context.Background(), defaultState(10)))

	raw, err := os.ReadFile(store.path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc, 3)
	assert.Contains(t, doc, "total")
	assert.Contains(t, doc, "weeks")
	assert.Contains(t, doc, "cap")
	assert.JSONEq(t, `{}`, string(doc["weeks"]))
}

func TestFileStoreSaveFailureIsReturned(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing", "waitlist.json"), 10, logger.GetDefault())

	err := store.Save(context.Background(), defaultState(10))

	assert.Error(t, err)
}

func TestFileStorePing(t *testing.T) {
	store := newTestFileStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	gone := NewFileStore(filepath.Join(t.TempDir(), "missing", "waitlist.json"), 10, logger.GetDefault())
	assert.Error(t, gone.Ping(context.Background()))
}
