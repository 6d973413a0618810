package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordenate/backend/internal/adapters/storage/jsonfile"
	"github.com/ordenate/backend/internal/core/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	gateway, err := jsonfile.NewGateway(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	in := []domain.Note{
		{ID: "n1", ClientID: "c1", Text: "Sessão inicial", Date: "2026-08-27"},
	}
	require.NoError(t, gateway.Save(ctx, domain.CollectionNotes, in))

	var out []domain.Note
	found, err := gateway.Load(ctx, domain.CollectionNotes, &out)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestLoadMissingKey(t *testing.T) {
	gateway, err := jsonfile.NewGateway(t.TempDir())
	require.NoError(t, err)

	var out []domain.Note
	found, err := gateway.Load(context.Background(), domain.CollectionNotes, &out)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, out)
}

func TestLoadCorruptFileSetAside(t *testing.T) {
	dir := t.TempDir()
	gateway, err := jsonfile.NewGateway(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var out []domain.Note
	found, err := gateway.Load(context.Background(), domain.CollectionNotes, &out)

	require.NoError(t, err)
	assert.False(t, found)
	assert.NoFileExists(t, path)
	assert.FileExists(t, path+".corrupt")

	// The next save starts clean.
	require.NoError(t, gateway.Save(context.Background(), domain.CollectionNotes, []domain.Note{}))
	found, err = gateway.Load(context.Background(), domain.CollectionNotes, &out)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestSaveClientsWritesPrunedBackups(t *testing.T) {
	dir := t.TempDir()
	gateway, err := jsonfile.NewGateway(dir, jsonfile.WithBackupKeep(3))
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		clients := []domain.Client{{ID: "c1", Name: "Mariana Costa"}}
		require.NoError(t, gateway.Save(ctx, domain.CollectionClients, clients))
		// Backup names carry millisecond timestamps; keep them distinct.
		time.Sleep(2 * time.Millisecond)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)

	var backups []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "clientes_backup_") {
			backups = append(backups, entry.Name())
		}
	}
	assert.Len(t, backups, 3)
}

func TestSaveNonClientsSkipsBackup(t *testing.T) {
	dir := t.TempDir()
	gateway, err := jsonfile.NewGateway(dir)
	require.NoError(t, err)

	require.NoError(t, gateway.Save(context.Background(), domain.CollectionTransactions, []domain.Transaction{}))

	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteBackupReturnsFilename(t *testing.T) {
	dir := t.TempDir()
	gateway, err := jsonfile.NewGateway(dir)
	require.NoError(t, err)

	filename, err := gateway.WriteBackup(context.Background(), "clientes_backup", map[string]string{"k": "v"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "clientes_backup_"))
	assert.True(t, strings.HasSuffix(filename, ".json"))
	assert.FileExists(t, filepath.Join(dir, "backups", filename))
}
