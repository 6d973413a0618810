// Package jsonfile implements the persistence gateway over a directory of
// pretty-printed JSON files, one file per collection key.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ordenate/backend/internal/core/domain"
	portsrepo "github.com/ordenate/backend/internal/core/ports/repositories"
)

const backupDirName = "backups"

// Gateway persists each collection to <dataDir>/<key>.json. Writes are
// atomic (temp file + rename) and serialized per key, so concurrent saves
// of the same collection settle last-write-wins without interleaving.
type Gateway struct {
	dataDir    string
	backupKeep int
	logger     *slog.Logger

	mu    sync.Mutex
	locks map[domain.CollectionKey]*sync.Mutex
}

// GatewayOption is a functional option for configuring the gateway
type GatewayOption func(*Gateway)

// WithBackupKeep sets how many automatic client backups are retained.
func WithBackupKeep(keep int) GatewayOption {
	return func(g *Gateway) {
		g.backupKeep = keep
	}
}

// WithLogger sets the logger used for tolerant-read diagnostics.
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// NewGateway creates the file gateway rooted at dataDir, creating the data
// and backup directories if needed.
func NewGateway(dataDir string, options ...GatewayOption) (*Gateway, error) {
	g := &Gateway{
		dataDir:    dataDir,
		backupKeep: 10,
		logger:     slog.Default(),
		locks:      make(map[domain.CollectionKey]*sync.Mutex),
	}
	for _, option := range options {
		option(g)
	}
	if err := os.MkdirAll(filepath.Join(dataDir, backupDirName), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return g, nil
}

// Ensure Gateway implements the persistence port
var _ portsrepo.Gateway = (*Gateway)(nil)

func (g *Gateway) keyLock(key domain.CollectionKey) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	lock, ok := g.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[key] = lock
	}
	return lock
}

// Save marshals v as indented JSON and atomically replaces the key's file.
// Saving the clients collection also drops a timestamped backup copy.
func (g *Gateway) Save(ctx context.Context, key domain.CollectionKey, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	lock := g.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if err := g.writeAtomic(g.filePath(key), payload); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if key == domain.CollectionClients {
		if err := g.writeClientsBackup(payload); err != nil {
			// The primary write already succeeded; a failed backup is
			// logged, not propagated.
			g.logger.Warn("Failed to write clients backup", slog.String("error", err.Error()))
		}
	}
	return nil
}

// Load reads the key's file into dst. A missing file or unparseable
// payload yields found=false; corrupt files are set aside so the next save
// starts clean and the bad payload stays available for inspection.
func (g *Gateway) Load(ctx context.Context, key domain.CollectionKey, dst any) (bool, error) {
	lock := g.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	path := g.filePath(key)
	payload, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		corrupt := path + ".corrupt"
		g.logger.Error("Corrupt collection file, setting aside",
			slog.String("key", string(key)),
			slog.String("moved_to", corrupt),
			slog.String("error", err.Error()))
		if renameErr := os.Rename(path, corrupt); renameErr != nil {
			g.logger.Warn("Failed to set corrupt file aside", slog.String("error", renameErr.Error()))
		}
		return false, nil
	}
	return true, nil
}

// WriteBackup stores a free-form backup document under a timestamped name
// and returns the file name, mirroring the explicit backup endpoint.
func (g *Gateway) WriteBackup(ctx context.Context, name string, v any) (string, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}
	now := time.Now()
	filename := fmt.Sprintf("%s_%s_%d.json", name, now.Format("2006-01-02"), now.UnixMilli())
	if err := g.writeAtomic(filepath.Join(g.dataDir, backupDirName, filename), payload); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return filename, nil
}

func (g *Gateway) filePath(key domain.CollectionKey) string {
	return filepath.Join(g.dataDir, string(key)+".json")
}

func (g *Gateway) writeAtomic(path string, payload []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// writeClientsBackup drops a timestamped copy of the clients payload and
// prunes the backup directory down to the newest backupKeep copies.
func (g *Gateway) writeClientsBackup(payload []byte) error {
	dir := filepath.Join(g.dataDir, backupDirName)
	filename := fmt.Sprintf("clientes_backup_%d.json", time.Now().UnixMilli())
	if err := g.writeAtomic(filepath.Join(dir, filename), payload); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "clientes_backup_") {
			backups = append(backups, entry.Name())
		}
	}
	if len(backups) <= g.backupKeep {
		return nil
	}
	// Millisecond timestamps in the name sort lexicographically within the
	// same digit count; sorting descending keeps the newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	for _, stale := range backups[g.backupKeep:] {
		if err := os.Remove(filepath.Join(dir, stale)); err != nil {
			g.logger.Warn("Failed to prune stale backup", slog.String("file", stale), slog.String("error", err.Error()))
		}
	}
	return nil
}
