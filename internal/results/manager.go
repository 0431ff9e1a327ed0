// Package results keeps recently completed extractions available for the
// results page and for re-download after a browser refresh.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bom-extractor/backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// MaxResults bounds the number of results held in memory.
const MaxResults = 50

// DefaultMaxAge is how long a result stays available without being accessed.
const DefaultMaxAge = 30 * time.Minute

const persistExt = ".result"

// StoredResult is one completed extraction.
type StoredResult struct {
	ID        string                 `msgpack:"id"`
	FileName  string                 `msgpack:"file_name"`
	Data      *models.ExtractionData `msgpack:"data"`
	Files     models.ResultFiles     `msgpack:"files"`
	CreatedAt time.Time              `msgpack:"created_at"`
}

type entry struct {
	result       *StoredResult
	lastAccessed time.Time
}

// Manager holds recent extraction results, persisting each to disk as
// msgpack so results survive a server restart.
type Manager struct {
	mu         sync.RWMutex
	results    map[string]*entry
	persistDir string
}

// NewManager creates a manager persisting to persistDir and reloads any
// previously persisted results. An empty persistDir disables persistence.
func NewManager(persistDir string) (*Manager, error) {
	m := &Manager{
		results:    make(map[string]*entry),
		persistDir: persistDir,
	}

	if persistDir != "" {
		if err := os.MkdirAll(persistDir, 0755); err != nil {
			return nil, fmt.Errorf("creating results directory: %w", err)
		}
		if err := m.loadPersisted(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Put stores a result, evicting the least recently accessed entry when the
// capacity bound is hit.
func (m *Manager) Put(res *StoredResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictLocked()
	m.results[res.ID] = &entry{result: res, lastAccessed: time.Now()}

	if m.persistDir == "" {
		return nil
	}
	data, err := msgpack.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	path := filepath.Join(m.persistDir, res.ID+persistExt)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("persisting result: %w", err)
	}
	return nil
}

// Get returns a stored result and refreshes its access time.
func (m *Manager) Get(id string) (*StoredResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.results[id]
	if !ok {
		return nil, false
	}
	e.lastAccessed = time.Now()
	return e.result, true
}

// Len returns the number of stored results.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}

// CleanupOld drops results not accessed within maxAge and removes their
// persisted files. Returns the number of results removed.
func (m *Manager) CleanupOld(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, e := range m.results {
		if e.lastAccessed.Before(cutoff) {
			m.removeLocked(id)
			removed++
		}
	}
	return removed
}

// evictLocked removes the least recently accessed entries until there is
// room for one more. Caller must hold the write lock.
func (m *Manager) evictLocked() {
	for len(m.results) >= MaxResults {
		oldestID := ""
		var oldest time.Time
		for id, e := range m.results {
			if oldestID == "" || e.lastAccessed.Before(oldest) {
				oldestID = id
				oldest = e.lastAccessed
			}
		}
		m.removeLocked(oldestID)
	}
}

func (m *Manager) removeLocked(id string) {
	delete(m.results, id)
	if m.persistDir != "" {
		os.Remove(filepath.Join(m.persistDir, id+persistExt))
	}
}

func (m *Manager) loadPersisted() error {
	entries, err := os.ReadDir(m.persistDir)
	if err != nil {
		return fmt.Errorf("reading results directory: %w", err)
	}

	var loaded []*StoredResult
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), persistExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.persistDir, de.Name()))
		if err != nil {
			continue
		}
		var res StoredResult
		if err := msgpack.Unmarshal(data, &res); err != nil {
			// A corrupt file should not block startup; drop it.
			os.Remove(filepath.Join(m.persistDir, de.Name()))
			continue
		}
		loaded = append(loaded, &res)
	}

	// Newest first so the capacity bound keeps recent results.
	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].CreatedAt.After(loaded[j].CreatedAt)
	})
	if len(loaded) > MaxResults {
		loaded = loaded[:MaxResults]
	}
	for _, res := range loaded {
		m.results[res.ID] = &entry{result: res, lastAccessed: time.Now()}
	}
	return nil
}
