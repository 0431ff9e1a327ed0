// mock_storage.go - Mock storage implementation for testing
package testutil

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/bom-extractor/backend/internal/models"
)

// MockStorage implements storage.Store and storage.ArtifactStore in memory.
type MockStorage struct {
	mu           sync.RWMutex
	files        map[string]*models.FileInfo
	fileData     map[string][]byte
	artifacts    map[string]*models.Artifact
	artifactData map[string][]byte
	nextID       int
}

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		files:        make(map[string]*models.FileInfo),
		fileData:     make(map[string][]byte),
		artifacts:    make(map[string]*models.Artifact),
		artifactData: make(map[string][]byte),
	}
}

func (m *MockStorage) generateID() string {
	m.nextID++
	return fmt.Sprintf("test-id-%d", m.nextID)
}

func (m *MockStorage) Save(name string, r io.Reader) (*models.FileInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.generateID()
	info := &models.FileInfo{
		ID:         id,
		Name:       name,
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
		Status:     "uploaded",
	}
	m.files[id] = info
	m.fileData[id] = data
	return info, nil
}

func (m *MockStorage) Get(id string) (*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[id]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}
	return info, nil
}

func (m *MockStorage) List(limit int) ([]*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var list []*models.FileInfo
	for _, info := range m.files {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MockStorage) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[id]; !ok {
		return fmt.Errorf("file not found: %s", id)
	}
	delete(m.files, id)
	delete(m.fileData, id)
	return nil
}

func (m *MockStorage) GetFilePath(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.files[id]; !ok {
		return "", fmt.Errorf("file not found: %s", id)
	}
	return "/mock/" + id, nil
}

func (m *MockStorage) SetStatus(id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.files[id]
	if !ok {
		return fmt.Errorf("file not found: %s", id)
	}
	info.Status = status
	return nil
}

func (m *MockStorage) SaveArtifact(name, format string, data []byte) (*models.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.generateID()
	artifact := &models.Artifact{
		ID:        id,
		Name:      name,
		Format:    format,
		Size:      int64(len(data)),
		CreatedAt: time.Now(),
	}
	m.artifacts[id] = artifact
	m.artifactData[id] = data
	return artifact, nil
}

func (m *MockStorage) GetArtifact(id string) (*models.Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	artifact, ok := m.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("artifact not found: %s", id)
	}
	return artifact, nil
}

func (m *MockStorage) GetArtifactPath(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.artifacts[id]; !ok {
		return "", fmt.Errorf("artifact not found: %s", id)
	}
	return "/mock/artifacts/" + id, nil
}

// ArtifactData returns the raw bytes saved for an artifact.
func (m *MockStorage) ArtifactData(id string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.artifactData[id]
	return data, ok
}
