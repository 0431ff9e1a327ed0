package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bom-extractor/backend/internal/models"
	"github.com/google/uuid"
)

// Store defines the interface for uploaded file storage.
type Store interface {
	Save(name string, r io.Reader) (*models.FileInfo, error)
	Get(id string) (*models.FileInfo, error)
	List(limit int) ([]*models.FileInfo, error)
	Delete(id string) error
	GetFilePath(id string) (string, error)
	SetStatus(id string, status string) error
}

// ArtifactStore defines the interface for produced output artifacts.
type ArtifactStore interface {
	SaveArtifact(name, format string, data []byte) (*models.Artifact, error)
	GetArtifact(id string) (*models.Artifact, error)
	GetArtifactPath(id string) (string, error)
}

// LocalStore implements Store and ArtifactStore on the local filesystem.
// Uploads and outputs live in separate directories; both are keyed by UUID
// so client-supplied names never touch the filesystem layout.
type LocalStore struct {
	mu        sync.RWMutex
	uploadDir string
	outputDir string
	files     map[string]*models.FileInfo
	artifacts map[string]*models.Artifact
}

// NewLocalStore creates a new LocalStore rooted at the given directories.
func NewLocalStore(uploadDir, outputDir string) (*LocalStore, error) {
	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}

	return &LocalStore{
		uploadDir: uploadDir,
		outputDir: outputDir,
		files:     make(map[string]*models.FileInfo),
		artifacts: make(map[string]*models.Artifact),
	}, nil
}

// Save writes an uploaded file to disk and records its metadata.
func (s *LocalStore) Save(name string, r io.Reader) (*models.FileInfo, error) {
	id := uuid.New().String()
	path := filepath.Join(s.uploadDir, id)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing file: %w", err)
	}

	info := &models.FileInfo{
		ID:         id,
		Name:       name,
		Size:       size,
		UploadedAt: time.Now(),
		Status:     "uploaded",
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[id] = info

	return info, nil
}

// Get retrieves upload metadata by ID.
func (s *LocalStore) Get(id string) (*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}

	return info, nil
}

// List returns the most recent uploads.
func (s *LocalStore) List(limit int) ([]*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*models.FileInfo
	for _, info := range s.files {
		list = append(list, info)
	}

	// Sort by UploadedAt desc
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})

	if len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

// Delete removes an upload from storage.
func (s *LocalStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return fmt.Errorf("file not found: %s", id)
	}

	path := filepath.Join(s.uploadDir, id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}

	delete(s.files, id)
	return nil
}

// GetFilePath returns the absolute path to an uploaded file.
func (s *LocalStore) GetFilePath(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.files[id]; !ok {
		return "", fmt.Errorf("file not found: %s", id)
	}

	return filepath.Join(s.uploadDir, id), nil
}

// SetStatus updates the lifecycle status of an upload.
func (s *LocalStore) SetStatus(id string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.files[id]
	if !ok {
		return fmt.Errorf("file not found: %s", id)
	}

	info.Status = status
	return nil
}

// SaveArtifact writes an output artifact to the output directory and returns
// its metadata with a fresh opaque identifier.
func (s *LocalStore) SaveArtifact(name, format string, data []byte) (*models.Artifact, error) {
	id := uuid.New().String()
	path := filepath.Join(s.outputDir, id+"."+format)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing artifact: %w", err)
	}

	artifact := &models.Artifact{
		ID:        id,
		Name:      name,
		Format:    format,
		Size:      int64(len(data)),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[id] = artifact

	return artifact, nil
}

// GetArtifact retrieves artifact metadata by ID.
func (s *LocalStore) GetArtifact(id string) (*models.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("artifact not found: %s", id)
	}

	return artifact, nil
}

// GetArtifactPath returns the absolute path to an artifact file.
func (s *LocalStore) GetArtifactPath(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		return "", fmt.Errorf("artifact not found: %s", id)
	}

	return filepath.Join(s.outputDir, artifact.ID+"."+artifact.Format), nil
}
