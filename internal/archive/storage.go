// Package archive stores the full payloads of evaluation runs: the
// complete result object and the answer snapshot it was computed from.
// The database keeps only summary rows; re-reading a past run goes
// through here.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for evaluation payloads and answer
// snapshots.
type StorageClient interface {
	PutEvaluation(ctx context.Context, orgID, evaluationID string, data []byte) error
	GetEvaluation(ctx context.Context, orgID, evaluationID string) ([]byte, error)
	PutSnapshot(ctx context.Context, orgID, evaluationID string, data []byte) error
	GetSnapshot(ctx context.Context, orgID, evaluationID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(orgID, kind, id string) string {
	return filepath.Join(s.BaseDir, orgID, kind, id+".json")
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutEvaluation stores a full evaluation result payload.
func (s *LocalStorage) PutEvaluation(ctx context.Context, orgID, evaluationID string, data []byte) error {
	return s.put(s.path(orgID, "evaluations", evaluationID), data)
}

// GetEvaluation retrieves a full evaluation result payload.
func (s *LocalStorage) GetEvaluation(ctx context.Context, orgID, evaluationID string) ([]byte, error) {
	return os.ReadFile(s.path(orgID, "evaluations", evaluationID))
}

// PutSnapshot stores the answer snapshot an evaluation ran over.
func (s *LocalStorage) PutSnapshot(ctx context.Context, orgID, evaluationID string, data []byte) error {
	return s.put(s.path(orgID, "snapshots", evaluationID), data)
}

// GetSnapshot retrieves the answer snapshot for an evaluation.
func (s *LocalStorage) GetSnapshot(ctx context.Context, orgID, evaluationID string) ([]byte, error) {
	return os.ReadFile(s.path(orgID, "snapshots", evaluationID))
}
