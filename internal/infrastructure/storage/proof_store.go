package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalProofStore keeps delivery proof files on disk under one base
// directory, one subdirectory per order. The returned reference is the
// path relative to the base directory.
type LocalProofStore struct {
	baseDir string
}

func NewLocalProofStore(baseDir string) (*LocalProofStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create proof directory: %w", err)
	}
	return &LocalProofStore{baseDir: baseDir}, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == ".." {
		name = "proof"
	}
	return name
}

func (s *LocalProofStore) SaveProof(ctx context.Context, orderID int64, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, fmt.Sprintf("order_%d", orderID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create proof directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(filename))
	full := filepath.Join(dir, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create proof file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("failed to write proof file: %w", err)
	}

	ref, err := filepath.Rel(s.baseDir, full)
	if err != nil {
		return "", err
	}
	return ref, nil
}
