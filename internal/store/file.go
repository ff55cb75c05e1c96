package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps the blob in a single file under a data directory. The
// filename is derived from BlobKey so multiple engines can share a dir.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing the collection blob under dataDir.
func NewFileStore(dataDir string) *FileStore {
	name := strings.ReplaceAll(BlobKey, ":", "_") + ".json"
	return &FileStore{path: filepath.Join(dataDir, name)}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(ctx context.Context) (string, bool, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", f.path, err)
	}
	return string(raw), true, nil
}

func (f *FileStore) Save(ctx context.Context, raw string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	// Write to a temp file first so a crash mid-write never leaves a
	// truncated blob behind the fixed key.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(raw), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
