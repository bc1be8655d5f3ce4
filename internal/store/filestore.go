package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// FileStore persists datasets as indented JSON documents under
// <root>/<partition>/<file>.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	return &FileStore{root: dir}, nil
}

// Root returns the directory the store writes under.
func (f *FileStore) Root() string { return f.root }

func (f *FileStore) Get(partition, file string) (*core.Dataset, error) {
	data, err := os.ReadFile(filepath.Join(f.root, partition, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var ds core.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse %s/%s: %w", partition, file, err)
	}
	if ds.Signatures == nil {
		ds.Signatures = make(map[string]core.Record)
	}
	return &ds, nil
}

func (f *FileStore) Put(partition, file string, ds *core.Dataset) error {
	dir := filepath.Join(f.root, partition)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create partition %s: %w", partition, err)
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, file), data, 0644); err != nil {
		return fmt.Errorf("write %s/%s: %w", partition, file, err)
	}
	return nil
}

func (f *FileStore) List(partition string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.root, partition))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

func (f *FileStore) Partitions() ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, err
	}
	var parts []string
	for _, e := range entries {
		if e.IsDir() {
			parts = append(parts, e.Name())
		}
	}
	sort.Strings(parts)
	return parts, nil
}
