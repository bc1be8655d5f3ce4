package store

import (
	"sort"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// MemStore is an in-memory Store for tests. Datasets are deep-copied on the
// way in and out so callers cannot mutate stored state.
type MemStore struct {
	data map[string]map[string]*core.Dataset
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]map[string]*core.Dataset)}
}

func (m *MemStore) Get(partition, file string) (*core.Dataset, error) {
	ds, ok := m.data[partition][file]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDataset(ds), nil
}

func (m *MemStore) Put(partition, file string, ds *core.Dataset) error {
	if m.data[partition] == nil {
		m.data[partition] = make(map[string]*core.Dataset)
	}
	m.data[partition][file] = copyDataset(ds)
	return nil
}

func (m *MemStore) List(partition string) ([]string, error) {
	var files []string
	for name := range m.data[partition] {
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func (m *MemStore) Partitions() ([]string, error) {
	var parts []string
	for name := range m.data {
		parts = append(parts, name)
	}
	sort.Strings(parts)
	return parts, nil
}

func copyDataset(ds *core.Dataset) *core.Dataset {
	dup := *ds
	dup.Signatures = make(map[string]core.Record, len(ds.Signatures))
	for k, v := range ds.Signatures {
		dup.Signatures[k] = v
	}
	return &dup
}
