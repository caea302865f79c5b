// Package osstest provides an in-memory oss.Storage.
package osstest

import (
	"context"
	"fmt"
	"sync"

	"mytube.com/pkg/errno"
	"mytube.com/pkg/oss"
)

type MemStorage struct {
	mu       sync.Mutex
	seq      int
	Objects  map[string]oss.Kind
	Deleted  []string
	FailKind oss.Kind // uploads of this kind fail
	Duration float64
}

func New() *MemStorage {
	return &MemStorage{Objects: map[string]oss.Kind{}, Duration: 42.5}
}

func (m *MemStorage) Upload(_ context.Context, localPath string, kind oss.Kind) (oss.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if kind == m.FailKind {
		return oss.Object{}, errno.UploadErr
	}
	m.seq++
	url := fmt.Sprintf("mem://%s/%d", kind, m.seq)
	m.Objects[url] = kind
	obj := oss.Object{URL: url}
	if kind == oss.KindVideo {
		obj.DurationSeconds = m.Duration
	}
	return obj, nil
}

func (m *MemStorage) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, url)
	delete(m.Objects, url)
	return nil
}

func (m *MemStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
