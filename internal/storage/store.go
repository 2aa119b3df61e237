package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pixil98/go-errors"
)

// Storer provides read access to a set of definition records keyed by
// identifier.
type Storer[T ValidatingSpec] interface {
	Get(Identifier) T
	GetAll() map[Identifier]T
}

// FileStore loads definition records from JSON asset files under a
// directory. Malformed or invalid assets are rejected per-file; loading
// continues for the rest and the rejections come back as an aggregate
// error list alongside a usable store.
type FileStore[T ValidatingSpec] struct {
	path    string
	records map[Identifier]T

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](path string) (*FileStore[T], error) {
	s := &FileStore[T]{
		path:    path,
		records: map[Identifier]T{},
	}

	return s, s.load()
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = map[Identifier]T{}
	el := errors.NewErrorList()

	err := filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		asset, err := s.loadAsset(path)
		if err != nil {
			el.Add(fmt.Errorf("%s: %w", filepath.Base(path), err))
			return nil
		}

		if err := asset.Validate(); err != nil {
			el.Add(fmt.Errorf("%s: %w", filepath.Base(path), err))
			return nil
		}

		if _, ok := s.records[asset.Id()]; ok {
			el.Add(fmt.Errorf("%s: duplicate id %q", filepath.Base(path), asset.Id()))
			return nil
		}

		s.records[asset.Id()] = asset.Spec
		return nil
	})
	if err != nil {
		el.Add(err)
	}

	return el.Err()
}

// Get returns the record for id, the zero value when absent.
func (s *FileStore[T]) Get(id Identifier) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

// GetAll returns a copy of the record map.
func (s *FileStore[T]) GetAll() map[Identifier]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := map[Identifier]T{}
	for id, v := range s.records {
		vals[id] = v
	}

	return vals
}

func (s *FileStore[T]) loadAsset(path string) (*Asset[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	jsonData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	if err := json.Unmarshal(jsonData, asset); err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}
