package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Storage хранит каждую коллекцию в отдельном файле <dir>/<collection>.json.
type Storage struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func New(dir string) (*Storage, error) {
	const op = "storage.jsonfile.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: create data dir %s: %w", op, dir, err)
	}

	return &Storage{dir: dir, locks: make(map[string]*sync.RWMutex)}, nil
}

// lock возвращает мьютекс коллекции; файлы разных коллекций не блокируют друг друга.
func (s *Storage) lock(collection string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[collection]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Storage) path(collection string) (string, error) {
	if !collectionName.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	return filepath.Join(s.dir, collection+".json"), nil
}

// Load читает коллекцию в dst. Отсутствующий или пустой файл: пустая коллекция, dst не трогаем.
func (s *Storage) Load(ctx context.Context, collection string, dst any) error {
	const op = "storage.jsonfile.Load"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.path(collection)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	l := s.lock(collection)
	l.RLock()
	data, err := os.ReadFile(path)
	l.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: read %s: %w", op, path, err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s: decode %s: %w", op, path, err)
	}

	return nil
}

// Save пишет во временный файл и переименовывает его, чтобы не оставить обрезанный JSON.
func (s *Storage) Save(ctx context.Context, collection string, v any) error {
	const op = "storage.jsonfile.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.path(collection)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", op, collection, err)
	}

	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: create temp file: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: write %s: %w", op, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: close %s: %w", op, tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: rename to %s: %w", op, path, err)
	}

	return nil
}
