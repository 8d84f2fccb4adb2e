package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSlot stores the slot value in <dir>/<name>.json.
type FileSlot struct {
	fs   afero.Fs
	name string
	path string
}

var _ Slot = (*FileSlot)(nil)

// NewFileSlot returns a slot backed by a JSON file. The file is created on
// first write.
func NewFileSlot(fsys afero.Fs, dir, name string) *FileSlot {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FileSlot{
		fs:   fsys,
		name: name,
		path: filepath.Join(dir, name+".json"),
	}
}

func (s *FileSlot) Name() string { return s.name }

// Path returns the file holding the slot value.
func (s *FileSlot) Path() string { return s.path }

func (s *FileSlot) Read(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot file: %w", err)
	}
	return data, true, nil
}

// Write replaces the file atomically via a temp file and rename.
func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create slot directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *FileSlot) Close() error { return nil }
