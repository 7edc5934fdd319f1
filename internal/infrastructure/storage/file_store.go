package storage

import (
	"context"
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/pkg/apperrors"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const filePerm os.FileMode = 0o644

// FileStore keeps the customer collection as a single JSON array on disk.
type FileStore struct {
	fs          afero.Fs
	path        string
	atomicWrite bool
	logger      *slog.Logger
}

var _ customer.Store = (*FileStore)(nil)

func NewFileStore(fs afero.Fs, path string, atomicWrite bool, logger *slog.Logger) *FileStore {
	if fs == nil {
		panic("filesystem cannot be nil for FileStore")
	}
	if path == "" {
		panic("file path cannot be empty for FileStore")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewFileStore, using default stderr handler")
	}
	return &FileStore{
		fs:          fs,
		path:        path,
		atomicWrite: atomicWrite,
		logger:      logger.With("component", "FileStore", "path", path),
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (customer.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.WrapStoreReadError(err, "customer file read aborted")
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read customer file", slog.Any("error", err))
		return nil, apperrors.WrapStoreReadError(err, "failed to read customer file")
	}

	var customers customer.Collection
	if err := json.Unmarshal(data, &customers); err != nil {
		s.logger.ErrorContext(ctx, "Customer file does not contain a valid customer list", slog.Any("error", err))
		return nil, apperrors.WrapStoreReadError(err, "failed to parse customer file")
	}

	s.logger.DebugContext(ctx, "Loaded customers from file", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *FileStore) Save(ctx context.Context, customers customer.Collection) error {
	if err := ctx.Err(); err != nil {
		return apperrors.WrapStoreWriteError(err, "customer file write aborted")
	}
	if customers == nil {
		customers = customer.Collection{}
	}

	data, err := json.Marshal(customers)
	if err != nil {
		return apperrors.WrapStoreWriteError(err, "failed to encode customers")
	}

	if s.atomicWrite {
		err = s.writeAtomic(data)
	} else {
		err = afero.WriteFile(s.fs, s.path, data, filePerm)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to write customer file", slog.Any("error", err), slog.Bool("atomic", s.atomicWrite))
		return apperrors.WrapStoreWriteError(err, "failed to write customer file")
	}

	s.logger.DebugContext(ctx, "Wrote customers to file", slog.Int("count", len(customers)), slog.Int("bytes", len(data)))
	return nil
}

// writeAtomic writes to a sibling temp file and renames it over the target, so
// readers see either the old or the new collection.
func (s *FileStore) writeAtomic(data []byte) (err error) {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = s.fs.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = s.fs.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Init writes an empty collection when the file is missing, or always when force
// is set. It reports whether the file was written.
func (s *FileStore) Init(ctx context.Context, force bool) (bool, error) {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return false, apperrors.WrapStoreReadError(err, "failed to stat customer file")
	}
	if exists && !force {
		s.logger.InfoContext(ctx, "Customer file already exists, leaving it untouched")
		return false, nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, apperrors.WrapStoreWriteError(err, "failed to create customer file directory")
	}
	if err := s.Save(ctx, customer.Collection{}); err != nil {
		return false, err
	}
	s.logger.InfoContext(ctx, "Initialized empty customer file", slog.Bool("overwritten", exists))
	return true, nil
}
