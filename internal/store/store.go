// Package store reads and writes result documents. Documents live in local
// files or in an S3-compatible bucket and may be zstd-compressed.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/result"
)

// ErrNotFound is returned when a result document does not exist.
var ErrNotFound = errors.New("result document not found")

// ObjectStore reads and writes objects of a bucket.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, data []byte) error
}

// Store loads and saves result documents.
type Store struct {
	root    string
	objects func() (ObjectStore, error)
	logger  *zap.Logger
}

// New creates a store. Result paths are normalized against the repository
// root. objects is called on first use of an s3:// location and may be nil
// when no bucket is configured.
func New(root string, objects func() (ObjectStore, error), logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{root: root, objects: objects, logger: logger}
}

// Load reads the result document at loc. It returns an error wrapping
// ErrNotFound when the document does not exist.
func (s *Store) Load(ctx context.Context, loc string) (*result.VerifyCommandResult, error) {
	l, err := ParseLocation(loc)
	if err != nil {
		return nil, vherrors.ConfigWrap(err, "invalid result location")
	}

	var data []byte
	if l.IsObject() {
		objects, err := s.objectStore()
		if err != nil {
			return nil, err
		}
		data, err = objects.Get(ctx, l.Bucket, l.Key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", l, err)
		}
	} else {
		data, err = os.ReadFile(l.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load %s: %w", l, ErrNotFound)
			}
			return nil, fmt.Errorf("load %s: %w", l, err)
		}
	}

	if l.Compressed() {
		if data, err = decompress(data); err != nil {
			return nil, vherrors.ConfigWrap(err, "failed to decompress "+l.String())
		}
	}

	r, err := result.Parse(data, s.root, s.logger)
	if err != nil {
		var e *vherrors.Error
		if errors.As(err, &e) {
			e.Path = l.String()
		}
		return nil, err
	}
	return r, nil
}

// Save writes r to loc. Local files are replaced atomically.
func (s *Store) Save(ctx context.Context, loc string, r *result.VerifyCommandResult) error {
	l, err := ParseLocation(loc)
	if err != nil {
		return vherrors.ConfigWrap(err, "invalid result location")
	}

	data, err := result.Marshal(r)
	if err != nil {
		return err
	}
	if l.Compressed() {
		if data, err = compress(data); err != nil {
			return err
		}
	}

	if l.IsObject() {
		objects, err := s.objectStore()
		if err != nil {
			return err
		}
		if err := objects.Put(ctx, l.Bucket, l.Key, data); err != nil {
			return fmt.Errorf("save %s: %w", l, err)
		}
	} else if err := writeFileAtomic(l.Path, data); err != nil {
		return fmt.Errorf("save %s: %w", l, err)
	}

	s.logger.Debug("result saved", zap.Stringer("location", l), zap.Int("bytes", len(data)))
	return nil
}

func (s *Store) objectStore() (ObjectStore, error) {
	if s.objects == nil {
		return nil, vherrors.Config("object storage is not configured")
	}
	objects, err := s.objects()
	if err != nil {
		return nil, &vherrors.Error{
			Kind:    vherrors.KindEnvironment,
			Message: fmt.Sprintf("failed to connect to object storage: %v", err),
			Cause:   err,
		}
	}
	return objects, nil
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	defer func() { _ = enc.Close() }()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".result-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	success = true
	return nil
}
