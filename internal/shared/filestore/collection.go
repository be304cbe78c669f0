package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// OnCorrupt selects what Load does with a file that exists but cannot be
// read or decoded.
type OnCorrupt string

const (
	// TreatAsEmpty logs the problem and reports an empty collection.
	TreatAsEmpty OnCorrupt = "treat_as_empty"
	// Fail returns ErrCorrupt.
	Fail OnCorrupt = "fail"
)

var (
	// ErrCorrupt is returned by Load under the Fail policy.
	ErrCorrupt = errors.New("filestore: collection is unreadable")
	// ErrRecordNotFound is returned by lookups built on a Collection.
	ErrRecordNotFound = errors.New("filestore: record not found")
)

// ParseOnCorrupt validates a configured policy name.
func ParseOnCorrupt(v string) (OnCorrupt, error) {
	switch OnCorrupt(v) {
	case TreatAsEmpty, Fail:
		return OnCorrupt(v), nil
	default:
		return "", fmt.Errorf("filestore: unknown on_corrupt policy %q", v)
	}
}

// diskReads is shared by every Collection so that a Save through one
// instance also retires in-flight reads started through another.
var diskReads singleflight.Group

// Collection is an ordered sequence of T stored at a single path.
type Collection[T any] struct {
	path      string
	onCorrupt OnCorrupt
	reads     *singleflight.Group
	logger    *zap.Logger
}

func NewCollection[T any](path string, onCorrupt OnCorrupt, logger ...*zap.Logger) *Collection[T] {
	l := zap.L().Named("filestore")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("filestore")
	}
	if onCorrupt == "" {
		onCorrupt = TreatAsEmpty
	}
	return &Collection[T]{
		path:      path,
		onCorrupt: onCorrupt,
		reads:     &diskReads,
		logger:    l.With(zap.String("path", path)),
	}
}

func (c *Collection[T]) Path() string {
	return c.path
}

// Load returns every record in file order. A missing file is an empty
// collection. The returned slice is never nil and belongs to the caller.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Concurrent loads share the disk read; each caller decodes its own copy.
	v, err, _ := c.reads.Do(c.path, func() (any, error) {
		return os.ReadFile(c.path)
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return c.corrupt(err)
	}

	var records []T
	if err := json.Unmarshal(v.([]byte), &records); err != nil {
		return c.corrupt(err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) corrupt(cause error) ([]T, error) {
	if c.onCorrupt == Fail {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.path, cause)
	}
	c.logger.Error("error loading collection, treating as empty", zap.Error(cause))
	return []T{}, nil
}

// Save replaces the stored collection with records. The new document is
// written to a temp file in the same directory and renamed over the old
// one, so readers see either the old or the new collection.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []T{}
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: encode %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filestore: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: create temp for %s: %w", c.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: chmod %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("filestore: replace %s: %w", c.path, err)
	}
	// A read still in flight may predate the rename; later loads must not join it.
	c.reads.Forget(c.path)

	c.logger.Debug("collection saved", zap.Int("records", len(records)))
	return nil
}
