package treedata

import (
	"context"
	"os"
	"path/filepath"

	"github.com/exilemind/arbor/pkg/errors"
)

// Source supplies raw tree-data text for a data version. Implementations
// own their retry/fallback policy above the single fallback hop performed
// by [Store].
//
// Fetch must return an error with code ErrCodeVersionNotFound when the
// upstream has no data for the version, so Store can attempt its fallback.
type Source interface {
	Fetch(ctx context.Context, version string) (string, error)
}

// FileSource reads tree data from files named <version>.lua in a directory.
// Used for offline analysis and tests.
type FileSource struct {
	dir string
}

// NewFileSource creates a source reading from the given directory.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Fetch reads the tree-data file for the version.
func (s *FileSource) Fetch(ctx context.Context, version string) (string, error) {
	if err := errors.ValidateVersion(version); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, version+".lua"))
	if os.IsNotExist(err) {
		return "", errors.New(errors.ErrCodeVersionNotFound, "no tree data for version %s", version)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read tree data for version %s", version)
	}
	return string(data), nil
}

// StaticSource serves fixed in-memory text per version. Test helper.
type StaticSource map[string]string

// Fetch returns the stored text for the version.
func (s StaticSource) Fetch(ctx context.Context, version string) (string, error) {
	raw, ok := s[version]
	if !ok {
		return "", errors.New(errors.ErrCodeVersionNotFound, "no tree data for version %s", version)
	}
	return raw, nil
}
