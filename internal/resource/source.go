// Package resource enumerates image resource paths from a virtual or real
// path namespace.
package resource

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbsmedya/goiconindex/internal/config"
)

// WalkFunc is called for every entry of a Source. Returning fs.SkipDir for a
// directory skips its contents.
type WalkFunc func(path string, isDir bool) error

// Source is a traversable namespace of resource paths.
type Source interface {
	// Root is the display root every walked path starts with.
	Root() string
	// Walk visits every entry under Root recursively, in source order.
	Walk(ctx context.Context, fn WalkFunc) error
	// Open returns the content of a path produced by Walk.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Close() error
}

// FSSource walks an fs.FS and prefixes every path with a display root.
type FSSource struct {
	fsys fs.FS
	root string
}

// NewFSSource wraps fsys. Paths are reported as root + "/" + relative path;
// an empty or "." root reports bare relative paths.
func NewFSSource(fsys fs.FS, root string) *FSSource {
	return &FSSource{fsys: fsys, root: root}
}

// NewDirSource returns a Source over the directory tree at dir.
func NewDirSource(dir string) (*FSSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %q is not a directory", dir)
	}
	return NewFSSource(os.DirFS(dir), filepath.ToSlash(dir)), nil
}

func (s *FSSource) Root() string { return s.root }

func (s *FSSource) Walk(ctx context.Context, fn WalkFunc) error {
	return fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(s.display(p), d.IsDir())
	})
}

func (s *FSSource) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, ok := s.relative(p)
	if !ok {
		return nil, fmt.Errorf("path %q is outside source %q", p, s.root)
	}
	return s.fsys.Open(rel)
}

func (s *FSSource) Close() error { return nil }

func (s *FSSource) display(rel string) string {
	if s.root == "" || s.root == "." {
		return rel
	}
	if rel == "." {
		return s.root
	}
	return strings.TrimSuffix(s.root, "/") + "/" + rel
}

func (s *FSSource) relative(p string) (string, bool) {
	rel := p
	if s.root != "" && s.root != "." {
		prefix := strings.TrimSuffix(s.root, "/") + "/"
		if !strings.HasPrefix(p, prefix) {
			return "", false
		}
		rel = strings.TrimPrefix(p, prefix)
	}
	return rel, fs.ValidPath(rel)
}

// ZipSource is a virtual namespace inside a zip archive.
type ZipSource struct {
	*FSSource
	rc *zip.ReadCloser
}

// NewZipSource opens the archive at file. Paths are reported as
// file + "/" + entry name.
func NewZipSource(file string) (*ZipSource, error) {
	rc, err := zip.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("open zip source: %w", err)
	}
	return &ZipSource{
		FSSource: NewFSSource(rc, filepath.ToSlash(file)),
		rc:       rc,
	}, nil
}

func (s *ZipSource) Close() error { return s.rc.Close() }

// Open picks a Source for root: s3://bucket/prefix, a .zip archive, or a directory.
func Open(root string, bucket config.BucketConfig) (Source, error) {
	switch {
	case strings.HasPrefix(root, bucketScheme):
		return NewBucketSource(root, bucket)
	case strings.EqualFold(filepath.Ext(root), ".zip"):
		return NewZipSource(root)
	default:
		return NewDirSource(root)
	}
}
