package fsxlocal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/seeker/pkg/fsx"
)

// LocalFileSystem stores objects as files below root. Used for development
// when no bucket is configured.
type LocalFileSystem struct {
	root    string
	baseURL string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

func NewLocalFileSystem(root, baseURL string) *LocalFileSystem {
	return &LocalFileSystem{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// resolve keeps p inside root
func (fs *LocalFileSystem) resolve(p string) string {
	clean := path.Clean("/" + p)
	return filepath.Join(fs.root, filepath.FromSlash(clean))
}

func (fs *LocalFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (fs *LocalFileSystem) URL(p string) string {
	return fs.baseURL + path.Clean("/"+p)
}

func (fs *LocalFileSystem) WriteFile(_ context.Context, p string, data []byte) error {
	full := fs.resolve(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.ErrWriteFailed(p, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fsx.ErrWriteFailed(p, err)
	}
	return nil
}

func (fs *LocalFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return fsx.ErrWriteFailed(p, err)
	}
	return fs.WriteFile(ctx, p, buf.Bytes())
}

func (fs *LocalFileSystem) ReadFileStream(_ context.Context, p string) (io.ReadCloser, error) {
	f, err := os.Open(fs.resolve(p))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fsx.ErrNotFound(p)
		}
		return nil, fsx.ErrReadFailed(p, err)
	}
	return f, nil
}

func (fs *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	f, err := fs.ReadFileStream(ctx, p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fsx.ErrReadFailed(p, err)
	}
	return data, nil
}

func (fs *LocalFileSystem) DeleteFile(_ context.Context, p string) error {
	if err := os.Remove(fs.resolve(p)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fsx.ErrWriteFailed(p, err)
	}
	return nil
}

func (fs *LocalFileSystem) Exists(_ context.Context, p string) (bool, error) {
	_, err := os.Stat(fs.resolve(p))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fsx.ErrReadFailed(p, err)
}
