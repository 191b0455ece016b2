package fsx

import (
	"context"
	"io"
	"net/http"

	"github.com/Abraxas-365/seeker/pkg/errx"
)

// FileReader reads stored objects
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter stores objects, overwriting existing ones
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
}

// FileSystem is a flat object store addressed by slash separated paths
type FileSystem interface {
	FileReader
	FileWriter
	DeleteFile(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	Join(elem ...string) string
	// URL is where clients can fetch the object from
	URL(path string) string
}

var ErrRegistry = errx.NewRegistry("FSX")

var (
	CodeNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeReadFailed  = ErrRegistry.Register("READ_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to read file")
	CodeWriteFailed = ErrRegistry.Register("WRITE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to write file")
)

func ErrNotFound(path string) *errx.Error {
	return ErrRegistry.New(CodeNotFound).WithDetail("path", path)
}

func ErrReadFailed(path string, cause error) *errx.Error {
	return ErrRegistry.New(CodeReadFailed).WithDetail("path", path).WithCause(cause)
}

func ErrWriteFailed(path string, cause error) *errx.Error {
	return ErrRegistry.New(CodeWriteFailed).WithDetail("path", path).WithCause(cause)
}
