package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("blob not found")

// BlobStore holds reference files such as the district rank CSV.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error) // returns canonical key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
