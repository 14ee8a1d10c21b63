// Package storage abstracts the blob store. The core treats it as a
// path-addressed byte store with upload, prefix listing, and removal.
package storage

import (
	"context"
	"io"
)

type ObjectStore interface {
	// Put stores the blob at path and returns its durable public URL.
	Put(ctx context.Context, path, contentType string, body io.Reader) (string, error)
	// List returns all stored paths under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// Remove deletes the given paths. Missing paths are not an error.
	Remove(ctx context.Context, paths []string) error
}
